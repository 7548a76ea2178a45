package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// agenda's palette: warm stone paper, amber ink, a little green for growth.
var (
	Amber   = lipgloss.Color("#D97706")
	Honey   = lipgloss.Color("#F59E0B")
	Stone   = lipgloss.Color("#78716C")
	Paper   = lipgloss.Color("#F5F5F4")
	Sage    = lipgloss.Color("#65A30D")
	Rose    = lipgloss.Color("#E11D48")
	Sky     = lipgloss.Color("#0284C7")
	Dim     = lipgloss.Color("#666666")
	Bright  = lipgloss.Color("#FFFFFF")
	Subtle  = lipgloss.Color("#A8A29E")
	Evening = lipgloss.Color("#6D28D9")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Amber)

	Subtitle = lipgloss.NewStyle().
			Foreground(Honey)

	Success = lipgloss.NewStyle().
		Foreground(Sage)

	Error = lipgloss.NewStyle().
		Foreground(Rose)

	Warning = lipgloss.NewStyle().
		Foreground(Honey)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	// Component styles
	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(0, 1)

	Tag = lipgloss.NewStyle().
		Foreground(Bright).
		Background(Stone).
		Padding(0, 1).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Honey).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Paper)

	SlotStyle = lipgloss.NewStyle().
			Foreground(Subtle).
			Width(7).
			Align(lipgloss.Right)
)

// Icons used across commands.
const (
	IconBook     = "📔"
	IconSun      = "☀️ "
	IconMoon     = "🌙"
	IconCalendar = "📅"
	IconFire     = "🔥"
	IconLeaf     = "🌱"
	IconLotus    = "🪷"
	IconLock     = "🔑"
	IconStar     = "⭐"
	IconClock    = "🕒"
	IconWarn     = "⚠️ "
	IconError    = "✗ "
	IconOk       = "✓ "
	IconArrow    = "→"
	IconDot      = "·"
)

// DisableColor switches every style to plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ApplyColorEnv disables color when NO_COLOR is set or TERM is "dumb".
func ApplyColorEnv() {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		DisableColor()
	}
}
