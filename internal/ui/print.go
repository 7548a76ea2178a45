package ui

import (
	"fmt"
	"os"
	"strings"
)

// Puts prints a styled line to stdout.
func Puts(s string) {
	fmt.Println(s)
}

// Putsf prints a formatted styled line to stdout.
func Putsf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Warn prints a warning message.
func Warn(msg string) {
	fmt.Println(Warning.Render(IconWarn + msg))
}

// Err prints an error message to stderr.
func Err(msg string) {
	styled := Error.Copy().Bold(true).Render(IconError + msg)
	fmt.Fprintln(os.Stderr, styled)
}

// Ok prints a success message.
func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

// Inf prints an info message.
func Inf(msg string) {
	fmt.Println(Info.Render("  " + msg))
}

// Header prints a section header.
func Header(s string) {
	fmt.Println()
	fmt.Println(Title.Render(s))
	fmt.Println(Muted.Render(strings.Repeat("─", len([]rune(s))+2)))
}

// Tip prints a helpful tip.
func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  dica: " + msg))
}

// Kv prints a key-value pair, padded.
func Kv(key string, value string) {
	k := KeyStyle.Render(fmt.Sprintf("  %-12s", key))
	v := ValueStyle.Render(value)
	fmt.Printf("%s %s\n", k, v)
}

// Slot prints one schedule row.
func Slot(label, activity string) {
	fmt.Printf("  %s  %s\n", SlotStyle.Render(label), ValueStyle.Render(activity))
}

// Greet returns a greeting for the time of day at hour.
func Greet(name string, hour int) string {
	salute := "Bom dia"
	icon := IconSun
	switch {
	case hour >= 18 || hour < 5:
		salute, icon = "Boa noite", IconMoon
	case hour >= 12:
		salute = "Boa tarde"
	}
	if name == "" {
		return fmt.Sprintf("%s%s!", icon, salute)
	}
	return fmt.Sprintf("%s%s, %s!", icon, salute, name)
}

// StreakBadge formats a streak count.
func StreakBadge(days int) string {
	switch days {
	case 0:
		return "nenhum dia seguido ainda"
	case 1:
		return IconFire + " 1 dia seguido"
	}
	return fmt.Sprintf("%s %d dias seguidos", IconFire, days)
}

// Die prints an error message and exits.
func Die(msg string) {
	Err(msg)
	os.Exit(1)
}

// Dief prints a formatted error message and exits.
func Dief(format string, args ...any) {
	Die(fmt.Sprintf(format, args...))
}
