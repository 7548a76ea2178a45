package meditation

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rnwolfe/agenda/internal/ui"
)

const finishedText = "Sessão concluída. Respire fundo e leve essa calma com você."

// stepDoneMsg fires when the step scheduled under gen has been shown long
// enough. Messages from an older generation are stale and ignored.
type stepDoneMsg struct{ gen int }

// Player is a Bubbletea model that walks through a meditation script one
// step at a time. It starts paused.
type Player struct {
	med     Meditation
	steps   []string
	current int
	playing bool
	done    bool
	gen     int

	width int
	after func(time.Duration, tea.Msg) tea.Cmd
}

// NewPlayer creates a Player for m.
func NewPlayer(m Meditation) *Player {
	steps := Steps(m.Script)
	return &Player{
		med:   m,
		steps: steps,
		done:  len(steps) == 0,
		width: 72,
		after: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
	}
}

// Play runs the player full screen until the user quits.
func Play(m Meditation) error {
	prog := tea.NewProgram(NewPlayer(m), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("meditation player: %w", err)
	}
	return nil
}

// Step returns the zero-based index of the step on screen.
func (p *Player) Step() int { return p.current }

// Playing reports whether the timer is running.
func (p *Player) Playing() bool { return p.playing }

// Done reports whether every step has been shown.
func (p *Player) Done() bool { return p.done }

func (p *Player) Init() tea.Cmd {
	return nil
}

func (p *Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = max(min(msg.Width-4, 72), 20)
		return p, nil

	case stepDoneMsg:
		if msg.gen != p.gen || !p.playing {
			return p, nil
		}
		p.current++
		if p.current >= len(p.steps) {
			p.current = len(p.steps)
			p.playing = false
			p.done = true
			return p, nil
		}
		return p, p.schedule()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			p.playing = false
			return p, tea.Quit

		case " ", "space", "enter":
			if p.done {
				return p, p.restart()
			}
			if p.playing {
				p.playing = false
				p.gen++
				return p, nil
			}
			p.playing = true
			return p, p.schedule()

		case "r":
			return p, p.restart()
		}
	}
	return p, nil
}

func (p *Player) restart() tea.Cmd {
	p.gen++
	p.current = 0
	p.done = len(p.steps) == 0
	if p.done {
		return nil
	}
	p.playing = true
	return p.schedule()
}

func (p *Player) schedule() tea.Cmd {
	p.gen++
	return p.after(StepDuration(p.steps[p.current]), stepDoneMsg{gen: p.gen})
}

func (p *Player) View() string {
	var b strings.Builder

	b.WriteString("  " + ui.Title.Render(ui.IconLotus+" "+p.med.Title) + "\n")
	if p.med.Type != "" {
		b.WriteString("  " + ui.Muted.Render(fmt.Sprintf("%s %s %d min", p.med.Type, ui.IconDot, p.med.Duration)) + "\n")
	}
	b.WriteString("\n")

	text := finishedText
	if len(p.steps) == 0 {
		text = "Esta meditação não tem roteiro."
	} else if !p.done {
		text = p.steps[p.current]
	}
	body := lipgloss.NewStyle().Width(p.width).PaddingLeft(2).Render(text)
	b.WriteString(body + "\n\n")

	if len(p.steps) > 0 {
		shown := min(p.current+1, len(p.steps))
		b.WriteString("  " + ui.Muted.Render(fmt.Sprintf("Passo %d de %d", shown, len(p.steps))) + "  " + progressBar(shown, len(p.steps), 20) + "\n")
	}

	state := "pausado"
	switch {
	case p.done:
		state = "concluído"
	case p.playing:
		state = "tocando"
	}
	help := ui.Muted.Render(" · espaço play/pausa · r recomeçar · q sair")
	b.WriteString("\n  " + ui.Accent.Render(state) + help + "\n")
	return b.String()
}

func progressBar(n, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := n * width / total
	return ui.Success.Render(strings.Repeat("━", filled)) + ui.Muted.Render(strings.Repeat("━", width-filled))
}
