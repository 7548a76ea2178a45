package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return isTerminal(os.Stdout)
}

// IsStdinTTY returns true when stdin is connected to a terminal.
func IsStdinTTY() bool {
	return isTerminal(os.Stdin)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PageWriter prints journal pages written as markdown. On a terminal the
// markdown is styled with glamour; anywhere else, or in raw mode, it is
// written verbatim so it can be piped into files and other tools.
type PageWriter struct {
	out    io.Writer
	styled bool
	width  int
	style  string // glamour standard style name; empty picks one from the terminal
}

// NewPageWriter creates a PageWriter targeting out.
func NewPageWriter(out io.Writer, raw bool) *PageWriter {
	styled := false
	if f, ok := out.(*os.File); ok && !raw {
		styled = isTerminal(f)
	}
	return &PageWriter{out: out, styled: styled, width: 100}
}

// Print writes one page.
func (p *PageWriter) Print(md string) error {
	if !p.styled {
		_, err := io.WriteString(p.out, md)
		return err
	}
	_, err := io.WriteString(p.out, renderMarkdown(md, p.width, p.style))
	return err
}

// RenderMarkdown styles md for terminal output. It returns md unchanged when
// rendering fails.
func RenderMarkdown(md string) string {
	return renderMarkdown(md, 100, "")
}

func renderMarkdown(md string, width int, style string) string {
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, Muted.Render("  (markdown indisponível, mostrando texto puro)"))
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
