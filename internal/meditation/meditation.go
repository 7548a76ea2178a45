// Package meditation holds the guided meditation catalog and its terminal
// player.
package meditation

import (
	_ "embed"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Meditation is one guided session.
type Meditation struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Type        string `yaml:"type" json:"type"`
	Duration    int    `yaml:"duration" json:"duration"`
	Script      string `yaml:"script" json:"script,omitempty"`
}

const (
	perRune     = 100 * time.Millisecond
	minimumStep = 3 * time.Second
)

// Catalog returns the bundled meditations.
func Catalog() ([]Meditation, error) {
	return Parse(catalogYAML)
}

// Parse decodes a YAML list of meditations. Every entry needs an id and a
// title.
func Parse(data []byte) ([]Meditation, error) {
	var list []Meditation
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing meditation catalog: %w", err)
	}
	seen := make(map[string]bool, len(list))
	for i, m := range list {
		if m.ID == "" || m.Title == "" {
			return nil, fmt.Errorf("meditation %d: id and title are required", i)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("meditation %q listed twice", m.ID)
		}
		seen[m.ID] = true
	}
	return list, nil
}

// Find looks a meditation up by id.
func Find(list []Meditation, id string) (Meditation, bool) {
	for _, m := range list {
		if m.ID == id {
			return m, true
		}
	}
	return Meditation{}, false
}

// Steps splits a script into paragraphs. Blank paragraphs are dropped.
func Steps(script string) []string {
	script = strings.ReplaceAll(script, "\r\n", "\n")
	var steps []string
	for _, p := range strings.Split(script, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			steps = append(steps, p)
		}
	}
	return steps
}

// StepDuration is how long a step stays on screen: 100ms per character, at
// least three seconds.
func StepDuration(text string) time.Duration {
	d := time.Duration(utf8.RuneCountInString(text)) * perRune
	if d < minimumStep {
		return minimumStep
	}
	return d
}
