package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressBar renders a download fraction as a fixed-width bar
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(float64(width) * fraction)
	if !IsTerminal() {
		return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "] " + Percent(fraction)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + " " + Percent(fraction)
}

// Spinner shows an animated spinner while waiting on the server
type Spinner struct {
	chars  []string
	index  int
	done   chan struct{}
	once   sync.Once
	label  string
	ticker *time.Ticker
}

// NewSpinner creates a new spinner
func NewSpinner(label string) *Spinner {
	return &Spinner{
		chars: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		done:  make(chan struct{}),
		label: label,
	}
}

// Start starts the spinner animation. Outside a terminal it prints the label once.
func (s *Spinner) Start() {
	if !IsTerminal() {
		fmt.Printf("%s...\n", s.label)
		return
	}

	s.ticker = time.NewTicker(100 * time.Millisecond)
	go func() {
		for {
			select {
			case <-s.done:
				return
			case <-s.ticker.C:
				fmt.Printf("\r%s %s", s.chars[s.index], s.label)
				s.index = (s.index + 1) % len(s.chars)
			}
		}
	}()
}

// Stop stops the spinner. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
		if IsTerminal() {
			fmt.Print("\r" + strings.Repeat(" ", len(s.label)+10) + "\r")
		}
	})
}
