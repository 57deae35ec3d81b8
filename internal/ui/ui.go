// Package ui holds terminal output helpers for the bakus CLI.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/mattn/go-isatty"
)

var (
	// Detect if we're in a terminal
	isTerminal   = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	colorEnabled = true
)

// DisableColors disables all color output
func DisableColors() {
	colorEnabled = false
	isTerminal = false
	initStyles()
}

// EnableColors enables color output
func EnableColors() {
	colorEnabled = true
	isTerminal = isatty.IsTerminal(os.Stdout.Fd())
	initStyles()
}

// IsTerminal checks if stdout is a terminal
func IsTerminal() bool {
	return isTerminal && colorEnabled
}

// StdinIsTerminal reports whether prompts can be answered interactively
func StdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd())
}

// Section prints a section header
func Section(title string) {
	fmt.Println()
	if IsTerminal() {
		fmt.Println(Action("━━━ " + strings.ToUpper(title) + " ━━━"))
	} else {
		fmt.Println(strings.ToUpper(title))
		fmt.Println(strings.Repeat("=", len(title)+6))
	}
}

// Plural formats a count with its noun, e.g. "1 file" or "3 files"
func Plural(n int, singular string) string {
	return english.Plural(n, singular, "")
}

// Percent formats a 0..1 fraction as a percentage
func Percent(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return humanize.FtoaWithDigits(fraction*100, 1) + "%"
}

// Ago formats a timestamp relative to now, e.g. "3 minutes ago"
func Ago(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// Confirm prompts for user confirmation on stdin
func Confirm(prompt string) bool {
	if !StdinIsTerminal() {
		// Non-interactive: default to no
		return false
	}
	return ConfirmFrom(os.Stdin, os.Stdout, prompt)
}

// ConfirmFrom prompts on out and reads one answer line from in
func ConfirmFrom(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt+" (y/N): ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	response := strings.ToLower(strings.TrimSpace(line))
	return response == "y" || response == "yes"
}
