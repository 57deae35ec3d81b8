package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Base styles - will be initialized based on terminal support
	successStyle  lipgloss.Style
	errorStyle    lipgloss.Style
	warningStyle  lipgloss.Style
	infoStyle     lipgloss.Style
	dimStyle      lipgloss.Style
	includedStyle lipgloss.Style
	excludedStyle lipgloss.Style
	movieStyle    lipgloss.Style
	tvShowStyle   lipgloss.Style
	actionStyle   lipgloss.Style
	fileStyle     lipgloss.Style
)

func init() {
	initStyles()
}

func initStyles() {
	if !IsTerminal() {
		plain := lipgloss.NewStyle()
		successStyle = plain
		errorStyle = plain
		warningStyle = plain
		infoStyle = plain
		dimStyle = plain
		includedStyle = plain
		excludedStyle = plain
		movieStyle = plain
		tvShowStyle = plain
		actionStyle = plain
		fileStyle = plain
		return
	}

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	includedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	excludedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	movieStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	tvShowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	fileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
}

func Success(text string) string { return successStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }
func Dim(text string) string     { return dimStyle.Render(text) }
func Movie(text string) string   { return movieStyle.Render(text) }
func TVShow(text string) string  { return tvShowStyle.Render(text) }
func Action(text string) string  { return actionStyle.Render(text) }
func File(text string) string    { return fileStyle.Render(text) }

// Included renders a file that takes part in a rename
func Included(text string) string {
	return includedStyle.Render(text)
}

// Excluded renders a file left out of a rename
func Excluded(text string) string {
	return excludedStyle.Render(text)
}

// SuccessMsg prints a success message
func SuccessMsg(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(Success("✓") + " " + msg)
}

// ErrorMsg prints an error message
func ErrorMsg(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(Error("✗") + " " + msg)
}

// WarningMsg prints a warning message
func WarningMsg(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(Warning("⚠") + " " + msg)
}

// InfoMsg prints an info message
func InfoMsg(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(Info("ℹ") + " " + msg)
}
