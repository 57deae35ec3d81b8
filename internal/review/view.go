package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
	sourceStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	nameStyle     = lipgloss.NewStyle().Foreground(colorText)
	editedStyle   = lipgloss.NewStyle().Foreground(colorSecondary)
	conflictStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(colorMuted)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if len(m.names) == 0 {
		b.WriteString(sourceStyle.Render("Nothing will be renamed."))
		b.WriteString("\n")
	}

	conflicted := make(map[string]bool)
	for _, c := range m.Conflicts() {
		conflicted[c.ProposedName] = true
	}

	for i, e := range m.plan.Entries {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		b.WriteString(pointer)
		b.WriteString(sourceStyle.Render(e.SourceFile))
		b.WriteString("\n    ")

		if m.editing && i == m.cursor {
			b.WriteString(m.input.View())
		} else {
			style := nameStyle
			if m.names[i] != e.ProposedName {
				style = editedStyle
			}
			if conflicted[m.names[i]] {
				style = conflictStyle
			}
			b.WriteString("→ " + style.Render(m.names[i]))
		}
		b.WriteString("\n")
	}

	if n := len(m.plan.Untouched); n > 0 {
		action := "kept"
		if m.deleteUntouched {
			action = "deleted"
		}
		b.WriteString("\n")
		b.WriteString(sourceStyle.Render(fmt.Sprintf("%d untouched file(s) will be %s:", n, action)))
		b.WriteString("\n")
		for _, f := range m.plan.Untouched {
			b.WriteString(sourceStyle.Render("  " + f.Name))
			b.WriteString("\n")
		}
	}

	if len(conflicted) > 0 {
		b.WriteString("\n")
		b.WriteString(conflictStyle.Render("Several files share a name; edit them before submitting."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(helpStyle.Render("enter: save • esc: discard"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓: move • enter: edit • r: revert • d: toggle delete untouched • s: submit • q: cancel"))
	}
	b.WriteString("\n")

	return b.String()
}
