// Package review is an interactive summary of a rename plan. The user can
// edit each proposed filename and decide what happens to untouched files
// before anything is sent to the server.
package review

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nomadcxx/bakus/internal/rename"
)

var (
	colorPrimary   = lipgloss.Color("#AA5CC3")
	colorSecondary = lipgloss.Color("#00A4DC")
	colorText      = lipgloss.Color("#FFFFFF")
	colorMuted     = lipgloss.Color("#888888")
	colorError     = lipgloss.Color("#FF5555")
)

// Result is what the user decided. Names maps each source file to its
// final proposed name.
type Result struct {
	Submitted       bool
	Names           map[string]string
	DeleteUntouched bool
}

// Edited returns the sources whose name differs from the plan's proposal
func (r Result) Edited(plan rename.Plan) map[string]string {
	out := make(map[string]string)
	for _, e := range plan.Entries {
		if name, ok := r.Names[e.SourceFile]; ok && name != e.ProposedName {
			out[e.SourceFile] = name
		}
	}
	return out
}

// Model is the bubbletea model of the review screen
type Model struct {
	title           string
	plan            rename.Plan
	names           []string
	deleteUntouched bool

	cursor  int
	editing bool
	input   textinput.Model
	width   int

	done      bool
	submitted bool
}

// New builds the review screen for a plan
func New(title string, plan rename.Plan) Model {
	names := make([]string, len(plan.Entries))
	for i, e := range plan.Entries {
		names[i] = e.ProposedName
	}

	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 60
	ti.Prompt = "→ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)

	return Model{
		title:           title,
		plan:            plan,
		names:           names,
		deleteUntouched: plan.DeleteUntouched,
		input:           ti,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Result returns the decisions made so far
func (m Model) Result() Result {
	names := make(map[string]string, len(m.names))
	for i, e := range m.plan.Entries {
		names[e.SourceFile] = m.names[i]
	}
	return Result{
		Submitted:       m.submitted,
		Names:           names,
		DeleteUntouched: m.deleteUntouched,
	}
}

// Done reports whether the user submitted or cancelled
func (m Model) Done() bool {
	return m.done
}

// Conflicts reports proposed names currently shared by several files
func (m Model) Conflicts() []rename.Conflict {
	return m.current().Conflicts()
}

func (m Model) current() rename.Plan {
	p := m.plan
	p.Entries = make([]rename.RenameEntry, len(m.plan.Entries))
	for i, e := range m.plan.Entries {
		p.Entries[i] = rename.RenameEntry{SourceFile: e.SourceFile, ProposedName: m.names[i]}
	}
	p.DeleteUntouched = m.deleteUntouched
	return p
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 20 {
			m.input.Width = msg.Width - 10
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKeys(msg)
		}
		return m.handleKeys(msg.String())
	}

	return m, nil
}

func (m Model) handleKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q", "esc":
		m.done = true
		m.submitted = false
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}

	case "enter", "e":
		if len(m.names) == 0 {
			return m, nil
		}
		m.editing = true
		m.input.SetValue(m.names[m.cursor])
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd

	case "r":
		if len(m.names) > 0 {
			m.names[m.cursor] = m.plan.Entries[m.cursor].ProposedName
		}

	case "d", " ", "space":
		m.deleteUntouched = !m.deleteUntouched

	case "s":
		if len(m.Conflicts()) > 0 {
			return m, nil
		}
		m.done = true
		m.submitted = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.done = true
		m.submitted = false
		return m, tea.Quit

	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		// Blank names are not a valid rename target
		if v := strings.TrimSpace(m.input.Value()); v != "" {
			m.names[m.cursor] = v
		}
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
