package review

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nomadcxx/bakus/internal/rename"
)

// Run shows the review screen and blocks until the user submits or cancels.
// Nothing is sent anywhere; the caller applies the result.
func Run(title string, plan rename.Plan) (Result, error) {
	final, err := tea.NewProgram(New(title, plan)).Run()
	if err != nil {
		return Result{}, fmt.Errorf("review: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("review: unexpected model %T", final)
	}
	return m.Result(), nil
}

// Apply copies the user's edits onto a session
func Apply(s *rename.Session, plan rename.Plan, res Result) {
	for source, name := range res.Edited(plan) {
		s.OverrideName(source, name)
	}
	s.SetDeleteUntouched(res.DeleteUntouched)
}
