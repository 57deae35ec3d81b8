package main

import (
	"fmt"
	"io"

	"github.com/Nomadcxx/bakus/internal/rename"
	"github.com/Nomadcxx/bakus/internal/ui"
)

// printPlan writes a human readable rename plan
func printPlan(w io.Writer, identity rename.TitleIdentity, plan rename.Plan) {
	fmt.Fprintf(w, "%s %s\n", ui.Action("Title:"), identity.Title())
	if identity.Season() != "" {
		fmt.Fprintf(w, "%s %d\n", ui.Action("Season:"), identity.SeasonNumber())
	}
	fmt.Fprintln(w)

	conflicted := make(map[string]bool)
	for _, c := range plan.Conflicts() {
		conflicted[c.ProposedName] = true
	}

	if plan.IsEmpty() {
		fmt.Fprintln(w, ui.Dim("  (nothing to rename)"))
	}
	for _, e := range plan.Entries {
		name := ui.Included(e.ProposedName)
		if conflicted[e.ProposedName] {
			name = ui.Error(e.ProposedName + " (conflict)")
		}
		fmt.Fprintf(w, "  %s\n    → %s\n", ui.File(e.SourceFile), name)
	}

	if len(plan.Untouched) > 0 {
		action := "kept"
		if plan.DeleteUntouched {
			action = "deleted"
		}
		fmt.Fprintf(w, "\n%s will be %s:\n", ui.Plural(len(plan.Untouched), "untouched file"), action)
		for _, f := range plan.Untouched {
			fmt.Fprintf(w, "  %s\n", ui.Excluded(f.Name))
		}
	}
	fmt.Fprintln(w)
}
