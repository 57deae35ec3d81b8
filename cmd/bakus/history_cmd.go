package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/bakus/internal/database"
	"github.com/Nomadcxx/bakus/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit int
		files bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent rename submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.store.RecentRenames(limit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			if len(records) == 0 {
				ui.InfoMsg("No renames yet")
				return nil
			}

			t := ui.NewTable("When", "Status", "Flow", "Title", "Files")
			t.AlignRight(4)
			for _, r := range records {
				t.AddRow(ui.Ago(r.CreatedAt), statusLabel(r.Status), string(r.Flow), r.Request.NewTitle, fmt.Sprint(len(r.Request.Files)))
			}
			t.Render()

			if files {
				for _, r := range records {
					ui.Section(r.Request.NewTitle)
					if r.Error != "" {
						fmt.Println(ui.Error(r.Error))
					}
					for _, f := range r.Request.Files {
						fmt.Printf("  %s → %s\n", f.CurrentName, f.NewName)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of sessions to show")
	cmd.Flags().BoolVar(&files, "files", false, "list the renamed files of each session")

	return cmd
}

func statusLabel(s database.RenameStatus) string {
	switch s {
	case database.StatusSubmitted:
		return ui.Success("submitted")
	case database.StatusFailed:
		return ui.Error("failed")
	default:
		return ui.Dim("dry run")
	}
}
