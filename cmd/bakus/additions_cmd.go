package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/bakus/internal/bakus"
	"github.com/Nomadcxx/bakus/internal/logging"
	"github.com/Nomadcxx/bakus/internal/ui"
)

func newAdditionsCmd() *cobra.Command {
	var (
		completedOnly bool
		cached        bool
	)

	cmd := &cobra.Command{
		Use:     "additions",
		Aliases: []string{"ls", "list"},
		Short:   "List additions on the server",
		Long: `List additions on the server and refresh the local cache.

With --cached the last fetched list is shown without contacting the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			var additions []bakus.Addition
			if cached {
				rows, err := a.store.ListAdditions()
				if err != nil {
					return fmt.Errorf("failed to read cache: %w", err)
				}
				for _, r := range rows {
					additions = append(additions, r.Addition)
				}
				if len(rows) > 0 {
					fmt.Println(ui.Dim("Cached " + ui.Ago(rows[0].RefreshedAt)))
				}
			} else {
				if err := a.requireLogin(); err != nil {
					return err
				}
				spinner := ui.NewSpinner("Fetching additions")
				spinner.Start()
				additions, err = a.client.Additions(cmd.Context())
				spinner.Stop()
				if err != nil {
					return fmt.Errorf("failed to fetch additions: %w", err)
				}
				if err := a.store.ReplaceAdditions(additions); err != nil {
					a.logger.Error("additions", "failed to cache additions", err)
				}
			}

			if completedOnly {
				additions = completed(additions)
			}
			if len(additions) == 0 {
				ui.InfoMsg("No additions")
				return nil
			}

			additionsTable(additions).Render()
			fmt.Println(ui.Dim(ui.Plural(len(additions), "addition")))
			return nil
		},
	}

	cmd.Flags().BoolVar(&completedOnly, "completed", false, "only show finished downloads")
	cmd.Flags().BoolVar(&cached, "cached", false, "show the cached list without contacting the server")

	return cmd
}

func completed(additions []bakus.Addition) []bakus.Addition {
	var out []bakus.Addition
	for _, a := range additions {
		if a.Completed() {
			out = append(out, a)
		}
	}
	return out
}

func additionsTable(additions []bakus.Addition) *ui.Table {
	t := ui.NewTable("ID", "Name", "State", "Progress", "Files")
	t.SetMaxWidth(60)
	t.AlignRight(4)
	for _, a := range additions {
		t.AddRow(a.ID, a.Name, a.State.String(), ui.ProgressBar(a.Progress, 12), fmt.Sprint(len(a.Files)))
	}
	return t
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <magnet-link>",
		Short: "Queue a magnet link on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link := strings.TrimSpace(args[0])
			if !strings.HasPrefix(link, "magnet:?") {
				return fmt.Errorf("not a magnet link: %q", link)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireLogin(); err != nil {
				return err
			}
			addition, err := a.client.AddAddition(cmd.Context(), link)
			if err != nil {
				return fmt.Errorf("failed to add: %w", err)
			}
			a.logger.Info("additions", "queued magnet link", logging.F("id", addition.ID))

			ui.SuccessMsg("Queued %s (%s)", addition.Name, addition.ID)
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the files of an addition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireLogin(); err != nil {
				return err
			}
			addition, err := a.client.Addition(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch addition: %w", err)
			}

			ui.Section(addition.Name)
			fmt.Printf("ID:       %s\n", addition.ID)
			fmt.Printf("State:    %s\n", addition.State)
			fmt.Printf("Progress: %s\n\n", ui.ProgressBar(addition.Progress, 20))

			t := ui.NewTable("File", "Kind")
			for _, f := range addition.Files {
				t.AddRow(f.Name, f.FileType.String())
			}
			t.Render()
			fmt.Println(ui.Dim(fmt.Sprintf("%s, %s, %s",
				ui.Plural(len(addition.Videos()), "video"),
				ui.Plural(len(addition.Subtitles()), "subtitle"),
				ui.Plural(len(addition.Files), "file"))))
			return nil
		},
	}
}
