package main

import (
	"github.com/spf13/cobra"

	"github.com/Nomadcxx/bakus/internal/rename"
	"github.com/Nomadcxx/bakus/internal/ui"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the subtitle languages bakus knows",
		Long: `List the subtitle languages bakus knows. Use the code with --lang, e.g.
--lang movie.srt=de. Three-letter codes such as "deu" are accepted too.`,
		Run: func(cmd *cobra.Command, args []string) {
			t := ui.NewTable("Code", "Language")
			for _, l := range rename.Languages() {
				t.AddRow(l.Code, l.Name)
			}
			t.Render()
		},
	}
}
