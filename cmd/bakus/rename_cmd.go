package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/bakus/internal/database"
	"github.com/Nomadcxx/bakus/internal/logging"
	"github.com/Nomadcxx/bakus/internal/rename"
	"github.com/Nomadcxx/bakus/internal/review"
	"github.com/Nomadcxx/bakus/internal/ui"
)

type renameOptions struct {
	title           string
	year            string
	season          string
	primary         string
	langs           []string
	exclude         []string
	include         []string
	multi           []string
	episodeTitles   []string
	names           []string
	deleteUntouched bool
	dryRun          bool
	interactive     bool
	yes             bool
}

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename the files of a completed addition",
		Long: `Rename the files of a completed addition as a movie or a TV season.

The title and year come from the addition name. In the movie flow the first
video is the main file and subtitle languages are guessed from the file
names. In the TV flow episode numbers are read from "sNNeNN" patterns and only
files of the first season found are included.

Examples:
  bakus rename movie 201 --dry-run
  bakus rename movie 201 --year 1951 --lang movie.srt=de
  bakus rename tv 301 --season 1 --multi mst3k_s01e01.mov=1-2
  bakus rename tv 301 --episode-title "mst3k_s01e03.mp4=The Crawling Eye" -i`,
	}

	cmd.AddCommand(newRenameFlowCmd(rename.FlowMovie))
	cmd.AddCommand(newRenameFlowCmd(rename.FlowTV))

	return cmd
}

func newRenameFlowCmd(flow rename.Flow) *cobra.Command {
	var opts renameOptions

	short := "Rename an addition as a movie"
	if flow == rename.FlowTV {
		short = "Rename an addition as a TV season"
	}

	cmd := &cobra.Command{
		Use:   string(flow) + " <addition-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edits, err := buildEdits(cmd, flow, opts)
			if err != nil {
				return err
			}
			return runRename(cmd, flow, args[0], edits, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.title, "title", "", "title to use instead of the guessed one")
	f.StringVar(&opts.year, "year", "", "year to use instead of the guessed one (empty drops it)")
	f.StringArrayVar(&opts.names, "name", nil, "set a final file name by hand: file=name (repeatable)")
	f.StringArrayVar(&opts.exclude, "exclude", nil, "leave a file untouched (repeatable)")
	f.BoolVar(&opts.deleteUntouched, "delete-untouched", false, "delete every file that is not renamed")
	f.BoolVarP(&opts.dryRun, "dry-run", "n", false, "show the plan without submitting it")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "review and edit the plan before submitting")
	f.BoolVarP(&opts.yes, "yes", "y", false, "submit without asking")

	switch flow {
	case rename.FlowMovie:
		f.StringVar(&opts.primary, "primary", "", "main video file (default: first video)")
		f.StringArrayVar(&opts.langs, "lang", nil, "subtitle language: file=code (repeatable)")
	case rename.FlowTV:
		f.StringVar(&opts.season, "season", "", "season number (default: first season found)")
		f.StringArrayVar(&opts.include, "include", nil, "include an episode from another season (repeatable)")
		f.StringArrayVar(&opts.multi, "multi", nil, "episode numbers: file=start-end or file=N (repeatable)")
		f.StringArrayVar(&opts.episodeTitles, "episode-title", nil, "episode title: file=title (repeatable)")
	}

	return cmd
}

// buildEdits turns the flags that were actually set into session edits
func buildEdits(cmd *cobra.Command, flow rename.Flow, opts renameOptions) (rename.Edits, error) {
	var e rename.Edits
	flags := cmd.Flags()

	if flags.Changed("title") {
		e.Title = &opts.title
	}
	if flags.Changed("year") {
		e.Year = &opts.year
	}
	if flags.Changed("season") {
		e.Season = &opts.season
	}
	if flags.Changed("delete-untouched") {
		e.DeleteUntouched = &opts.deleteUntouched
	}
	e.Primary = opts.primary
	e.Exclude = opts.exclude
	e.Include = opts.include

	var err error
	if e.Languages, err = parseAssignments("lang", opts.langs); err != nil {
		return e, err
	}
	if e.Multi, err = parseAssignments("multi", opts.multi); err != nil {
		return e, err
	}
	if e.EpisodeTitles, err = parseAssignments("episode-title", opts.episodeTitles); err != nil {
		return e, err
	}
	if e.Names, err = parseAssignments("name", opts.names); err != nil {
		return e, err
	}
	return e, nil
}

// parseAssignments parses repeated "file=value" flags. File names may not
// contain "=" but values may.
func parseAssignments(flag string, values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(values))
	for _, v := range values {
		file, value, ok := strings.Cut(v, "=")
		file = strings.TrimSpace(file)
		if !ok || file == "" {
			return nil, fmt.Errorf("--%s %q: expected file=value", flag, v)
		}
		if _, dup := out[file]; dup {
			return nil, fmt.Errorf("--%s: %q given twice", flag, file)
		}
		out[file] = value
	}
	return out, nil
}

// requireTitle refuses sessions whose title was never found or typed.
func requireTitle(session *rename.Session) error {
	if err := session.Validate(); err != nil {
		if errors.Is(err, rename.ErrTitleRequired) {
			return errors.New("title required, use --title")
		}
		return err
	}
	return nil
}

func runRename(cmd *cobra.Command, flow rename.Flow, id string, edits rename.Edits, opts renameOptions) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	addition, err := a.client.Addition(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch addition: %w", err)
	}
	if !addition.Completed() {
		return fmt.Errorf("addition %s is still downloading (%s)", addition.ID, ui.Percent(addition.Progress))
	}

	session := rename.NewSession(flow, addition.RenameInput(), a.cfg.Rename.SessionOptions())
	if err := session.Apply(edits); err != nil {
		return err
	}
	if err := requireTitle(session); err != nil {
		return err
	}
	plan := session.Plan()

	if opts.interactive {
		res, err := review.Run(session.Identity().Title(), plan)
		if err != nil {
			return err
		}
		if !res.Submitted {
			ui.InfoMsg("Cancelled, nothing submitted")
			return nil
		}
		review.Apply(session, plan, res)
		plan = session.Plan()
	}

	printPlan(os.Stdout, session.Identity(), plan)
	if plan.IsEmpty() {
		ui.WarningMsg("No file matches; only untouched files are affected")
	}

	if conflicts := plan.Conflicts(); len(conflicts) > 0 {
		return fmt.Errorf("%s would receive more than one file; fix with --name or --lang", ui.Plural(len(conflicts), "name"))
	}

	req := session.Request()
	record := database.RenameRecord{
		AdditionName: addition.Name,
		Flow:         flow,
		Request:      req,
		Status:       database.StatusSubmitted,
	}

	if opts.dryRun {
		record.Status = database.StatusDryRun
		if _, err := a.store.LogRename(record); err != nil {
			a.logger.Error("rename", "failed to log dry run", err)
		}
		ui.InfoMsg("Dry run, nothing submitted")
		return nil
	}

	if !opts.yes && !opts.interactive {
		if !ui.Confirm("Submit rename?") {
			ui.InfoMsg("Not submitted (use --yes to skip this prompt)")
			return nil
		}
	}

	spinner := ui.NewSpinner("Submitting rename")
	spinner.Start()
	err = a.client.RenameAddition(cmd.Context(), req)
	spinner.Stop()

	if err != nil {
		a.logger.Error("rename", "rename failed", err,
			logging.F("addition", req.AdditionID),
			logging.F("files", len(req.Files)))
		record.Status = database.StatusFailed
		record.Error = err.Error()
		if _, logErr := a.store.LogRename(record); logErr != nil {
			a.logger.Error("rename", "failed to log rename", logErr)
		}
		return fmt.Errorf("rename failed: %w", err)
	}

	if _, err := a.store.LogRename(record); err != nil {
		a.logger.Error("rename", "failed to log rename", err)
	}
	if _, err := a.store.RemoveAddition(req.AdditionID); err != nil {
		a.logger.Error("rename", "failed to drop addition from cache", err)
	}
	a.logger.Info("rename", "rename submitted",
		logging.F("addition", req.AdditionID),
		logging.F("title", req.NewTitle),
		logging.F("files", len(req.Files)),
		logging.F("delete_untouched", req.DeleteUntouched))

	ui.SuccessMsg("Renamed %s", ui.Plural(len(req.Files), "file"))
	return nil
}
