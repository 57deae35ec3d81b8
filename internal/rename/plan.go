package rename

import (
	"fmt"
	"sort"
	"strings"
)

// Plan is a finished rename proposal. Files of the addition without an
// entry are untouched; DeleteUntouched disposes of all of them at once.
type Plan struct {
	Entries         []RenameEntry `json:"entries"`
	Untouched       []MediaFile   `json:"untouched"`
	DeleteUntouched bool          `json:"delete_untouched"`
}

// Conflict is a proposed name claimed by more than one source file.
type Conflict struct {
	ProposedName string   `json:"proposed_name"`
	Sources      []string `json:"sources"`
}

// NewPlan pairs entries with the untouched files of the addition
func NewPlan(files []MediaFile, entries []RenameEntry, deleteUntouched bool) Plan {
	return Plan{
		Entries:         entries,
		Untouched:       Untouched(files, entries),
		DeleteUntouched: deleteUntouched,
	}
}

// IsEmpty reports whether nothing will be renamed
func (p Plan) IsEmpty() bool {
	return len(p.Entries) == 0
}

// Lookup returns the proposed name for a source file
func (p Plan) Lookup(source string) (string, bool) {
	for _, e := range p.Entries {
		if e.SourceFile == source {
			return e.ProposedName, true
		}
	}
	return "", false
}

// Conflicts lists proposed names shared by several source files, sorted by name.
func (p Plan) Conflicts() []Conflict {
	sources := make(map[string][]string)
	for _, e := range p.Entries {
		sources[e.ProposedName] = append(sources[e.ProposedName], e.SourceFile)
	}

	var out []Conflict
	for name, srcs := range sources {
		if len(srcs) > 1 {
			out = append(out, Conflict{ProposedName: name, Sources: srcs})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ProposedName < out[j].ProposedName
	})
	return out
}

// BuildMoviePlan renames the primary video to "<Title> (<Year>).<ext>" and
// every subtitle to "<Title> (<Year>).<iso>.<ext>". An empty primary yields
// no video entry.
func BuildMoviePlan(identity TitleIdentity, primary string, subtitles []SubtitleChoice) []RenameEntry {
	title := identity.Title()
	var entries []RenameEntry

	if primary != "" {
		entries = append(entries, RenameEntry{
			SourceFile:   primary,
			ProposedName: withExtension(title, primary),
		})
	}

	for _, sub := range subtitles {
		entries = append(entries, RenameEntry{
			SourceFile:   sub.SourceFile,
			ProposedName: SubtitleName(title, sub),
		})
	}
	return entries
}

// SubtitleName renders the new name of a subtitle file for a title
func SubtitleName(title string, sub SubtitleChoice) string {
	lang := sub.Language
	if lang.IsZero() {
		lang = English
	}
	return withExtension(title+"."+lang.Code, sub.SourceFile)
}

// BuildTVPlan renames every episode included in the season to
// "<Title> (<Year>) - sSSeEE[-eFF][ - <Episode Title>].<ext>".
func BuildTVPlan(identity TitleIdentity, episodes []EpisodeChoice) []RenameEntry {
	title := identity.Title()
	season := identity.SeasonNumber()

	var entries []RenameEntry
	for _, ep := range episodes {
		if !ep.IncludedInSeason {
			continue
		}
		entries = append(entries, RenameEntry{
			SourceFile:   ep.SourceFile,
			ProposedName: withExtension(EpisodeName(title, season, ep), ep.SourceFile),
		})
	}
	return entries
}

// EpisodeName renders the extension-less name of one episode file.
// Unparsable episode numbers render as zero.
func EpisodeName(title string, season int, ep EpisodeChoice) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s - s%02de%02d", title, season, atoiOrZero(digitsOnly(ep.EpisodeStart))))
	if ep.IsMultiPart {
		sb.WriteString(fmt.Sprintf("-e%02d", atoiOrZero(digitsOnly(ep.EpisodeEnd))))
	}
	if ep.HasCustomTitle {
		if t := strings.TrimSpace(ep.EpisodeTitle); t != "" {
			sb.WriteString(" - ")
			sb.WriteString(t)
		}
	}
	return sb.String()
}

// Untouched returns, in addition order, every file no entry renames.
func Untouched(files []MediaFile, entries []RenameEntry) []MediaFile {
	renamed := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		renamed[e.SourceFile] = struct{}{}
	}

	seen := make(map[string]struct{}, len(files))
	var out []MediaFile
	for _, f := range files {
		if _, ok := renamed[f.Name]; ok {
			continue
		}
		if _, dup := seen[f.Name]; dup {
			continue
		}
		seen[f.Name] = struct{}{}
		out = append(out, f)
	}
	return out
}

func withExtension(name, source string) string {
	return name + FileExtension(source)
}
