package rename

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

var (
	// First run of non-digits directly followed by four digits.
	titleYearRegex = regexp.MustCompile(`([^0-9]+)([0-9]{4})`)

	// Characters release names use in place of spaces. Runs collapse to one
	// space on purpose, unlike a per-character replacement.
	spaceReplacementRegex = regexp.MustCompile(`[\s()._-]+`)

	// The greedy prefix pins the match to the last sNNeNN in the name.
	episodeRegex = regexp.MustCompile(`(?i)^.*s(\d{1,2})e(\d{1,2})(?:[_-]e?(\d{1,2}))?[\s._-]{0,3}(.*)$`)

	episodeMarkerRegex = regexp.MustCompile(`(?i)s\d{1,2}e\d{1,2}`)
)

// maxExtensionLen bounds a file extension, dot included.
const maxExtensionLen = 6

// FileExtension returns the extension of name, dot included. A last dotted
// segment that is too long or holds an sNNeNN marker is part of the name,
// so "Show.s01e02" has no extension.
func FileExtension(name string) string {
	ext := path.Ext(name)
	if ext == "." || len(ext) > maxExtensionLen || episodeMarkerRegex.MatchString(ext) {
		return ""
	}
	return ext
}

// TitleMatch is the outcome of ExtractTitleYear.
type TitleMatch struct {
	Title string `json:"title"`
	Year  string `json:"year"`
}

// ExtractTitleYear pulls a human title and a four digit year out of a
// release-style name such as "Dr_Strangelove_or_How_I_Learned_1964.mov".
// ok is false, with both fields empty, when the name holds no year.
func ExtractTitleYear(name string) (TitleMatch, bool) {
	match := titleYearRegex.FindStringSubmatch(name)
	if match == nil {
		return TitleMatch{}, false
	}
	return TitleMatch{
		Title: CleanTitle(match[1]),
		Year:  match[2],
	}, true
}

// CleanTitle turns separator characters into single spaces and trims.
func CleanTitle(s string) string {
	return strings.TrimSpace(spaceReplacementRegex.ReplaceAllString(s, " "))
}

// EpisodeMatch is the outcome of ExtractEpisode. Number fields keep the
// digits exactly as written in the filename.
type EpisodeMatch struct {
	Season       string `json:"season"`
	EpisodeStart string `json:"episode_start"`
	EpisodeEnd   string `json:"episode_end,omitempty"`
	Title        string `json:"title,omitempty"`
}

// SeasonNumber returns the parsed season, zero when unparsable
func (m EpisodeMatch) SeasonNumber() int {
	return atoiOrZero(m.Season)
}

// IsMultiPart reports whether the file spans an episode range
func (m EpisodeMatch) IsMultiPart() bool {
	return m.EpisodeEnd != ""
}

// ExtractEpisode parses the last sNNeNN marker of a TV filename, an optional
// "-eNN" range end, and whatever trails it up to the extension as the
// episode title.
func ExtractEpisode(filename string) (EpisodeMatch, bool) {
	base := strings.TrimSuffix(filename, FileExtension(filename))
	match := episodeRegex.FindStringSubmatch(base)
	if match == nil {
		return EpisodeMatch{}, false
	}
	return EpisodeMatch{
		Season:       match[1],
		EpisodeStart: match[2],
		EpisodeEnd:   match[3],
		Title:        CleanTitle(match[4]),
	}, true
}

// ExtractEpisodes builds one EpisodeChoice per video file. The first video
// that parses sets the reference season; a file is included only when its
// own season matches it. referenceSeason is empty when nothing parsed.
func ExtractEpisodes(files []MediaFile) (choices []EpisodeChoice, referenceSeason string) {
	matches := make([]*EpisodeMatch, 0, len(files))
	reference := -1
	for _, f := range files {
		if f.Kind != KindVideo {
			continue
		}
		m, ok := ExtractEpisode(f.Name)
		if !ok {
			matches = append(matches, nil)
			continue
		}
		if reference < 0 {
			reference = m.SeasonNumber()
			referenceSeason = strconv.Itoa(reference)
		}
		matches = append(matches, &m)
	}

	i := 0
	for _, f := range files {
		if f.Kind != KindVideo {
			continue
		}
		m := matches[i]
		i++

		choice := EpisodeChoice{SourceFile: f.Name}
		if m != nil {
			choice.IncludedInSeason = m.SeasonNumber() == reference
			choice.IsMultiPart = m.IsMultiPart()
			choice.EpisodeStart = m.EpisodeStart
			choice.EpisodeEnd = m.EpisodeEnd
			choice.EpisodeTitle = m.Title
			choice.HasCustomTitle = m.Title != ""
		}
		choices = append(choices, choice)
	}
	return choices, referenceSeason
}
