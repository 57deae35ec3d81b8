package rename

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownFile is returned when an edit names a file the session has no choice for.
	ErrUnknownFile = errors.New("unknown file")
	// ErrUnknownLanguage is returned for a language outside the supported table.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrInvalidEpisodes is returned for an episode range that is not "N" or "N-M".
	ErrInvalidEpisodes = errors.New("invalid episode range")
	// ErrTitleRequired is returned when the title is still blank, which
	// happens when the addition name holds no year and nobody typed one.
	ErrTitleRequired = errors.New("title required")
)

// Edits is a batch of user corrections to an auto-populated session. The
// same shape is used by command-line flags and the local API.
type Edits struct {
	Title   *string `json:"title,omitempty"`
	Year    *string `json:"year,omitempty"`
	Season  *string `json:"season,omitempty"`
	Primary string  `json:"primary,omitempty"`

	// Languages maps subtitle files to a language code or name.
	Languages map[string]string `json:"languages,omitempty"`

	// Exclude leaves files untouched: subtitles in the movie flow,
	// episodes in the TV flow.
	Exclude []string `json:"exclude,omitempty"`
	Include []string `json:"include,omitempty"`

	// Multi maps episode files to "N" or "N-M".
	Multi         map[string]string `json:"multi,omitempty"`
	EpisodeTitles map[string]string `json:"episode_titles,omitempty"`

	// Names are manual overrides of the final proposed filename.
	Names           map[string]string `json:"names,omitempty"`
	DeleteUntouched *bool             `json:"delete_untouched,omitempty"`
}

// Apply applies every edit in a fixed order and stops at the first error.
// Map edits run in sorted key order so failures are reproducible.
func (s *Session) Apply(e Edits) error {
	if e.Title != nil {
		s.SetTitle(strings.TrimSpace(*e.Title))
	}
	if e.Year != nil {
		s.SetYear(*e.Year)
	}
	if e.Season != nil {
		s.SetSeason(*e.Season)
	}

	if e.Primary != "" {
		if s.flow != FlowMovie || !s.SetPrimary(e.Primary) {
			return fmt.Errorf("primary %q: %w", e.Primary, ErrUnknownFile)
		}
	}

	for _, file := range sortedKeys(e.Languages) {
		lang, ok := LookupLanguage(e.Languages[file])
		if !ok {
			return fmt.Errorf("%s: %q: %w", file, e.Languages[file], ErrUnknownLanguage)
		}
		if !s.SetSubtitleLanguage(file, lang) {
			return fmt.Errorf("subtitle %q: %w", file, ErrUnknownFile)
		}
	}

	for _, file := range e.Include {
		if !s.UpdateEpisode(file, func(c *EpisodeChoice) { c.IncludedInSeason = true }) {
			return fmt.Errorf("episode %q: %w", file, ErrUnknownFile)
		}
	}

	for _, file := range e.Exclude {
		var ok bool
		switch s.flow {
		case FlowTV:
			ok = s.UpdateEpisode(file, func(c *EpisodeChoice) { c.IncludedInSeason = false })
		default:
			ok = s.RemoveSubtitle(file)
			if !ok && file == s.primary {
				ok = s.SetPrimary("")
			}
		}
		if !ok {
			return fmt.Errorf("exclude %q: %w", file, ErrUnknownFile)
		}
	}

	for _, file := range sortedKeys(e.Multi) {
		start, end, multi, err := ParseEpisodeRange(e.Multi[file])
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		ok := s.UpdateEpisode(file, func(c *EpisodeChoice) {
			c.EpisodeStart = start
			c.EpisodeEnd = end
			c.IsMultiPart = multi
		})
		if !ok {
			return fmt.Errorf("episode %q: %w", file, ErrUnknownFile)
		}
	}

	for _, file := range sortedKeys(e.EpisodeTitles) {
		title := strings.TrimSpace(e.EpisodeTitles[file])
		ok := s.UpdateEpisode(file, func(c *EpisodeChoice) {
			c.EpisodeTitle = title
			c.HasCustomTitle = title != ""
		})
		if !ok {
			return fmt.Errorf("episode %q: %w", file, ErrUnknownFile)
		}
	}

	if e.DeleteUntouched != nil {
		s.SetDeleteUntouched(*e.DeleteUntouched)
	}

	for _, file := range sortedKeys(e.Names) {
		if !s.addition.HasFile(file, "") {
			return fmt.Errorf("name override %q: %w", file, ErrUnknownFile)
		}
		s.OverrideName(file, strings.TrimSpace(e.Names[file]))
	}

	return nil
}

// ParseEpisodeRange parses "5" or "5-6". Only digits are kept in each bound,
// so "e05" reads as "05".
func ParseEpisodeRange(s string) (start, end string, multi bool, err error) {
	first, second, found := strings.Cut(strings.TrimSpace(s), "-")
	start = digitsOnly(first)
	if start == "" {
		return "", "", false, fmt.Errorf("%q: %w", s, ErrInvalidEpisodes)
	}
	if !found {
		return start, "", false, nil
	}
	end = digitsOnly(second)
	if end == "" {
		return "", "", false, fmt.Errorf("%q: %w", s, ErrInvalidEpisodes)
	}
	return start, end, true, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
