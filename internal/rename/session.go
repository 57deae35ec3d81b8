package rename

import "strings"

// Flow selects which rename flow a session runs.
type Flow string

const (
	FlowMovie Flow = "movie"
	FlowTV    Flow = "tv"
)

// ParseFlow converts a string to a Flow
func ParseFlow(s string) (Flow, bool) {
	switch Flow(s) {
	case FlowMovie, FlowTV:
		return Flow(s), true
	}
	return "", false
}

// Options tune the auto-population of a session.
type Options struct {
	DefaultLanguage Language
	DeleteUntouched bool
}

// Session owns the editable state of renaming one addition. It is not safe
// for concurrent use; each rename gets its own Session.
type Session struct {
	flow     Flow
	addition Addition
	opts     Options

	identity        TitleIdentity
	primary         string
	subtitles       []SubtitleChoice
	episodes        []EpisodeChoice
	overrides       map[string]string
	deleteUntouched bool
}

// NewSession starts a session for the given flow
func NewSession(flow Flow, addition Addition, opts Options) *Session {
	if opts.DefaultLanguage.IsZero() {
		opts.DefaultLanguage = English
	}
	s := &Session{
		flow:     flow,
		addition: addition,
		opts:     opts,
	}
	s.Reset()
	return s
}

// NewMovieSession starts a movie rename session
func NewMovieSession(addition Addition, opts Options) *Session {
	return NewSession(FlowMovie, addition, opts)
}

// NewTVSession starts a TV rename session
func NewTVSession(addition Addition, opts Options) *Session {
	return NewSession(FlowTV, addition, opts)
}

// Reset discards every edit and re-derives the state from the addition.
func (s *Session) Reset() {
	s.identity = TitleIdentity{}
	s.primary = ""
	s.subtitles = nil
	s.episodes = nil
	s.overrides = make(map[string]string)
	s.deleteUntouched = s.opts.DeleteUntouched

	if m, ok := ExtractTitleYear(s.addition.Name); ok {
		s.identity = NewTitleIdentity(m.Title, m.Year, "")
	}

	switch s.flow {
	case FlowTV:
		var season string
		s.episodes, season = ExtractEpisodes(s.addition.Files)
		s.identity.SetSeason(season)
	default:
		if videos := s.addition.Videos(); len(videos) > 0 {
			s.primary = videos[0].Name
		}
		s.subtitles = ChooseSubtitles(s.addition.Files, s.opts.DefaultLanguage)
	}
}

func (s *Session) Flow() Flow {
	return s.flow
}

func (s *Session) Addition() Addition {
	return s.addition
}

func (s *Session) Identity() TitleIdentity {
	return s.identity
}

func (s *Session) SetTitle(name string) {
	s.identity.Name = name
}

func (s *Session) SetYear(year string) {
	s.identity.SetYear(year)
}

func (s *Session) SetSeason(season string) {
	s.identity.SetSeason(season)
}

// Primary returns the video file renamed in the movie flow
func (s *Session) Primary() string {
	return s.primary
}

// SetPrimary picks the movie's main video. Empty clears the selection.
// It reports false when name is not a video of the addition.
func (s *Session) SetPrimary(name string) bool {
	if name != "" && !s.addition.HasFile(name, KindVideo) {
		return false
	}
	s.primary = name
	return true
}

// Subtitles returns a copy of the subtitle choices
func (s *Session) Subtitles() []SubtitleChoice {
	out := make([]SubtitleChoice, len(s.subtitles))
	copy(out, s.subtitles)
	return out
}

// SetSubtitleLanguage changes the language of one subtitle file
func (s *Session) SetSubtitleLanguage(file string, lang Language) bool {
	for i := range s.subtitles {
		if s.subtitles[i].SourceFile == file {
			s.subtitles[i].Language = lang
			return true
		}
	}
	return false
}

// RemoveSubtitle leaves a subtitle file untouched
func (s *Session) RemoveSubtitle(file string) bool {
	for i := range s.subtitles {
		if s.subtitles[i].SourceFile == file {
			s.subtitles = append(s.subtitles[:i], s.subtitles[i+1:]...)
			return true
		}
	}
	return false
}

// Episodes returns a copy of the episode choices
func (s *Session) Episodes() []EpisodeChoice {
	out := make([]EpisodeChoice, len(s.episodes))
	copy(out, s.episodes)
	return out
}

// UpdateEpisode applies fn to the choice of one file. The source file
// cannot be changed through fn.
func (s *Session) UpdateEpisode(file string, fn func(*EpisodeChoice)) bool {
	for i := range s.episodes {
		if s.episodes[i].SourceFile == file {
			fn(&s.episodes[i])
			s.episodes[i].SourceFile = file
			return true
		}
	}
	return false
}

func (s *Session) DeleteUntouched() bool {
	return s.deleteUntouched
}

func (s *Session) SetDeleteUntouched(v bool) {
	s.deleteUntouched = v
}

// OverrideName replaces the proposed name of a file by hand. The override
// outlives rebuilds while the file keeps an entry; an empty name clears it.
func (s *Session) OverrideName(source, name string) {
	if name == "" {
		delete(s.overrides, source)
		return
	}
	s.overrides[source] = name
}

// Plan rebuilds the rename plan from the current state.
func (s *Session) Plan() Plan {
	var entries []RenameEntry
	switch s.flow {
	case FlowTV:
		entries = BuildTVPlan(s.identity, s.episodes)
	default:
		entries = BuildMoviePlan(s.identity, s.primary, s.subtitles)
	}

	for i := range entries {
		if name, ok := s.overrides[entries[i].SourceFile]; ok {
			entries[i].ProposedName = name
		}
	}
	return NewPlan(s.addition.Files, entries, s.deleteUntouched)
}

// Validate reports whether the session can be submitted. A blank title
// would turn every entry into a bare ".ext" name.
func (s *Session) Validate() error {
	if strings.TrimSpace(s.identity.Name) == "" {
		return ErrTitleRequired
	}
	return nil
}

// Request freezes the current plan into the payload sent to the server.
func (s *Session) Request() RenameRequest {
	return NewRenameRequest(s.addition.ID, s.flow, s.identity, s.Plan())
}
