// Package rename infers titles, years, seasons, episodes and subtitle
// languages from addition filenames and proposes a rename plan.
package rename

// FileKind is the coarse type tag the server assigns to every addition file.
type FileKind string

const (
	KindVideo    FileKind = "VID"
	KindSubtitle FileKind = "SUB"
	KindImage    FileKind = "IMG"
	KindOther    FileKind = "OTH"
)

// String returns a human-readable representation of the kind
func (k FileKind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindSubtitle:
		return "subtitle"
	case KindImage:
		return "image"
	default:
		return "other"
	}
}

// MediaFile is a single file of an addition. Name is unique within the addition.
type MediaFile struct {
	Name string   `json:"name"`
	Kind FileKind `json:"file_type"`
}

// Addition is the slice of a server addition the rename engine works from.
type Addition struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Files []MediaFile `json:"files"`
}

// Videos returns the video files in addition order
func (a Addition) Videos() []MediaFile {
	return a.filesOf(KindVideo)
}

// Subtitles returns the subtitle files in addition order
func (a Addition) Subtitles() []MediaFile {
	return a.filesOf(KindSubtitle)
}

// HasFile reports whether name belongs to the addition and is of the given
// kind. An empty kind matches any file.
func (a Addition) HasFile(name string, kind FileKind) bool {
	for _, f := range a.Files {
		if f.Name == name && (kind == "" || f.Kind == kind) {
			return true
		}
	}
	return false
}

func (a Addition) filesOf(kind FileKind) []MediaFile {
	var out []MediaFile
	for _, f := range a.Files {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// SubtitleChoice binds a subtitle file to the language used in its new name.
type SubtitleChoice struct {
	SourceFile string   `json:"source_file"`
	Language   Language `json:"language"`
}

// EpisodeChoice is the editable per-file state of a TV rename.
// EpisodeEnd is only meaningful when IsMultiPart is set.
type EpisodeChoice struct {
	SourceFile       string `json:"source_file"`
	IncludedInSeason bool   `json:"included_in_season"`
	IsMultiPart      bool   `json:"is_multi_part"`
	EpisodeStart     string `json:"episode_start"`
	EpisodeEnd       string `json:"episode_end"`
	HasCustomTitle   bool   `json:"has_custom_title"`
	EpisodeTitle     string `json:"episode_title"`
}

// RenameEntry maps an original filename to its proposed new name.
type RenameEntry struct {
	SourceFile   string `json:"source_file"`
	ProposedName string `json:"proposed_name"`
}
