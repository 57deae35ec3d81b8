package bakus

import (
	"time"

	"github.com/Nomadcxx/bakus/internal/rename"
)

// AdditionState is the download state of an addition
type AdditionState string

const (
	StateDownloading AdditionState = "DW"
	StateCompleted   AdditionState = "CP"
)

// String returns a human-readable representation of the state
func (s AdditionState) String() string {
	switch s {
	case StateDownloading:
		return "downloading"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// File is a file of an addition as the server reports it
type File struct {
	Name     string          `json:"name"`
	FileType rename.FileKind `json:"file_type"`
}

// Addition is a download tracked by the server
type Addition struct {
	ID       string        `json:"id"`
	State    AdditionState `json:"state"`
	Name     string        `json:"name"`
	Progress float64       `json:"progress"`
	Files    []File        `json:"files"`
}

// Completed reports whether the download finished. Only completed
// additions can be renamed.
func (a Addition) Completed() bool {
	return a.State == StateCompleted
}

// Videos returns the video files
func (a Addition) Videos() []File {
	return a.filter(rename.KindVideo)
}

// Subtitles returns the subtitle files
func (a Addition) Subtitles() []File {
	return a.filter(rename.KindSubtitle)
}

func (a Addition) filter(kind rename.FileKind) []File {
	var out []File
	for _, f := range a.Files {
		if f.FileType == kind {
			out = append(out, f)
		}
	}
	return out
}

// RenameInput converts the addition into the rename engine's input
func (a Addition) RenameInput() rename.Addition {
	files := make([]rename.MediaFile, 0, len(a.Files))
	for _, f := range a.Files {
		files = append(files, rename.MediaFile{Name: f.Name, Kind: f.FileType})
	}
	return rename.Addition{ID: a.ID, Name: a.Name, Files: files}
}

type additionResults struct {
	Results []Addition `json:"results"`
}

// Profile is the logged in account
type Profile struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Expiry time.Time `json:"expiry"`
	Token  string    `json:"token"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type linkPayload struct {
	MagnetLink string `json:"magnet_link"`
}
