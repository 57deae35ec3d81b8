package rename

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TitleIdentity is the user-editable title, year and season of a rename
// session. Year and season only ever hold ASCII digits: every write strips
// anything else.
type TitleIdentity struct {
	Name   string
	year   string
	season string
}

// NewTitleIdentity builds an identity, normalizing year and season
func NewTitleIdentity(name, year, season string) TitleIdentity {
	t := TitleIdentity{Name: name}
	t.SetYear(year)
	t.SetSeason(season)
	return t
}

// Year returns the digits-only year text
func (t TitleIdentity) Year() string {
	return t.year
}

// Season returns the digits-only season text
func (t TitleIdentity) Season() string {
	return t.season
}

// SetYear stores year with non-digits removed
func (t *TitleIdentity) SetYear(year string) {
	t.year = digitsOnly(year)
}

// SetSeason stores season with non-digits removed
func (t *TitleIdentity) SetSeason(season string) {
	t.season = digitsOnly(season)
}

// YearNumber parses the year. ok is false when the field is empty or
// overflows, in which case callers omit the year.
func (t TitleIdentity) YearNumber() (int, bool) {
	n, err := strconv.Atoi(t.year)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SeasonNumber parses the season, falling back to zero.
func (t TitleIdentity) SeasonNumber() int {
	return atoiOrZero(t.season)
}

// Title renders "<Name> (<Year>)", dropping the year part when it does not
// parse as an integer.
func (t TitleIdentity) Title() string {
	name := strings.TrimSpace(t.Name)
	if _, ok := t.YearNumber(); ok {
		return fmt.Sprintf("%s (%s)", name, t.year)
	}
	return name
}

func (t TitleIdentity) String() string {
	return t.Title()
}

type identityJSON struct {
	Name   string `json:"name"`
	Year   string `json:"year"`
	Season string `json:"season,omitempty"`
}

func (t TitleIdentity) MarshalJSON() ([]byte, error) {
	return json.Marshal(identityJSON{Name: t.Name, Year: t.year, Season: t.season})
}

func (t *TitleIdentity) UnmarshalJSON(data []byte) error {
	var raw identityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = NewTitleIdentity(raw.Name, raw.Year, raw.Season)
	return nil
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
