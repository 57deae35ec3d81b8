package rename

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleIdentity_DigitsOnly(t *testing.T) {
	var id TitleIdentity
	id.SetYear("19a8-2")
	id.SetSeason("S01")
	assert.Equal(t, "1982", id.Year())
	assert.Equal(t, "01", id.Season())
	assert.Equal(t, 1, id.SeasonNumber())

	id.SetYear("١٩٨٢")
	assert.Equal(t, "", id.Year(), "non-ASCII digits are stripped")
}

func TestTitleIdentity_Title(t *testing.T) {
	assert.Equal(t, "The Thing (1982)", NewTitleIdentity("The Thing", "1982", "").Title())
	assert.Equal(t, "The Thing", NewTitleIdentity(" The Thing ", "", "").Title())
	assert.Equal(t, "Old (0800)", NewTitleIdentity("Old", "0800", "").Title())
}

func TestTitleIdentity_SeasonFallback(t *testing.T) {
	assert.Equal(t, 0, NewTitleIdentity("x", "", "").SeasonNumber())
	assert.Equal(t, 0, NewTitleIdentity("x", "", "99999999999999999999999").SeasonNumber())
}

func TestTitleIdentity_JSON(t *testing.T) {
	data, err := json.Marshal(NewTitleIdentity("Show", "1988", "2"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Show","year":"1988","season":"2"}`, string(data))

	var back TitleIdentity
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Show","year":"19x88","season":"s3"}`), &back))
	assert.Equal(t, "1988", back.Year())
	assert.Equal(t, "3", back.Season())
}
