package rename

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestApply_MovieEdits(t *testing.T) {
	s := NewMovieSession(movieAddition(), Options{})

	err := s.Apply(Edits{
		Title:           strPtr("  The Day the Earth Stood Still "),
		Year:            strPtr("2008"),
		Primary:         "feature.mp4",
		Languages:       map[string]string{"sub.es.srt": "deu"},
		Exclude:         []string{"sub.en.srt"},
		DeleteUntouched: boolPtr(true),
	})
	require.NoError(t, err)

	plan := s.Plan()
	assert.Equal(t, []RenameEntry{
		{SourceFile: "feature.mp4", ProposedName: "The Day the Earth Stood Still (2008).mp4"},
		{SourceFile: "sub.es.srt", ProposedName: "The Day the Earth Stood Still (2008).de.srt"},
	}, plan.Entries)
	assert.True(t, plan.DeleteUntouched)
	assert.Len(t, plan.Untouched, 3)
}

func TestApply_MovieExcludePrimary(t *testing.T) {
	s := NewMovieSession(movieAddition(), Options{})
	require.NoError(t, s.Apply(Edits{Exclude: []string{"the_day_the_earth_stood_still_1951.mp4"}}))

	assert.Empty(t, s.Primary())
	_, ok := s.Plan().Lookup("the_day_the_earth_stood_still_1951.mp4")
	assert.False(t, ok)
}

func TestApply_TVEdits(t *testing.T) {
	s := NewTVSession(tvAddition(), Options{})

	err := s.Apply(Edits{
		Include:       []string{"mst3k_s02e01.mp4"},
		Exclude:       []string{"mst3k_s01e03_Real_Run.mp4"},
		Multi:         map[string]string{"mst3k_s02e01.mp4": "e04-e05"},
		EpisodeTitles: map[string]string{"mst3k_s02e01.mp4": "The Crawling Eye"},
	})
	require.NoError(t, err)

	plan := s.Plan()
	assert.Equal(t, []RenameEntry{
		{SourceFile: "mst3k_s01e01-02.mov", ProposedName: "Mystery Science Theater (1988) - s01e01-e02.mov"},
		{SourceFile: "mst3k_s02e01.mp4", ProposedName: "Mystery Science Theater (1988) - s01e04-e05 - The Crawling Eye.mp4"},
	}, plan.Entries)
}

func TestApply_ClearEpisodeTitle(t *testing.T) {
	s := NewTVSession(tvAddition(), Options{})
	require.NoError(t, s.Apply(Edits{EpisodeTitles: map[string]string{"mst3k_s01e03_Real_Run.mp4": " "}}))

	name, ok := s.Plan().Lookup("mst3k_s01e03_Real_Run.mp4")
	require.True(t, ok)
	assert.Equal(t, "Mystery Science Theater (1988) - s01e03.mp4", name)
}

func TestApply_NameOverride(t *testing.T) {
	s := NewMovieSession(movieAddition(), Options{})
	require.NoError(t, s.Apply(Edits{Names: map[string]string{"sub.en.srt": "Custom.en.srt"}}))

	name, _ := s.Plan().Lookup("sub.en.srt")
	assert.Equal(t, "Custom.en.srt", name)
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name  string
		flow  Flow
		edits Edits
		want  error
	}{
		{"primary not a video", FlowMovie, Edits{Primary: "sub.en.srt"}, ErrUnknownFile},
		{"primary in tv flow", FlowTV, Edits{Primary: "mst3k_s02e01.mp4"}, ErrUnknownFile},
		{"unknown language", FlowMovie, Edits{Languages: map[string]string{"sub.en.srt": "klingon"}}, ErrUnknownLanguage},
		{"language for missing subtitle", FlowMovie, Edits{Languages: map[string]string{"nope.srt": "fr"}}, ErrUnknownFile},
		{"exclude unknown", FlowTV, Edits{Exclude: []string{"notes.txt"}}, ErrUnknownFile},
		{"include in movie flow", FlowMovie, Edits{Include: []string{"feature.mp4"}}, ErrUnknownFile},
		{"bad range", FlowTV, Edits{Multi: map[string]string{"mst3k_s02e01.mp4": "a-b"}}, ErrInvalidEpisodes},
		{"name for missing file", FlowMovie, Edits{Names: map[string]string{"ghost.mkv": "x.mkv"}}, ErrUnknownFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addition := movieAddition()
			if tt.flow == FlowTV {
				addition = tvAddition()
			}
			s := NewSession(tt.flow, addition, Options{})
			err := s.Apply(tt.edits)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseEpisodeRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
		multi      bool
		wantErr    bool
	}{
		{"5", "5", "", false, false},
		{"e05", "05", "", false, false},
		{"1-2", "1", "2", true, false},
		{" 03-e04 ", "03", "04", true, false},
		{"", "", "", false, true},
		{"x", "", "", false, true},
		{"3-", "", "", false, true},
	}
	for _, tt := range tests {
		start, end, multi, err := ParseEpisodeRange(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidEpisodes, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.start, start, tt.in)
		assert.Equal(t, tt.end, end, tt.in)
		assert.Equal(t, tt.multi, multi, tt.in)
	}
}
