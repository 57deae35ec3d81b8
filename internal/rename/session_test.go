package rename

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieAddition() Addition {
	return Addition{
		ID:   "201",
		Name: "The_Day_the_Earth_Stood_Still_(1951)",
		Files: []MediaFile{
			{Name: "the_day_the_earth_stood_still_1951.mp4", Kind: KindVideo},
			{Name: "feature.mp4", Kind: KindVideo},
			{Name: "sub.en.srt", Kind: KindSubtitle},
			{Name: "sub.es.srt", Kind: KindSubtitle},
			{Name: "poster.jpg", Kind: KindImage},
		},
	}
}

func tvAddition() Addition {
	return Addition{
		ID:   "301",
		Name: "Mystery.Science.Theater.1988.Season.1",
		Files: []MediaFile{
			{Name: "mst3k_s01e01-02.mov", Kind: KindVideo},
			{Name: "mst3k_s01e03_Real_Run.mp4", Kind: KindVideo},
			{Name: "mst3k_s02e01.mp4", Kind: KindVideo},
			{Name: "notes.txt", Kind: KindOther},
		},
	}
}

func TestMovieSession_AutoPopulate(t *testing.T) {
	s := NewMovieSession(movieAddition(), Options{})

	assert.Equal(t, FlowMovie, s.Flow())
	assert.Equal(t, "The Day the Earth Stood Still", s.Identity().Name)
	assert.Equal(t, "1951", s.Identity().Year())
	assert.Equal(t, "the_day_the_earth_stood_still_1951.mp4", s.Primary())
	require.Len(t, s.Subtitles(), 2)
	assert.Equal(t, "es", s.Subtitles()[1].Language.Code)
}

func TestMovieSession_EditAndPlan(t *testing.T) {
	s := NewMovieSession(movieAddition(), Options{})
	require.True(t, s.SetPrimary("feature.mp4"))
	assert.False(t, s.SetPrimary("sub.en.srt"), "subtitles cannot be the primary video")
	s.SetYear("19a51")

	plan := s.Plan()
	assert.Equal(t, []RenameEntry{
		{SourceFile: "feature.mp4", ProposedName: "The Day the Earth Stood Still (1951).mp4"},
		{SourceFile: "sub.en.srt", ProposedName: "The Day the Earth Stood Still (1951).en.srt"},
		{SourceFile: "sub.es.srt", ProposedName: "The Day the Earth Stood Still (1951).es.srt"},
	}, plan.Entries)
	assert.Equal(t, []MediaFile{
		{Name: "the_day_the_earth_stood_still_1951.mp4", Kind: KindVideo},
		{Name: "poster.jpg", Kind: KindImage},
	}, plan.Untouched)
}

func TestMovieSession_OverridesSurviveRebuild(t *testing.T) {
	s := NewMovieSession(movieAddition(), Options{})
	s.OverrideName("sub.es.srt", "Custom.es.srt")
	s.SetTitle("Renamed")

	name, ok := s.Plan().Lookup("sub.es.srt")
	require.True(t, ok)
	assert.Equal(t, "Custom.es.srt", name)

	s.OverrideName("sub.es.srt", "")
	name, _ = s.Plan().Lookup("sub.es.srt")
	assert.Equal(t, "Renamed (1951).es.srt", name)
}

func TestMovieSession_SubtitleEdits(t *testing.T) {
	s := NewMovieSession(movieAddition(), Options{})
	french, _ := LookupLanguage("fr")
	assert.True(t, s.SetSubtitleLanguage("sub.en.srt", french))
	assert.False(t, s.SetSubtitleLanguage("missing.srt", french))
	assert.True(t, s.RemoveSubtitle("sub.es.srt"))

	plan := s.Plan()
	name, _ := plan.Lookup("sub.en.srt")
	assert.Equal(t, "The Day the Earth Stood Still (1951).fr.srt", name)
	assert.Contains(t, plan.Untouched, MediaFile{Name: "sub.es.srt", Kind: KindSubtitle})
}

func TestMovieSession_Request(t *testing.T) {
	s := NewMovieSession(movieAddition(), Options{DeleteUntouched: true})
	req := s.Request()

	assert.Equal(t, "201", req.AdditionID)
	assert.Equal(t, "The Day the Earth Stood Still (1951)", req.NewTitle)
	assert.Nil(t, req.Season)
	assert.True(t, req.DeleteUntouched)
	assert.Len(t, req.Files, 3)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "season")
}

func TestTVSession_AutoPopulate(t *testing.T) {
	s := NewTVSession(tvAddition(), Options{})

	assert.Equal(t, "Mystery Science Theater", s.Identity().Name)
	assert.Equal(t, "1988", s.Identity().Year())
	assert.Equal(t, "1", s.Identity().Season())
	require.Len(t, s.Episodes(), 3)
	assert.False(t, s.Episodes()[2].IncludedInSeason)
	assert.Empty(t, s.Subtitles())
}

func TestTVSession_PlanAndRequest(t *testing.T) {
	s := NewTVSession(tvAddition(), Options{})
	s.SetTitle("Mystery Science Theater 3000")
	require.True(t, s.UpdateEpisode("mst3k_s01e03_Real_Run.mp4", func(ep *EpisodeChoice) {
		ep.EpisodeTitle = "The Real Run"
		ep.SourceFile = "hijack"
	}))
	assert.False(t, s.UpdateEpisode("missing.mp4", func(*EpisodeChoice) {}))

	plan := s.Plan()
	assert.Equal(t, []RenameEntry{
		{SourceFile: "mst3k_s01e01-02.mov", ProposedName: "Mystery Science Theater 3000 (1988) - s01e01-e02.mov"},
		{SourceFile: "mst3k_s01e03_Real_Run.mp4", ProposedName: "Mystery Science Theater 3000 (1988) - s01e03 - The Real Run.mp4"},
	}, plan.Entries)
	assert.Len(t, plan.Untouched, 2)

	req := s.Request()
	require.NotNil(t, req.Season)
	assert.Equal(t, 1, *req.Season)
	assert.True(t, req.IsTV())
}

func TestSession_Reset(t *testing.T) {
	s := NewTVSession(tvAddition(), Options{})
	s.SetTitle("Other")
	s.SetSeason("7")
	s.SetDeleteUntouched(true)
	s.OverrideName("mst3k_s01e01-02.mov", "x.mov")

	s.Reset()
	assert.Equal(t, "Mystery Science Theater", s.Identity().Name)
	assert.Equal(t, "1", s.Identity().Season())
	assert.False(t, s.DeleteUntouched())
	name, _ := s.Plan().Lookup("mst3k_s01e01-02.mov")
	assert.NotEqual(t, "x.mov", name)
}

func TestSession_NoMatchLeavesBlanks(t *testing.T) {
	s := NewMovieSession(Addition{ID: "1", Name: "The End", Files: []MediaFile{{Name: "The_End.mp4", Kind: KindVideo}}}, Options{})
	assert.Equal(t, "", s.Identity().Name)
	assert.Equal(t, "", s.Identity().Year())

	s.SetTitle("The End")
	name, _ := s.Plan().Lookup("The_End.mp4")
	assert.Equal(t, "The End.mp4", name)
}

func TestSession_ValidateRequiresTitle(t *testing.T) {
	s := NewMovieSession(Addition{ID: "1", Name: "The End", Files: []MediaFile{
		{Name: "The_End.mp4", Kind: KindVideo},
		{Name: "The_End.srt", Kind: KindSubtitle},
	}}, Options{})
	assert.ErrorIs(t, s.Validate(), ErrTitleRequired)

	s.SetTitle("   ")
	assert.ErrorIs(t, s.Validate(), ErrTitleRequired)

	s.SetTitle("The End")
	assert.NoError(t, s.Validate())
}

func TestParseFlow(t *testing.T) {
	f, ok := ParseFlow("tv")
	assert.True(t, ok)
	assert.Equal(t, FlowTV, f)
	_, ok = ParseFlow("music")
	assert.False(t, ok)
}
