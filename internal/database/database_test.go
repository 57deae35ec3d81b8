package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nomadcxx/bakus/internal/bakus"
	"github.com/Nomadcxx/bakus/internal/rename"
)

func setupTestDB(t *testing.T) *Store {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	return db
}

func TestOpenInMemory(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	version, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)
	assert.Equal(t, ":memory:", db.Path())
}

func TestOpenPathReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bakus.db")

	db, err := OpenPath(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveToken("ada", "tok", time.Time{}))
	require.NoError(t, db.Close())

	// Migrations must not re-run on an existing database
	db, err = OpenPath(path)
	require.NoError(t, err)
	defer db.Close()

	token, err := db.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestCredentials(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	creds, err := db.Credentials()
	require.NoError(t, err)
	assert.Nil(t, creds)

	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, db.SaveToken("ada", "first", time.Time{}))
	require.NoError(t, db.SaveToken("ada", "second", expiry))

	creds, err = db.Credentials()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "ada", creds.Username)
	assert.Equal(t, "second", creds.Token)
	assert.True(t, creds.Expiry.Equal(expiry))
	assert.False(t, creds.Expired(expiry.Add(-time.Hour)))
	assert.True(t, creds.Expired(expiry.Add(time.Hour)))

	require.NoError(t, db.ClearToken())
	token, err := db.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestCredentialsExpiredWithoutExpiry(t *testing.T) {
	c := Credentials{Token: "x"}
	assert.False(t, c.Expired(time.Now()))
}

func sampleAdditions() []bakus.Addition {
	return []bakus.Addition{
		{
			ID:       "b",
			Name:     "Second",
			State:    bakus.StateDownloading,
			Progress: 0.5,
		},
		{
			ID:       "a",
			Name:     "The_Day_the_Earth_Stood_Still_(1951)",
			State:    bakus.StateCompleted,
			Progress: 1,
			Files: []bakus.File{
				{Name: "movie.mkv", FileType: rename.KindVideo},
				{Name: "movie.en.srt", FileType: rename.KindSubtitle},
			},
		},
	}
}

func TestReplaceAndListAdditions(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	require.NoError(t, db.ReplaceAdditions(sampleAdditions()))

	cached, err := db.ListAdditions()
	require.NoError(t, err)
	require.Len(t, cached, 2)

	// Server order is preserved, not id order
	assert.Equal(t, "b", cached[0].ID)
	assert.Equal(t, "a", cached[1].ID)
	assert.Equal(t, bakus.StateCompleted, cached[1].State)
	assert.Equal(t, sampleAdditions()[1].Files, cached[1].Files)
	assert.False(t, cached[1].RefreshedAt.IsZero())

	require.NoError(t, db.ReplaceAdditions(sampleAdditions()[:1]))
	cached, err = db.ListAdditions()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "b", cached[0].ID)
}

func TestGetAndRemoveAddition(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	require.NoError(t, db.ReplaceAdditions(sampleAdditions()))

	got, err := db.GetAddition("a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "The_Day_the_Earth_Stood_Still_(1951)", got.Name)

	removed, err := db.RemoveAddition("a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = db.RemoveAddition("a")
	require.NoError(t, err)
	assert.False(t, removed)

	got, err = db.GetAddition("a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLogRenameAndRecent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	season := 3
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	movieID, err := db.LogRename(RenameRecord{
		AdditionName: "Movie",
		Flow:         rename.FlowMovie,
		Request: rename.RenameRequest{
			AdditionID: "201",
			NewTitle:   "Movie (1951)",
			Files: []rename.FileRename{
				{CurrentName: "a.mkv", NewName: "Movie (1951).mkv"},
				{CurrentName: "a.srt", NewName: "Movie (1951).en.srt"},
			},
		},
		Status:    StatusSubmitted,
		CreatedAt: base,
	})
	require.NoError(t, err)
	assert.Len(t, movieID, 36)

	_, err = db.LogRename(RenameRecord{
		ID:    "fixed-id",
		Flow:  rename.FlowTV,
		Error: "server error",
		Request: rename.RenameRequest{
			AdditionID:      "301",
			NewTitle:        "Show",
			Season:          &season,
			DeleteUntouched: true,
		},
		Status:    StatusFailed,
		CreatedAt: base.Add(time.Minute),
	})
	require.NoError(t, err)

	records, err := db.RecentRenames(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	tv := records[0]
	assert.Equal(t, "fixed-id", tv.ID)
	assert.Equal(t, rename.FlowTV, tv.Flow)
	assert.Equal(t, StatusFailed, tv.Status)
	assert.Equal(t, "server error", tv.Error)
	require.NotNil(t, tv.Request.Season)
	assert.Equal(t, 3, *tv.Request.Season)
	assert.True(t, tv.Request.DeleteUntouched)
	assert.Empty(t, tv.Request.Files)

	movie := records[1]
	assert.Equal(t, movieID, movie.ID)
	assert.Nil(t, movie.Request.Season)
	require.Len(t, movie.Request.Files, 2)
	assert.Equal(t, "Movie (1951).en.srt", movie.Request.Files[1].NewName)

	records, err = db.RecentRenames(1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
