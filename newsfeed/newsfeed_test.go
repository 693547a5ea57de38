package newsfeed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: create a test news feed
func setupTestFeed(t *testing.T) *NewsFeed {
	tempDir := t.TempDir()
	feed, err := NewNewsFeed(tempDir)
	require.NoError(t, err)
	return feed
}

// TestNewsFeed_AddAndGet verifies items round trip through storage
func TestNewsFeed_AddAndGet(t *testing.T) {
	feed := setupTestFeed(t)
	item := FromRecord(sampleRecord("https://www.nordbayern.de/a"), time.Now().UTC())

	require.NoError(t, feed.Add(item))

	got, err := feed.Get(item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, item.URL, got.URL)
	assert.Equal(t, item.Content, got.Content)
	assert.Equal(t, item.Categories, got.Categories)
}

// TestNewsFeed_GetMissing verifies unknown IDs are not an error
func TestNewsFeed_GetMissing(t *testing.T) {
	feed := setupTestFeed(t)

	got, err := feed.Get(ItemID("https://nowhere"))

	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestNewsFeed_AddNew verifies already stored URLs are skipped
func TestNewsFeed_AddNew(t *testing.T) {
	feed := setupTestFeed(t)
	now := time.Now().UTC()
	first := FromRecord(sampleRecord("https://www.nordbayern.de/a"), now)
	require.NoError(t, feed.Add(first))

	added, err := feed.AddNew([]NewsItem{
		FromRecord(sampleRecord("https://www.nordbayern.de/a"), now),
		FromRecord(sampleRecord("https://www.nordbayern.de/b"), now),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, added)
	exists, err := feed.Contains("https://www.nordbayern.de/b")
	require.NoError(t, err)
	assert.True(t, exists)
}

// TestNewsFeed_ListNewestFirst verifies sorting and per-file errors
func TestNewsFeed_ListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	feed, err := NewNewsFeed(dir)
	require.NoError(t, err)

	older := FromRecord(sampleRecord("https://www.nordbayern.de/old"), time.Now())
	older.PublishedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := FromRecord(sampleRecord("https://www.nordbayern.de/new"), time.Now())
	newer.PublishedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, feed.Add(older))
	require.NoError(t, feed.Add(newer))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	result, err := feed.List()
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, newer.URL, result.Items[0].URL)
	assert.Equal(t, older.URL, result.Items[1].URL)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "broken.json", result.Errors[0].Filename)
}
