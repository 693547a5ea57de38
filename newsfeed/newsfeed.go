package newsfeed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

// NewsFeed represents a collection of news items stored in a directory
type NewsFeed struct {
	storageDir string
}

// ReadError describes a failure to read a single news item file.
type ReadError struct {
	Filename string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

// ListResult contains the results of listing news items, including
// any per-file errors that occurred during the operation.
type ListResult struct {
	Items  []NewsItem
	Errors []ReadError
}

// NewNewsFeed creates a new news feed with the specified storage directory
func NewNewsFeed(storageDir string) (*NewsFeed, error) {
	// 0700: owner-only access
	if err := os.MkdirAll(storageDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &NewsFeed{
		storageDir: storageDir,
	}, nil
}

func (nf *NewsFeed) path(id uuid.UUID) string {
	return filepath.Join(nf.storageDir, id.String()+".json")
}

// Add saves a news item to the feed, replacing an item with the same ID.
func (nf *NewsFeed) Add(item NewsItem) error {
	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal news item: %w", err)
	}

	// 0600: owner-only read/write
	if err := os.WriteFile(nf.path(item.ID), data, 0o600); err != nil {
		return fmt.Errorf("failed to write news item: %w", err)
	}

	return nil
}

// AddNew saves the items whose URL is not in the feed yet and returns how
// many were added.
func (nf *NewsFeed) AddNew(items []NewsItem) (int, error) {
	added := 0
	for _, item := range items {
		exists, err := nf.Contains(item.URL)
		if err != nil {
			return added, err
		}
		if exists {
			continue
		}
		if err := nf.Add(item); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// Contains reports whether an item for url is stored.
func (nf *NewsFeed) Contains(url string) (bool, error) {
	item, err := nf.Get(ItemID(url))
	if err != nil {
		return false, err
	}
	return item != nil, nil
}

// List returns all news items in the feed, newest first. Corrupted or invalid
// files are collected in the result's Errors slice rather than causing the
// entire operation to fail. A non-nil error return indicates a total failure
// (e.g., the storage directory is unreadable).
func (nf *NewsFeed) List() (*ListResult, error) {
	entries, err := os.ReadDir(nf.storageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	result := &ListResult{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(nf.storageDir, entry.Name()))
		if err != nil {
			result.Errors = append(result.Errors, ReadError{
				Filename: entry.Name(),
				Err:      err,
			})
			continue
		}

		var item NewsItem
		if err := json.Unmarshal(data, &item); err != nil {
			result.Errors = append(result.Errors, ReadError{
				Filename: entry.Name(),
				Err:      err,
			})
			continue
		}

		result.Items = append(result.Items, item)
	}

	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].PublishedAt.After(result.Items[j].PublishedAt)
	})

	return result, nil
}

// Get retrieves a news item by its ID.
func (nf *NewsFeed) Get(id uuid.UUID) (*NewsItem, error) {
	data, err := os.ReadFile(nf.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Item not found (not an error)
		}
		return nil, fmt.Errorf("failed to read news item: %w", err)
	}

	var item NewsItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal news item: %w", err)
	}

	return &item, nil
}
