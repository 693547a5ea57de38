package config

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pevans/nordfeed"
)

// Setting keys stored by SettingsStore.
const (
	KeyRegion        = "region"
	KeyPoliceReports = "police_reports"
	KeyHideNNPlus    = "hide_nn_plus"
	KeyHideDPA       = "hide_dpa"
)

// ErrUnknownSetting is returned for keys SettingsStore doesn't know.
var ErrUnknownSetting = errors.New("unknown setting")

// SettingsStore persists saved listing options using SQLite.
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore creates a new settings store with the given database path.
func NewSettingsStore(dbPath string) (*SettingsStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SettingsStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the settings table if it doesn't exist.
func (s *SettingsStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SettingsStore) Close() error {
	return s.db.Close()
}

// Set validates and saves a single setting.
func (s *SettingsStore) Set(key, value string) error {
	normalized, err := normalize(key, value)
	if err != nil {
		return err
	}

	query := "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)"
	if _, err := s.db.Exec(query, key, normalized); err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}
	return nil
}

// Unset removes a saved setting so the next lower layer applies again.
func (s *SettingsStore) Unset(key string) error {
	if _, err := normalize(key, ""); errors.Is(err, ErrUnknownSetting) {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}

// All returns every saved setting.
func (s *SettingsStore) All() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	return settings, nil
}

// Apply overlays the saved settings onto opts.
func (s *SettingsStore) Apply(opts nordfeed.Options) (nordfeed.Options, error) {
	settings, err := s.All()
	if err != nil {
		return opts, err
	}

	flags := map[string]*bool{
		KeyPoliceReports: &opts.IncludePoliceReports,
		KeyHideNNPlus:    &opts.HideNNPlus,
		KeyHideDPA:       &opts.HideDPA,
	}
	for key, value := range settings {
		if key == KeyRegion {
			region, err := nordfeed.ParseRegion(value)
			if err != nil {
				return opts, fmt.Errorf("saved %s: %w", key, err)
			}
			opts.Region = region
			continue
		}
		flag, ok := flags[key]
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return opts, fmt.Errorf("saved %s: %w", key, err)
		}
		*flag = b
	}
	return opts, nil
}

// Keys returns the known setting keys in sorted order.
func Keys() []string {
	keys := []string{KeyRegion, KeyPoliceReports, KeyHideNNPlus, KeyHideDPA}
	sort.Strings(keys)
	return keys
}

// normalize validates value for key and returns its canonical form.
func normalize(key, value string) (string, error) {
	switch key {
	case KeyRegion:
		region, err := nordfeed.ParseRegion(value)
		if err != nil {
			return "", err
		}
		return string(region), nil
	case KeyPoliceReports, KeyHideNNPlus, KeyHideDPA:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("invalid %s: must be true or false", key)
		}
		return strconv.FormatBool(b), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
}
