package config

import (
	"path/filepath"
	"testing"

	"github.com/pevans/nordfeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: create a test settings store
func createTestSettingsStore(t *testing.T) *SettingsStore {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")
	store, err := NewSettingsStore(dbPath)
	require.NoError(t, err, "should create settings store")
	t.Cleanup(func() { store.Close() })
	return store
}

// TestApply_Empty verifies an empty store leaves options untouched
func TestApply_Empty(t *testing.T) {
	store := createTestSettingsStore(t)

	opts, err := store.Apply(nordfeed.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, nordfeed.DefaultOptions(), opts)
}

// TestSet_Success verifies saved settings overlay the defaults
func TestSet_Success(t *testing.T) {
	store := createTestSettingsStore(t)

	require.NoError(t, store.Set(KeyRegion, "rothenburg-o-d-t"))
	require.NoError(t, store.Set(KeyPoliceReports, "false"))
	require.NoError(t, store.Set(KeyHideDPA, "1"))

	opts, err := store.Apply(nordfeed.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, nordfeed.RegionRothenburgOdT, opts.Region)
	assert.False(t, opts.IncludePoliceReports)
	assert.False(t, opts.HideNNPlus)
	assert.True(t, opts.HideDPA)

	settings, err := store.All()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		KeyRegion:        "rothenburg-ob-der-tauber",
		KeyPoliceReports: "false",
		KeyHideDPA:       "true",
	}, settings, "values should be stored in canonical form")
}

// TestSet_Overwrites verifies setting a key again replaces the old value
func TestSet_Overwrites(t *testing.T) {
	store := createTestSettingsStore(t)

	require.NoError(t, store.Set(KeyHideNNPlus, "true"))
	require.NoError(t, store.Set(KeyHideNNPlus, "false"))

	opts, err := store.Apply(nordfeed.Options{HideNNPlus: true})
	require.NoError(t, err)
	assert.False(t, opts.HideNNPlus)
}

// TestSet_Invalid verifies bad keys and values are rejected
func TestSet_Invalid(t *testing.T) {
	store := createTestSettingsStore(t)

	assert.ErrorIs(t, store.Set("color", "blue"), ErrUnknownSetting)
	assert.ErrorIs(t, store.Set(KeyRegion, "muenchen"), nordfeed.ErrUnresolvableRegion)
	assert.Error(t, store.Set(KeyHideDPA, "maybe"))

	settings, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, settings)
}

// TestUnset verifies removing a saved setting
func TestUnset(t *testing.T) {
	store := createTestSettingsStore(t)
	require.NoError(t, store.Set(KeyRegion, "roth"))

	require.NoError(t, store.Unset(KeyRegion))
	assert.ErrorIs(t, store.Unset("color"), ErrUnknownSetting)

	settings, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"hide_dpa", "hide_nn_plus", "police_reports", "region"}, Keys())
}
