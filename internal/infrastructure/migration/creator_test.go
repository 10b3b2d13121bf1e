package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add item mappings", "add_item_mappings"},
		{"Add-Item-Mappings", "add_item_mappings"},
		{"ADD_ITEM_MAPPINGS", "add_item_mappings"},
		{"  widen sync log  ", "widen_sync_log"},
		{"drop!!legacy##columns", "drop_legacy_columns"},
		{"v2 settings", "v2_settings"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, migrationSlug(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add item mappings", "mapping table for catalog sync")
	require.NoError(t, err)

	assert.Equal(t, "add_item_mappings", mf.Name)
	assert.Len(t, mf.Version, 14)
	assert.Equal(t, filepath.Join(dir, mf.Version+"_add_item_mappings.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, mf.Version+"_add_item_mappings.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(up), "-- Migration: add_item_mappings\n"))
	assert.Contains(t, string(up), "-- Description: mapping table for catalog sync")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(down), "-- Migration: add_item_mappings (Rollback)\n"))
}

func TestCreateMigrationWithoutDescription(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "widen sync log", "")
	require.NoError(t, err)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.NotContains(t, string(up), "-- Description:")
}

func TestCreateMigrationCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	mf, err := CreateMigration(dir, "initial schema", "")
	require.NoError(t, err)

	_, err = os.Stat(mf.UpPath)
	assert.NoError(t, err)
	_, err = os.Stat(mf.DownPath)
	assert.NoError(t, err)
}

func TestCreateMigrationRejectsEmptySlug(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "???", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable characters")
}
