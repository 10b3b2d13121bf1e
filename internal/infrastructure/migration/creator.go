package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MigrationFile describes a freshly created up/down pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down migration pair into dir, named
// <timestamp>_<slug>.{up,down}.sql. The stub headers follow the same style
// as the shipped files under migrations/ so hand-written and generated
// migrations read alike.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	slug := migrationSlug(name)
	if slug == "" {
		return nil, fmt.Errorf("migration: name %q has no usable characters", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("migration: create directory %s: %w", dir, err)
	}

	version := time.Now().UTC().Format("20060102150405")
	mf := &MigrationFile{
		Version:     version,
		Name:        slug,
		Description: description,
		UpPath:      filepath.Join(dir, fmt.Sprintf("%s_%s.up.sql", version, slug)),
		DownPath:    filepath.Join(dir, fmt.Sprintf("%s_%s.down.sql", version, slug)),
	}

	if err := os.WriteFile(mf.UpPath, []byte(upStub(slug, description)), 0o644); err != nil {
		return nil, fmt.Errorf("migration: write %s: %w", mf.UpPath, err)
	}
	if err := os.WriteFile(mf.DownPath, []byte(downStub(slug)), 0o644); err != nil {
		// golang-migrate refuses unpaired files, so never leave half a pair.
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("migration: write %s: %w", mf.DownPath, err)
	}

	return mf, nil
}

func upStub(slug, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Migration: %s\n", slug)
	if description != "" {
		fmt.Fprintf(&b, "-- Description: %s\n", description)
	}
	b.WriteString("\n")
	return b.String()
}

func downStub(slug string) string {
	return fmt.Sprintf("-- Migration: %s (Rollback)\n\n", slug)
}

// migrationSlug lowercases the name and collapses anything outside
// [a-z0-9] into single underscores, keeping the file names shell-safe.
func migrationSlug(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
