package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FilePair is a generated up/down migration skeleton
type FilePair struct {
	Version  string
	UpPath   string
	DownPath string
}

// CreateFiles writes an empty up/down migration pair into dir. The
// version prefix is the current second (YYYYMMDDHHMMSS) so files sort
// in creation order; the name is slugified into the filename.
func CreateFiles(dir, name, description string) (*FilePair, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	base := filepath.Join(dir, version+"_"+slugify(name))

	pair := &FilePair{
		Version:  version,
		UpPath:   base + ".up.sql",
		DownPath: base + ".down.sql",
	}

	header := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n-- Description: %s\n\n",
		name, now.Format(time.RFC3339), description)

	if err := os.WriteFile(pair.UpPath, []byte(header), 0644); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}
	rollback := fmt.Sprintf("-- Migration: %s (Rollback)\n-- Created: %s\n-- Description: Rollback for %s\n\n",
		name, now.Format(time.RFC3339), description)
	if err := os.WriteFile(pair.DownPath, []byte(rollback), 0644); err != nil {
		_ = os.Remove(pair.UpPath)
		return nil, fmt.Errorf("write down migration: %w", err)
	}

	return pair, nil
}

// slugify lowercases a migration name and collapses separators to
// single underscores, dropping anything else
func slugify(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c-'A'+'a')
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			out = append(out, c)
		default:
			if len(out) > 0 && out[len(out)-1] != '_' {
				out = append(out, '_')
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '_' {
		out = out[:len(out)-1]
	}
	return string(out)
}
