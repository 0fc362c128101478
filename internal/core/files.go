package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/illarion/twinvault/internal/git"
	"github.com/illarion/twinvault/internal/logger"
	"github.com/illarion/twinvault/internal/security"
	"github.com/illarion/twinvault/internal/vault"
)

// ImportFiles reads local files into records named by their base name.
// Directories are skipped with a warning.
func ImportFiles(paths []string, log *logger.Logger) ([]vault.FileRecord, error) {
	if log == nil {
		log = logger.Nop()
	}

	now := time.Now().UTC()
	records := make([]vault.FileRecord, 0, len(paths))
	seen := make(map[string]string, len(paths))

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if info.IsDir() {
			log.Warn().Str("path", p).Msg("skipping directory")
			continue
		}

		name := filepath.Base(p)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s and %s would both be stored as %s", prev, p, name)
		}
		seen[name] = p

		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}

		records = append(records, vault.FileRecord{
			Name:      name,
			Payload:   data,
			Size:      int64(len(data)),
			DateAdded: now,
		})
	}

	return records, nil
}

// ExportResult describes one file written by ExportFiles
type ExportResult struct {
	Name string
	Path string
}

// ExportFiles writes records into dir. Existing files are never
// overwritten. The returned git status covers the written files.
func ExportFiles(dir string, records []vault.FileRecord) ([]ExportResult, *git.ExportStatus, error) {
	pv, err := security.New(dir)
	if err != nil {
		return nil, nil, err
	}
	defer pv.Close()

	results := make([]ExportResult, 0, len(records))
	rel := make([]string, 0, len(records))
	for _, r := range records {
		path, err := pv.CreateFile(r.Name, r.Payload, 0600)
		if err != nil {
			return results, nil, fmt.Errorf("failed to export %s: %w", r.Name, err)
		}
		results = append(results, ExportResult{Name: r.Name, Path: path})
		rel = append(rel, filepath.FromSlash(r.Name))
	}

	return results, git.CheckExports(pv.Root(), rel), nil
}
