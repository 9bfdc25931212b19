package diff

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thomas-vilte/matereview/internal/models"
)

// Filter returns the files that survive the exclusion patterns. Deleted
// files are always dropped since there is no new-file line to comment on.
// Patterns use doublestar globs, so `**` crosses path segments while `*`
// stays inside one. Invalid patterns never match. The input order is kept.
func Filter(files []models.DiffFile, patterns []string) []models.DiffFile {
	kept := make([]models.DiffFile, 0, len(files))
	for _, file := range files {
		if file.IsDeleted {
			continue
		}
		if matchesAny(file.Path, patterns) {
			continue
		}
		kept = append(kept, file)
	}
	return kept
}

func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
