package diff

import (
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/models"
)

// Parse turns a unified diff into the per-file, per-hunk model the review
// pipeline works on. Files and hunks keep the order of the diff text.
func Parse(diffText string) ([]models.DiffFile, error) {
	parsed, _, err := gitdiff.Parse(strings.NewReader(diffText))
	if err != nil {
		return nil, errors.NewAppError(errors.TypeInternal, "failed to parse diff", err)
	}

	files := make([]models.DiffFile, 0, len(parsed))
	for _, file := range parsed {
		files = append(files, mapFile(file))
	}
	return files, nil
}

func mapFile(file *gitdiff.File) models.DiffFile {
	path := file.NewName
	if file.IsDelete || path == "" {
		path = file.OldName
	}

	out := models.DiffFile{
		Path:      path,
		IsDeleted: file.IsDelete,
	}
	for _, frag := range file.TextFragments {
		out.Hunks = append(out.Hunks, mapFragment(frag))
	}
	return out
}

func mapFragment(frag *gitdiff.TextFragment) models.DiffHunk {
	var content strings.Builder
	content.WriteString(frag.Header())
	content.WriteString("\n")

	changes := make([]models.DiffLineChange, 0, len(frag.Lines))
	newLine := int(frag.NewPosition)
	for _, line := range frag.Lines {
		content.WriteString(line.String())

		change := models.DiffLineChange{
			Text: strings.TrimSuffix(line.Line, "\n"),
		}
		switch line.Op {
		case gitdiff.OpAdd:
			change.Kind = models.LineAdded
			change.NewLine = newLine
			newLine++
		case gitdiff.OpDelete:
			change.Kind = models.LineDeleted
		default:
			change.Kind = models.LineContext
			change.NewLine = newLine
			newLine++
		}
		changes = append(changes, change)
	}

	return models.DiffHunk{
		Header:  frag.Header(),
		Content: content.String(),
		Changes: changes,
	}
}

// RawCounts reports plain added and deleted line totals for one file,
// without pairing modifications the way Stats does.
func RawCounts(file models.DiffFile) (added, deleted int) {
	for _, hunk := range file.Hunks {
		for _, change := range hunk.Changes {
			switch change.Kind {
			case models.LineAdded:
				added++
			case models.LineDeleted:
				deleted++
			}
		}
	}
	return added, deleted
}

// Stats aggregates line counts over the parsed diff. A deleted+added pair
// inside the same hunk counts as one modified line, not one deletion plus
// one addition.
func Stats(files []models.DiffFile) models.DiffStats {
	stats := models.DiffStats{FilesChanged: len(files)}
	for _, file := range files {
		for _, hunk := range file.Hunks {
			var added, deleted int
			for _, change := range hunk.Changes {
				switch change.Kind {
				case models.LineAdded:
					added++
				case models.LineDeleted:
					deleted++
				}
			}
			changed := min(added, deleted)
			stats = stats.Add(models.DiffStats{
				LinesAdded:   added - changed,
				LinesDeleted: deleted - changed,
				LinesChanged: changed,
			})
		}
	}
	return stats
}
