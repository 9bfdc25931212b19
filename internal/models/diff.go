package models

// LineKind classifies a single line change inside a hunk.
type LineKind string

const (
	LineAdded   LineKind = "added"
	LineDeleted LineKind = "deleted"
	LineContext LineKind = "context"
)

type (
	// DiffLineChange is one line of a hunk. NewLine is the position in the
	// new file and is only meaningful for added and context lines; deleted
	// lines have no position in the new file and carry NewLine 0.
	DiffLineChange struct {
		Kind    LineKind
		NewLine int
		Text    string
	}

	// DiffHunk is a contiguous block of changes for one file. Header is the
	// @@ line, Content the raw hunk text (header plus prefixed lines) used
	// verbatim in prompts, Changes the same lines in structured form.
	DiffHunk struct {
		Header  string
		Content string
		Changes []DiffLineChange
	}

	// DiffFile groups the hunks of one changed file, in diff order. Path is
	// the post-change path.
	DiffFile struct {
		Path      string
		IsDeleted bool
		Hunks     []DiffHunk
	}

	// DiffStats aggregates the whole diff for the PR score. Lines modified
	// in place count once in LinesChanged and are excluded from
	// LinesAdded/LinesDeleted.
	DiffStats struct {
		LinesAdded   int
		LinesDeleted int
		LinesChanged int
		FilesChanged int
	}
)

// Add sums two stat sets. The score is linear, so stats over a whole diff
// equal the sum over its files.
func (s DiffStats) Add(other DiffStats) DiffStats {
	return DiffStats{
		LinesAdded:   s.LinesAdded + other.LinesAdded,
		LinesDeleted: s.LinesDeleted + other.LinesDeleted,
		LinesChanged: s.LinesChanged + other.LinesChanged,
		FilesChanged: s.FilesChanged + other.FilesChanged,
	}
}
