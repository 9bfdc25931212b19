package models

type (
	// Finding is one critique item produced by the model for a specific
	// line of a hunk. SuggestedFix is empty until (and unless) the
	// fix-suggestion call fills it.
	Finding struct {
		LineNumber   int
		Comment      string
		SuggestedFix string
	}

	// ReviewComment is the final output unit submitted to the host. The
	// pair Path=="" and Line==0 is reserved for the PR-level summary
	// comment.
	ReviewComment struct {
		Body string
		Path string
		Line int
	}

	// FileReport is one reviewed file in the terminal breakdown, with raw
	// line counts the way `git diff --numstat` reports them.
	FileReport struct {
		Path    string
		Added   int
		Deleted int
	}

	// RunReport summarizes one pipeline run for the terminal output.
	RunReport struct {
		FilesReviewed  int
		HunksReviewed  int
		FindingsCount  int
		CommentsPosted int
		Score          float64
		Files          []FileReport
		Usage          *TokenUsage
	}
)

// IsSummary reports whether the comment is the PR-level summary sentinel.
func (c ReviewComment) IsSummary() bool {
	return c.Path == "" && c.Line == 0
}
