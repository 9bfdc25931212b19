package review

import (
	"fmt"
	"math"
	"strings"

	"github.com/thomas-vilte/matereview/internal/ai"
	"github.com/thomas-vilte/matereview/internal/i18n"
	"github.com/thomas-vilte/matereview/internal/models"
)

// Assembler renders findings and the run summary into the comment bodies
// that get published on the PR. All user-visible strings go through i18n.
type Assembler struct {
	translations *i18n.Translations
}

func NewAssembler(translations *i18n.Translations) *Assembler {
	return &Assembler{
		translations: translations,
	}
}

// CommentBody renders one finding: the critique text plus, when available,
// the suggested fix as a fenced block labelled with the file's language.
// When a fix was requested but none could be produced, a localized fallback
// line replaces the block.
func (a *Assembler) CommentBody(filePath string, finding models.Finding, fixRequested bool) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(finding.Comment))

	if finding.SuggestedFix != "" {
		b.WriteString("\n\n**")
		b.WriteString(a.translations.GetMessage("fix_suggestion_title", 0, nil))
		b.WriteString("**\n```")
		b.WriteString(ai.LanguageForPath(filePath))
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(finding.SuggestedFix, "\n"))
		b.WriteString("\n```")
	} else if fixRequested {
		b.WriteString("\n\n_")
		b.WriteString(a.translations.GetMessage("fix_unavailable", 0, nil))
		b.WriteString("_")
	}

	return b.String()
}

// SummaryBody renders the PR-level summary: stats line, score with its bar,
// and the findings count.
func (a *Assembler) SummaryBody(stats models.DiffStats, score float64, findingsCount int) string {
	var b strings.Builder

	b.WriteString("## ")
	b.WriteString(a.translations.GetMessage("summary_title", 0, nil))
	b.WriteString("\n\n")

	b.WriteString(a.translations.GetMessage("summary_stats", stats.FilesChanged, map[string]interface{}{
		"Files":   stats.FilesChanged,
		"Added":   stats.LinesAdded,
		"Deleted": stats.LinesDeleted,
		"Changed": stats.LinesChanged,
	}))
	b.WriteString("\n\n")

	b.WriteString(a.translations.GetMessage("summary_score", 0, map[string]interface{}{
		"Score": fmt.Sprintf("%.2f", score),
	}))
	b.WriteString(" ")
	b.WriteString(progressBar(score))
	b.WriteString("\n\n")

	if findingsCount > 0 {
		b.WriteString(a.translations.GetMessage("summary_findings", findingsCount, map[string]interface{}{
			"Count": findingsCount,
		}))
	} else {
		b.WriteString(a.translations.GetMessage("summary_no_findings", 0, nil))
	}
	b.WriteString("\n")

	return b.String()
}

// Assemble appends the PR-level summary sentinel (Path "", Line 0) after the
// line comments, always exactly once and always last.
func (a *Assembler) Assemble(lineComments []models.ReviewComment, summaryBody string) []models.ReviewComment {
	comments := make([]models.ReviewComment, 0, len(lineComments)+1)
	comments = append(comments, lineComments...)
	comments = append(comments, models.ReviewComment{
		Body: summaryBody,
		Path: "",
		Line: 0,
	})
	return comments
}

// progressBar renders the score as a ten-segment bar. Only the bar clamps to
// [0,100]; the raw score stays visible in the text next to it.
func progressBar(score float64) string {
	clamped := int(math.Round(score))
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}
	filled := clamped / 10
	return "`[" + strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + "]`"
}
