package ui

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/thomas-vilte/matereview/internal/i18n"
	"github.com/thomas-vilte/matereview/internal/models"
)

// ShowRunReport prints the end-of-run stats block to the workflow log.
func ShowRunReport(report *models.RunReport, t *i18n.Translations) {
	if report == nil {
		return
	}

	fmt.Printf("\n%s %s\n", StatsEmoji, Accent.Sprint(t.GetMessage("run_report_title", 0, nil)))
	PrintKeyValue(t.GetMessage("report_files", 0, nil), strconv.Itoa(report.FilesReviewed))
	PrintKeyValue(t.GetMessage("report_hunks", 0, nil), strconv.Itoa(report.HunksReviewed))
	PrintKeyValue(t.GetMessage("report_findings", 0, nil), strconv.Itoa(report.FindingsCount))
	PrintKeyValue(t.GetMessage("report_comments", 0, nil), strconv.Itoa(report.CommentsPosted))
	PrintKeyValue(t.GetMessage("report_score", 0, nil), fmt.Sprintf("%.2f", report.Score))

	ShowReviewedFiles(report.Files, t.GetMessage("report_files_tree", 0, nil))
	PrintTokenUsage(report.Usage, t)
}

func PrintTokenUsage(usage *models.TokenUsage, t *i18n.Translations) {
	if usage == nil {
		return
	}
	cyan := color.New(color.FgCyan)
	_, _ = cyan.Print("\n🔢 ")
	fmt.Printf("%s: ", t.GetMessage("token_usage", 0, nil))
	fmt.Printf("%s %d | ", t.GetMessage("token_input", 0, nil), usage.InputTokens)
	fmt.Printf("%s %d | ", t.GetMessage("token_output", 0, nil), usage.OutputTokens)
	fmt.Printf("%s %d\n", t.GetMessage("token_total", 0, nil), usage.TotalTokens)
	if usage.Calls > 0 && usage.Model != "" {
		_, _ = Dim.Printf("   %s\n", t.GetMessage("token_calls", usage.Calls, map[string]interface{}{
			"Calls": usage.Calls,
			"Model": usage.Model,
		}))
	}
}
