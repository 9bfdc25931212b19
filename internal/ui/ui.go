package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/i18n"
	"github.com/thomas-vilte/matereview/internal/models"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	// Emojis with colors
	MateEmoji    = "🧉"
	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
	StatsEmoji   = Accent.Sprint("📊")
)

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(msg string) {
	fmt.Printf("%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(msg string) {
	fmt.Printf("%s %s\n", InfoEmoji, Info.Sprint(msg))
}

func PrintSectionBanner(title string) {
	separator := color.New(color.FgCyan).Sprint("━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("\n%s\n", separator)
	fmt.Printf("%s %s\n", MateEmoji, Accent.Sprint(title))
	fmt.Printf("%s\n\n", separator)
}

func PrintDuration(msg string, duration time.Duration) {
	durationStr := Dim.Sprintf("(%s)", duration.Round(10*time.Millisecond))
	fmt.Printf("%s %s %s\n", SuccessEmoji, Success.Sprint(msg), durationStr)
}

// HandleAppError handles an application error and displays it in a friendly way.
// If translations is nil, it will use English defaults.
func HandleAppError(err error, translations ...*i18n.Translations) {
	if err == nil {
		return
	}

	var t *i18n.Translations
	if len(translations) > 0 && translations[0] != nil {
		t = translations[0]
	}

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		errorColor := color.New(color.FgRed, color.Bold)
		suggestionColor := color.New(color.FgCyan)
		dimColor := color.New(color.FgHiBlack)

		fmt.Println()
		_, _ = errorColor.Printf("❌ %s: %s\n", appErr.Type, appErr.Message)

		if appErr.Err != nil {
			_, _ = dimColor.Printf("   Details: %v\n", appErr.Err)
		}

		if appErr.Suggestion != "" {
			fmt.Println()
			tryPrefix := "💡 Try: "
			if t != nil {
				tryPrefix = t.GetMessage("try_suggestion", 0, nil)
			}
			_, _ = suggestionColor.Printf("%s", tryPrefix)
			lines := strings.Split(appErr.Suggestion, "\n")
			for i, line := range lines {
				if i == 0 {
					fmt.Println(line)
				} else {
					fmt.Printf("       %s\n", line)
				}
			}
		}
		fmt.Println()

		return
	}

	PrintError(os.Stdout, err.Error())
}

func PrintKeyValue(key, value string) {
	keyColored := Dim.Sprint(key + ":")
	valueColored := color.New(color.FgWhite, color.Bold).Sprint(value)
	fmt.Printf("   %s %s\n", keyColored, valueColored)
}

// ShowReviewedFiles prints the reviewed files as a directory tree with their
// raw line counts, like git diff --stat grouped by folder.
func ShowReviewedFiles(files []models.FileReport, headerMessage string) {
	if len(files) == 0 {
		return
	}

	fmt.Printf("\n%s\n", headerMessage)
	tree := buildFileTree(files)
	printTree(tree, "", true)
}

// treeNode represents a node in the file tree
type treeNode struct {
	name     string
	isFile   bool
	change   *models.FileReport
	children map[string]*treeNode
}

// buildFileTree builds a directory tree
func buildFileTree(files []models.FileReport) *treeNode {
	root := &treeNode{
		name:     "",
		children: make(map[string]*treeNode),
	}

	for _, file := range files {
		parts := strings.Split(file.Path, "/")
		current := root

		for i, part := range parts {
			isFile := i == len(parts)-1

			if current.children[part] == nil {
				current.children[part] = &treeNode{
					name:     part,
					isFile:   isFile,
					children: make(map[string]*treeNode),
				}

				if isFile {
					current.children[part].change = &file
				}
			}
			current = current.children[part]
		}
	}
	return root
}

// printTree prints the tree recursively
func printTree(node *treeNode, prefix string, isLast bool) {
	if node.name != "" {
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		name := node.name
		if !node.isFile {
			name = Info.Sprint(name + "/")
		}

		stats := ""
		if node.isFile && node.change != nil {
			statsColor := color.New(color.FgGreen)
			if node.change.Deleted > node.change.Added {
				statsColor = color.New(color.FgRed)
			}
			stats = statsColor.Sprintf(" (+%d, -%d)", node.change.Added, node.change.Deleted)
		}

		fmt.Printf("%s%s%s%s\n", prefix, connector, name, stats)
	}

	childPrefix := prefix
	if node.name != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	var keys []string
	for key := range node.children {
		keys = append(keys, key)
	}

	sortFileTree(keys, node.children)

	for i, key := range keys {
		child := node.children[key]
		isLastChild := i == len(keys)-1
		printTree(child, childPrefix, isLastChild)
	}
}

// sortFileTree sorts the keys: directories first, then files
func sortFileTree(keys []string, nodes map[string]*treeNode) {
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			node1 := nodes[keys[i]]
			node2 := nodes[keys[j]]

			if node1.isFile && !node2.isFile {
				keys[i], keys[j] = keys[j], keys[i]
			} else if node1.isFile == node2.isFile {
				if keys[i] > keys[j] {
					keys[i], keys[j] = keys[j], keys[i]
				}
			}
		}
	}
}
