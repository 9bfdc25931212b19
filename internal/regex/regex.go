package regex

import "regexp"

var (
	// AI response parsing
	MarkdownJSONBlock = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)```")
	JSONString        = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)
)
