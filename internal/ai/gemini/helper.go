package gemini

import (
	"encoding/json"
	"strings"

	"github.com/thomas-vilte/matereview/internal/models"
	"github.com/thomas-vilte/matereview/internal/regex"
	"google.golang.org/genai"
)

// extractUsage extracts usage metadata from the Gemini response
func extractUsage(resp *genai.GenerateContentResponse) *models.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return nil
	}
	return &models.TokenUsage{
		InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
		OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
	}
}

// getGenerateConfig builds the per-call configuration. Review calls run cold
// (temperature 0.2) so repeated runs over the same diff stay comparable.
func getGenerateConfig(jsonMode bool, maxOutputTokens int32, schema *genai.Schema) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:     float32Ptr(0.2),
		MaxOutputTokens: maxOutputTokens,
	}

	if jsonMode {
		config.ResponseMIMEType = "application/json"
		if schema != nil {
			config.ResponseSchema = schema
		}
	}

	return config
}

func float32Ptr(f float32) *float32 {
	return &f
}

// formatResponse flattens the candidate parts of a Gemini response into a
// single string, skipping thinking parts.
func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var formattedContent strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Thought {
				continue
			}
			if part.Text != "" {
				formattedContent.WriteString(part.Text)
			}
		}
	}
	return formattedContent.String()
}

// ExtractJSON attempts to extract a valid JSON block from text, handling
// markdown code blocks and possible extra text around the payload.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	matches := regex.MarkdownJSONBlock.FindAllStringSubmatch(text, -1)
	var bestMarkdown string
	for _, m := range matches {
		if len(m) > 1 {
			content := strings.TrimSpace(m[1])
			sanitized := SanitizeJSON(content)
			if json.Valid([]byte(sanitized)) && len(sanitized) > len(bestMarkdown) {
				bestMarkdown = sanitized
			}
		}
	}
	if bestMarkdown != "" {
		return bestMarkdown
	}

	var bestBlock string
	for i := 0; i < len(text); {
		startIdx := strings.IndexAny(text[i:], "{[")
		if startIdx == -1 {
			break
		}
		startIdx += i

		opener := text[startIdx]
		var closer byte
		if opener == '{' {
			closer = '}'
		} else {
			closer = ']'
		}

		count := 0
		inString := false
		escaped := false
		foundEnd := false
		endIdx := -1

		for j := startIdx; j < len(text); j++ {
			char := text[j]
			if escaped {
				escaped = false
				continue
			}
			if char == '\\' {
				escaped = true
				continue
			}
			if char == '"' {
				inString = !inString
				continue
			}

			if !inString {
				if char == opener {
					count++
				} else if char == closer {
					count--
					if count == 0 {
						foundEnd = true
						endIdx = j
						break
					}
				}
			}
		}

		if foundEnd {
			block := text[startIdx : endIdx+1]
			sanitized := SanitizeJSON(block)
			if json.Valid([]byte(sanitized)) && len(sanitized) > len(bestBlock) {
				bestBlock = sanitized
			}
			i = endIdx + 1
		} else {
			i = startIdx + 1
		}
	}

	if bestBlock != "" {
		return bestBlock
	}

	return SanitizeJSON(text)
}

// SanitizeJSON cleans malformed JSON that LLMs sometimes generate,
// such as unescaped newlines within string literals.
func SanitizeJSON(s string) string {
	return regex.JSONString.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, "\n", "\\n")
	})
}

// stripCodeFences removes a wrapping markdown fence from a plain-text answer.
// Fix suggestions come back fenced now and then despite the prompt rules.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}

	// First line is the opening fence, possibly with a language label.
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
