package config

import "strings"

type Model string

const (
	ModelGeminiV25Pro       Model = "gemini-2.5-pro"
	ModelGeminiV25Flash     Model = "gemini-2.5-flash"
	ModelGeminiV25FlashLite Model = "gemini-2.5-flash-lite"
	ModelGeminiV20Flash     Model = "gemini-2.0-flash"
	ModelGeminiV15Pro       Model = "gemini-1.5-pro"
	ModelGeminiV15Flash     Model = "gemini-1.5-flash"
)

func SupportedModels() []Model {
	return []Model{
		ModelGeminiV25Pro,
		ModelGeminiV25Flash,
		ModelGeminiV25FlashLite,
		ModelGeminiV20Flash,
		ModelGeminiV15Pro,
		ModelGeminiV15Flash,
	}
}

// SupportsStructuredOutput reports whether the model accepts a JSON response
// MIME type with a response schema. Unknown identifiers fall back to plain
// text prompting, where the reviewer strips markdown fences itself.
func SupportsStructuredOutput(model string) bool {
	name := strings.TrimSpace(model)
	for _, known := range SupportedModels() {
		if name == string(known) {
			return true
		}
	}
	return false
}
