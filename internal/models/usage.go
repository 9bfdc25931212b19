package models

// TokenUsage accumulates model token counts across the calls of one run.
type TokenUsage struct {
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	TotalTokens  int    `json:"total_tokens"`
	Model        string `json:"model,omitempty"`
	Calls        int    `json:"calls,omitempty"`
}

// Merge adds another usage sample into the receiver. A nil sample is a
// no-op so callers can merge failed calls without checking.
func (u *TokenUsage) Merge(other *TokenUsage) {
	if u == nil || other == nil {
		return
	}
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
	u.Calls++
	if u.Model == "" {
		u.Model = other.Model
	}
}
