package chat

const maxTitleRunes = 30

// DeriveTitle builds the default chat title from the first prompt: the
// first 30 characters, with an ellipsis when the prompt is longer.
func DeriveTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= maxTitleRunes {
		return prompt
	}
	return string(runes[:maxTitleRunes]) + "..."
}
