package prompt

// GetSystemPrompt is the fixed system instruction for summarization.
func GetSystemPrompt() string {
    return "You are a helpful assistant."
}

// GetUserPrompt prefixes the text with the summarize/analyze instruction.
func GetUserPrompt(text string) string {
    return "Summarize and analyze: " + text
}
