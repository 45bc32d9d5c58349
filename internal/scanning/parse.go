package scanning

import (
	"strings"
)

// transcribePrompt is the shared prompt used by all LLM providers for reading invoices
const transcribePrompt = `You are reading a scanned invoice. Transcribe all text visible in the image exactly as printed.

Important:
- Preserve labels and punctuation exactly, for example "Invoice Number: 12345" and "Date: 01/02/2024"
- Keep one printed line per output line, in reading order
- Do not translate, correct, summarize or reformat dates and numbers
- Do not add any commentary before or after the text
- Do not use markdown code blocks`

// cleanTranscript strips the wrapping LLMs tend to add around plain text
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)

	// Remove opening markdown code blocks, with or without a language tag
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if nl := strings.Index(text, "\n"); nl >= 0 && !strings.Contains(text[:nl], ":") {
			text = text[nl+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	return strings.TrimSpace(text)
}
