package advisor

import (
	"regexp"
	"strings"
)

const maxPromptLength = 30000

const guidelines = `Guidelines:
- Use simple language, avoid jargon
- Be encouraging and supportive
- Give specific, actionable advice
- Reference their budgets and goals
- Keep responses concise (2-3 sentences)
- Use emojis sparingly`

var blankLines = regexp.MustCompile(`\n{3,}`)

// BuildPrompt combines the persona, the user's financial summary and the
// question into a single prompt of at most maxPromptLength bytes.
func BuildPrompt(persona string, summary Summary, question string) string {
	var b strings.Builder

	b.WriteString(persona)
	b.WriteString("\n\n")
	b.WriteString(summary.String())
	b.WriteString("\n")
	b.WriteString(guidelines)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(strings.TrimSpace(question))

	prompt := blankLines.ReplaceAllString(b.String(), "\n\n")
	if len(prompt) > maxPromptLength {
		prompt = strings.ToValidUTF8(prompt[:maxPromptLength], "")
	}

	return prompt
}
