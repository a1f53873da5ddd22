package chatbot

import (
	"fmt"
	"strings"
)

const answerPromptTemplate = `You are a helpful assistant for %s.

Context from their website:
%s

User question: %s

Provide a helpful, natural 2-3 sentence answer.

Answer:`

// buildPrompt embeds the company name, a context window from the first few
// scraped pages, and the raw question into the answer template.
func (b *Bot) buildPrompt(question string) string {
	pages := b.pages
	if len(pages) > b.cfg.ContextPages {
		pages = pages[:b.cfg.ContextPages]
	}

	chunks := make([]string, 0, len(pages))
	for _, p := range pages {
		content := p.Content
		if len(content) > b.cfg.ContextCharsPerPage {
			content = content[:b.cfg.ContextCharsPerPage]
		}
		chunks = append(chunks, content)
	}

	return fmt.Sprintf(answerPromptTemplate, b.CompanyName, strings.Join(chunks, "\n"), question)
}
