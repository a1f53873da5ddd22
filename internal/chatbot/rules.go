package chatbot

import (
	"fmt"
	"strings"
)

// intentRule is one keyword-routing rule. Rules are evaluated in order;
// the first match wins.
type intentRule struct {
	route    Route
	keywords []string
	respond  func(*Bot) string
}

var intentRules = []intentRule{
	{
		route:    RouteGreeting,
		keywords: []string{"hi", "hello", "hey"},
		respond:  (*Bot).greetingReply,
	},
	{
		route:    RouteContact,
		keywords: []string{"email", "contact", "phone"},
		respond:  (*Bot).contactReply,
	},
}

// matches does a case-insensitive substring check against the raw question.
func (r intentRule) matches(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range r.keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func (b *Bot) greetingReply() string {
	return fmt.Sprintf("Hello! I'm the AI assistant for %s. How can I help you today?", b.CompanyName)
}

func (b *Bot) contactReply() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Contact %s\n\n", b.CompanyName)
	if len(b.contacts.Emails) > 0 {
		fmt.Fprintf(&sb, "Email: %s\n", strings.Join(b.contacts.Emails, ", "))
	}
	if len(b.contacts.Phones) > 0 {
		fmt.Fprintf(&sb, "Phone: %s\n", strings.Join(b.contacts.Phones, ", "))
	}
	fmt.Fprintf(&sb, "Website: %s", b.WebsiteURL)
	return sb.String()
}
