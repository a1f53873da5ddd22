package domain

import (
	"context"
	"time"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message in a chat session. Turns alternate starting
// with the user; nothing beyond the input flow enforces that.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Placeholder values stored when a visitor skips a capture step.
const (
	PlaceholderName  = "Anonymous"
	PlaceholderEmail = "not_provided@example.com"
	PlaceholderPhone = "Not provided"
)

// Lead is a captured visitor contact plus the conversation that produced it.
// Append-only; never mutated after creation. CapturedAt is the time of lead
// capture, not the end of the conversation.
type Lead struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	ChatbotID      string             `json:"chatbot_id"`
	CompanyName    string             `json:"company_name"`
	SessionID      string             `json:"session_id"`
	QuestionsAsked int                `json:"questions_asked"`
	Conversation   []ConversationTurn `json:"conversation"`
	StartedAt      time.Time          `json:"started_at"`
	CapturedAt     time.Time          `json:"captured_at"`
}

// SaveLeadParams carries everything needed to record a lead.
type SaveLeadParams struct {
	ChatbotID      string
	CompanyName    string
	Name           string
	Email          string
	Phone          string
	SessionID      string
	QuestionsAsked int
	Conversation   []ConversationTurn
	StartedAt      time.Time
}

// LeadStore defines access to captured leads.
type LeadStore interface {
	SaveLead(ctx context.Context, params SaveLeadParams) (*Lead, error)
	// GetLeads returns leads for one chatbot, or all leads when chatbotID is empty.
	GetLeads(ctx context.Context, chatbotID string) ([]*Lead, error)
}
