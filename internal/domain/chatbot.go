package domain

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ScrapedPage is one successfully fetched and cleaned website page.
// Content is newline-joined visible text, already line-filtered and truncated
// by the scraper. Immutable once created.
type ScrapedPage struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// ContactInfo holds contact details mined from scraped page text.
// Each list is deduplicated and capped by the scraper.
type ContactInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

// IsEmpty reports whether no contact details were found.
func (c ContactInfo) IsEmpty() bool {
	return len(c.Emails) == 0 && len(c.Phones) == 0
}

// Chatbot is the persisted configuration for one company's chatbot.
type Chatbot struct {
	ID          int       `json:"id"`
	ChatbotID   string    `json:"chatbot_id"`
	CompanyName string    `json:"company_name"`
	WebsiteURL  string    `json:"website_url"`
	EmbedCode   string    `json:"embed_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the registry key for a company name. At most one chatbot
// instance is current per slug.
func Slugify(name string) string {
	slug := slugUnsafe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// NewChatbotID derives a short unique token for a company/website pair.
func NewChatbotID(companyName, websiteURL string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s%s%d", companyName, websiteURL, time.Now().UnixNano())))
	return hex.EncodeToString(sum[:])[:12]
}

// ChatbotStore defines access to the chatbot registry.
type ChatbotStore interface {
	SaveChatbot(ctx context.Context, chatbotID, companyName, websiteURL, embedCode string) error
	GetChatbot(ctx context.Context, chatbotID string) (*Chatbot, error)
	ListChatbots(ctx context.Context) ([]*Chatbot, error)
}
