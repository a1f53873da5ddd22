package chatbot

import (
	"context"

	"go.uber.org/zap"

	"github.com/leadgenie/leadgenie/internal/config"
	"github.com/leadgenie/leadgenie/internal/domain"
	"github.com/leadgenie/leadgenie/internal/scraper"
)

// MsgNotReady is returned for questions asked before Initialize succeeds.
const MsgNotReady = "Chatbot not ready. Please try again."

// Completer is the LLM collaborator. Implementations return degraded
// user-facing strings instead of errors.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

// Route identifies how a question was answered.
type Route string

const (
	RouteNotReady Route = "not_ready"
	RouteGreeting Route = "greeting"
	RouteContact  Route = "contact"
	RouteLLM      Route = "llm"
)

// Bot owns one company's scraped knowledge and answers visitor questions.
// Ready flips true only after a successful Initialize; an uninitialized bot
// refuses to answer.
type Bot struct {
	CompanyName string
	WebsiteURL  string
	ChatbotID   string

	pages    []domain.ScrapedPage
	contacts domain.ContactInfo
	ready    bool

	scraper *scraper.Scraper
	llm     Completer
	cfg     config.ChatConfig
	logger  *zap.Logger
}

// New creates an uninitialized bot bound to a company website.
func New(companyName, websiteURL, chatbotID string, sc *scraper.Scraper, llm Completer, cfg config.ChatConfig, logger *zap.Logger) *Bot {
	if cfg.ContextPages == 0 {
		cfg.ContextPages = 3
	}
	if cfg.ContextCharsPerPage == 0 {
		cfg.ContextCharsPerPage = 800
	}
	return &Bot{
		CompanyName: companyName,
		WebsiteURL:  websiteURL,
		ChatbotID:   chatbotID,
		scraper:     sc,
		llm:         llm,
		cfg:         cfg,
		logger:      logger,
	}
}

// Initialize scrapes the website and stores pages plus contact info. The bot
// becomes ready even when the site yields no pages; the scraper treats an
// unreachable site as an empty result, not a failure.
func (b *Bot) Initialize(ctx context.Context, onProgress scraper.ProgressFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.pages, b.contacts = b.scraper.ScrapeWebsite(ctx, b.WebsiteURL, onProgress)
	b.ready = true

	b.logger.Info("chatbot initialized",
		zap.String("company", b.CompanyName),
		zap.Int("pages", len(b.pages)),
	)
	return nil
}

// Ready reports whether Initialize has completed.
func (b *Bot) Ready() bool { return b.ready }

// Pages returns the scraped pages in candidate order.
func (b *Bot) Pages() []domain.ScrapedPage { return b.pages }

// Contacts returns the mined contact info.
func (b *Bot) Contacts() domain.ContactInfo { return b.contacts }

// Ask answers one visitor question. Classification is ordered first-match
// over the intent rules; anything unmatched goes to the LLM with website
// context. Prior turns are not included in the prompt.
func (b *Bot) Ask(ctx context.Context, question string) (string, Route) {
	if !b.ready {
		return MsgNotReady, RouteNotReady
	}

	for _, rule := range intentRules {
		if rule.matches(question) {
			return rule.respond(b), rule.route
		}
	}

	return b.llm.Complete(ctx, b.buildPrompt(question)), RouteLLM
}
