package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/leadgenie/leadgenie/internal/chatbot"
	"github.com/leadgenie/leadgenie/internal/config"
	"github.com/leadgenie/leadgenie/internal/domain"
	"github.com/leadgenie/leadgenie/internal/embed"
	"github.com/leadgenie/leadgenie/internal/observability"
	"github.com/leadgenie/leadgenie/internal/scraper"
	"github.com/leadgenie/leadgenie/pkg/httputil"
)

// ChatbotHandler handles chatbot creation and lookup
type ChatbotHandler struct {
	store    domain.ChatbotStore
	registry *chatbot.Registry
	scraper  *scraper.Scraper
	llm      chatbot.Completer
	chatCfg  config.ChatConfig
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewChatbotHandler creates a new chatbot handler
func NewChatbotHandler(
	store domain.ChatbotStore,
	registry *chatbot.Registry,
	sc *scraper.Scraper,
	llm chatbot.Completer,
	chatCfg config.ChatConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ChatbotHandler {
	return &ChatbotHandler{
		store:    store,
		registry: registry,
		scraper:  sc,
		llm:      llm,
		chatCfg:  chatCfg,
		metrics:  metrics,
		logger:   logger,
	}
}

// CreateChatbotRequest is the request body for creating a chatbot
type CreateChatbotRequest struct {
	CompanyName string `json:"company_name"`
	WebsiteURL  string `json:"website_url"`
}

// ChatbotResponse is the API representation of a chatbot
type ChatbotResponse struct {
	ChatbotID   string             `json:"chatbot_id"`
	CompanyName string             `json:"company_name"`
	WebsiteURL  string             `json:"website_url"`
	Slug        string             `json:"slug"`
	Ready       bool               `json:"ready"`
	PageCount   int                `json:"page_count"`
	Contacts    domain.ContactInfo `json:"contacts"`
	EmbedCode   string             `json:"embed_code,omitempty"`
}

func (h *ChatbotHandler) toResponse(bot *chatbot.Bot, embedCode string) ChatbotResponse {
	return ChatbotResponse{
		ChatbotID:   bot.ChatbotID,
		CompanyName: bot.CompanyName,
		WebsiteURL:  bot.WebsiteURL,
		Slug:        domain.Slugify(bot.CompanyName),
		Ready:       bot.Ready(),
		PageCount:   len(bot.Pages()),
		Contacts:    bot.Contacts(),
		EmbedCode:   embedCode,
	}
}

// Create handles POST /api/v1/chatbots. Scraping runs synchronously; the
// response reports the ready flag and what was mined from the site.
func (h *ChatbotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateChatbotRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.WebsiteURL = strings.TrimSpace(req.WebsiteURL)
	if req.CompanyName == "" {
		httputil.ErrorFromDomain(w, domain.ValidationError("company_name", "is required"))
		return
	}
	if req.WebsiteURL == "" {
		httputil.ErrorFromDomain(w, domain.ValidationError("website_url", "is required"))
		return
	}

	chatbotID := domain.NewChatbotID(req.CompanyName, req.WebsiteURL)
	bot := chatbot.New(req.CompanyName, req.WebsiteURL, chatbotID, h.scraper, h.llm, h.chatCfg, h.logger)

	if err := bot.Initialize(r.Context(), nil); err != nil {
		h.logger.Error("chatbot initialization failed", zap.Error(err))
		httputil.ErrorFromDomain(w, domain.InternalError("chatbot initialization failed", err))
		return
	}

	embedCode := embed.WidgetCode(chatbotID, req.CompanyName)
	if err := h.store.SaveChatbot(r.Context(), chatbotID, req.CompanyName, req.WebsiteURL, embedCode); err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	h.registry.Add(domain.Slugify(req.CompanyName), bot)

	if h.metrics != nil {
		h.metrics.ChatbotsCreatedTotal.Inc()
		h.metrics.PagesScrapedTotal.Add(float64(len(bot.Pages())))
		if failed := len(h.scraper.CandidateURLs(req.WebsiteURL)) - len(bot.Pages()); failed > 0 {
			h.metrics.PageFetchesFailed.Add(float64(failed))
		}
	}

	h.logger.Info("chatbot created",
		zap.String("chatbot_id", chatbotID),
		zap.String("company", req.CompanyName),
		zap.Int("pages", len(bot.Pages())),
	)

	httputil.JSON(w, http.StatusCreated, h.toResponse(bot, embedCode))
}

// List handles GET /api/v1/chatbots
func (h *ChatbotHandler) List(w http.ResponseWriter, r *http.Request) {
	bots, err := h.store.ListChatbots(r.Context())
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	response := make([]ChatbotResponse, 0, len(bots))
	for _, cfg := range bots {
		resp := ChatbotResponse{
			ChatbotID:   cfg.ChatbotID,
			CompanyName: cfg.CompanyName,
			WebsiteURL:  cfg.WebsiteURL,
			Slug:        domain.Slugify(cfg.CompanyName),
			Contacts:    domain.ContactInfo{Emails: []string{}, Phones: []string{}},
		}
		if bot, ok := h.registry.GetByID(cfg.ChatbotID); ok {
			resp.Ready = bot.Ready()
			resp.PageCount = len(bot.Pages())
			resp.Contacts = bot.Contacts()
		}
		response = append(response, resp)
	}

	httputil.JSON(w, http.StatusOK, response)
}

// Get handles GET /api/v1/chatbots/{id}
func (h *ChatbotHandler) Get(w http.ResponseWriter, r *http.Request) {
	chatbotID := chi.URLParam(r, "id")

	cfg, err := h.store.GetChatbot(r.Context(), chatbotID)
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	resp := ChatbotResponse{
		ChatbotID:   cfg.ChatbotID,
		CompanyName: cfg.CompanyName,
		WebsiteURL:  cfg.WebsiteURL,
		Slug:        domain.Slugify(cfg.CompanyName),
		EmbedCode:   cfg.EmbedCode,
		Contacts:    domain.ContactInfo{Emails: []string{}, Phones: []string{}},
	}
	if bot, ok := h.registry.GetByID(cfg.ChatbotID); ok {
		resp.Ready = bot.Ready()
		resp.PageCount = len(bot.Pages())
		resp.Contacts = bot.Contacts()
	}

	httputil.JSON(w, http.StatusOK, resp)
}

// GetEmbed handles GET /api/v1/chatbots/{id}/embed, returning the raw
// widget snippet for copy-paste.
func (h *ChatbotHandler) GetEmbed(w http.ResponseWriter, r *http.Request) {
	chatbotID := chi.URLParam(r, "id")

	cfg, err := h.store.GetChatbot(r.Context(), chatbotID)
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(cfg.EmbedCode))
}
