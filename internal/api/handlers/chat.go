package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/leadgenie/leadgenie/internal/chatbot"
	"github.com/leadgenie/leadgenie/internal/domain"
	"github.com/leadgenie/leadgenie/internal/observability"
	"github.com/leadgenie/leadgenie/internal/session"
	"github.com/leadgenie/leadgenie/pkg/httputil"
)

// SessionHandler handles chat sessions and the lead-capture form
type SessionHandler struct {
	sessions *session.Manager
	registry *chatbot.Registry
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Manager, registry *chatbot.Registry, metrics *observability.Metrics, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// CreateSessionRequest is the request body for starting a session
type CreateSessionRequest struct {
	ChatbotID string `json:"chatbot_id"`
}

// SessionResponse describes a chat session
type SessionResponse struct {
	SessionID     string `json:"session_id"`
	ChatbotID     string `json:"chatbot_id"`
	CompanyName   string `json:"company_name"`
	QuestionCount int    `json:"question_count"`
	CaptureState  string `json:"capture_state"`
}

func toSessionResponse(sess *session.Session) SessionResponse {
	bot := sess.Bot()
	return SessionResponse{
		SessionID:     sess.ID,
		ChatbotID:     bot.ChatbotID,
		CompanyName:   bot.CompanyName,
		QuestionCount: sess.QuestionCount(),
		CaptureState:  string(sess.CaptureState()),
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	bot, ok := h.registry.GetByID(req.ChatbotID)
	if !ok {
		httputil.ErrorFromDomain(w, domain.NotFoundError("chatbot", req.ChatbotID))
		return
	}

	sess := h.sessions.Create(bot)

	h.logger.Info("session started",
		zap.String("session_id", sess.ID),
		zap.String("chatbot_id", bot.ChatbotID),
	)

	httputil.JSON(w, http.StatusCreated, toSessionResponse(sess))
}

// SwitchChatbotRequest is the request body for rebinding a session
type SwitchChatbotRequest struct {
	ChatbotID string `json:"chatbot_id"`
}

// SwitchChatbot handles PUT /api/v1/sessions/{id}/chatbot. Switching to a
// different chatbot clears the conversation and resets lead capture.
func (h *SessionHandler) SwitchChatbot(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	var req SwitchChatbotRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	bot, ok := h.registry.GetByID(req.ChatbotID)
	if !ok {
		httputil.ErrorFromDomain(w, domain.NotFoundError("chatbot", req.ChatbotID))
		return
	}

	h.sessions.Switch(sess, bot)

	httputil.JSON(w, http.StatusOK, toSessionResponse(sess))
}

// MessageRequest is the request body for a visitor message
type MessageRequest struct {
	Content string `json:"content"`
}

// PostMessage handles POST /api/v1/sessions/{id}/messages
func (h *SessionHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	var req MessageRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}
	if req.Content == "" {
		httputil.ErrorFromDomain(w, domain.ValidationError("content", "is required"))
		return
	}

	result, err := h.sessions.HandleMessage(r.Context(), sess, req.Content)
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.QuestionsAskedTotal.WithLabelValues(string(result.Route)).Inc()
	}

	httputil.JSON(w, http.StatusOK, result)
}

// CaptureRequest is the request body for a form action
type CaptureRequest struct {
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
}

// PostCapture handles POST /api/v1/sessions/{id}/capture
func (h *SessionHandler) PostCapture(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	var req CaptureRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	result, err := h.sessions.HandleCapture(r.Context(), sess, session.Action(req.Action), req.Value)
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	if result.Captured {
		if h.metrics != nil {
			h.metrics.LeadsCapturedTotal.Inc()
		}
		h.logger.Info("lead captured",
			zap.String("session_id", sess.ID),
			zap.Int("lead_id", result.Lead.ID),
		)
	}

	httputil.JSON(w, http.StatusOK, result)
}
