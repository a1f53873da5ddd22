package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/leadgenie/leadgenie/internal/domain"
	"github.com/leadgenie/leadgenie/pkg/httputil"
)

// LeadHandler handles lead listing
type LeadHandler struct {
	store  domain.LeadStore
	logger *zap.Logger
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(store domain.LeadStore, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{store: store, logger: logger}
}

// List handles GET /api/v1/leads. An optional chatbot_id query parameter
// filters to one chatbot's leads.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	chatbotID := r.URL.Query().Get("chatbot_id")

	leads, err := h.store.GetLeads(r.Context(), chatbotID)
	if err != nil {
		h.logger.Error("listing leads failed", zap.Error(err))
		httputil.ErrorFromDomain(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, leads)
}
