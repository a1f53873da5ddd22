package memory

import (
	"context"
	"sync"
	"time"

	"github.com/leadgenie/leadgenie/internal/domain"
)

// Store keeps leads and chatbot configs in process memory. Nothing survives
// a restart. Leads are append-only with monotonic ids; chatbots are keyed by
// their chatbot id and saving again updates in place.
type Store struct {
	mu sync.RWMutex

	leads      []*domain.Lead
	nextLeadID int

	chatbots      map[string]*domain.Chatbot
	chatbotOrder  []string
	nextChatbotID int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		nextLeadID:    1,
		chatbots:      make(map[string]*domain.Chatbot),
		nextChatbotID: 1,
	}
}

var (
	_ domain.LeadStore    = (*Store)(nil)
	_ domain.ChatbotStore = (*Store)(nil)
)

// SaveLead appends a new lead record and returns it. CapturedAt is set here,
// at capture time; it is never updated afterward.
func (s *Store) SaveLead(ctx context.Context, params domain.SaveLeadParams) (*domain.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conversation := make([]domain.ConversationTurn, len(params.Conversation))
	copy(conversation, params.Conversation)

	lead := &domain.Lead{
		ID:             s.nextLeadID,
		Name:           orPlaceholder(params.Name, domain.PlaceholderName),
		Email:          orPlaceholder(params.Email, domain.PlaceholderEmail),
		Phone:          orPlaceholder(params.Phone, domain.PlaceholderPhone),
		ChatbotID:      params.ChatbotID,
		CompanyName:    params.CompanyName,
		SessionID:      params.SessionID,
		QuestionsAsked: params.QuestionsAsked,
		Conversation:   conversation,
		StartedAt:      params.StartedAt,
		CapturedAt:     time.Now().UTC(),
	}

	s.leads = append(s.leads, lead)
	s.nextLeadID++
	return lead, nil
}

// GetLeads returns leads in capture order, filtered by chatbot id when one
// is given.
func (s *Store) GetLeads(ctx context.Context, chatbotID string) ([]*domain.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		if chatbotID == "" || lead.ChatbotID == chatbotID {
			out = append(out, lead)
		}
	}
	return out, nil
}

// SaveChatbot inserts or updates a chatbot config.
func (s *Store) SaveChatbot(ctx context.Context, chatbotID, companyName, websiteURL, embedCode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.chatbots[chatbotID]; ok {
		existing.CompanyName = companyName
		existing.WebsiteURL = websiteURL
		existing.EmbedCode = embedCode
		existing.UpdatedAt = now
		return nil
	}

	s.chatbots[chatbotID] = &domain.Chatbot{
		ID:          s.nextChatbotID,
		ChatbotID:   chatbotID,
		CompanyName: companyName,
		WebsiteURL:  websiteURL,
		EmbedCode:   embedCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.chatbotOrder = append(s.chatbotOrder, chatbotID)
	s.nextChatbotID++
	return nil
}

// GetChatbot looks up a chatbot config by id.
func (s *Store) GetChatbot(ctx context.Context, chatbotID string) (*domain.Chatbot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	bot, ok := s.chatbots[chatbotID]
	if !ok {
		return nil, domain.NotFoundError("chatbot", chatbotID)
	}
	return bot, nil
}

// ListChatbots returns all chatbot configs in creation order.
func (s *Store) ListChatbots(ctx context.Context) ([]*domain.Chatbot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Chatbot, 0, len(s.chatbotOrder))
	for _, id := range s.chatbotOrder {
		out = append(out, s.chatbots[id])
	}
	return out, nil
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
