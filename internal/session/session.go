package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leadgenie/leadgenie/internal/chatbot"
	"github.com/leadgenie/leadgenie/internal/domain"
	"github.com/leadgenie/leadgenie/internal/leadcapture"
)

// Session is the explicit per-visitor context: the current chatbot, the
// conversation so far, the question counter, and the lead-capture machine.
// At most one chatbot is current per session; switching resets everything.
type Session struct {
	ID        string
	StartedAt time.Time

	mu            sync.Mutex
	bot           *chatbot.Bot
	turns         []domain.ConversationTurn
	questionCount int
	machine       *leadcapture.Machine
	lastLead      *domain.Lead
}

// Bot returns the session's current chatbot.
func (s *Session) Bot() *chatbot.Bot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bot
}

// Turns returns a copy of the conversation so far.
func (s *Session) Turns() []domain.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// QuestionCount returns the number of answered questions.
func (s *Session) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questionCount
}

// CaptureState returns the machine's current state.
func (s *Session) CaptureState() leadcapture.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

// CaptureStatus describes an open form step.
type CaptureStatus struct {
	State  leadcapture.State `json:"state"`
	Prompt string            `json:"prompt"`
}

// MessageResult is the outcome of one free-chat message.
type MessageResult struct {
	Reply         string         `json:"reply"`
	Route         chatbot.Route  `json:"route"`
	QuestionCount int            `json:"question_count"`
	Capture       *CaptureStatus `json:"capture,omitempty"`
}

// CaptureResult is the outcome of one form action.
type CaptureResult struct {
	State    leadcapture.State `json:"state"`
	Prompt   string            `json:"prompt,omitempty"`
	Captured bool              `json:"captured"`
	Lead     *domain.Lead      `json:"lead,omitempty"`
}

// Action is a form action submitted by the visitor.
type Action string

const (
	ActionSubmit Action = "submit"
	ActionSkip   Action = "skip"
)

// Manager owns all live sessions and drives the chat/capture flow over them.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	leadStore    domain.LeadStore
	captureAfter int
}

// NewManager creates a session manager. captureAfter is the answered-question
// threshold that arms lead capture.
func NewManager(leadStore domain.LeadStore, captureAfter int) *Manager {
	if captureAfter < 1 {
		captureAfter = 3
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		leadStore:    leadStore,
		captureAfter: captureAfter,
	}
}

// Create starts a new session bound to a chatbot.
func (m *Manager) Create(bot *chatbot.Bot) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		bot:       bot,
	}
	sess.machine = leadcapture.New(m.persistFor(sess))

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	return sess
}

// Get looks up a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, domain.NotFoundError("session", id)
	}
	return sess, nil
}

// Switch binds the session to a different chatbot, resetting the
// conversation, the question counter, and the capture machine. Rebinding the
// same chatbot is a no-op.
func (m *Manager) Switch(sess *Session, bot *chatbot.Bot) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.bot != nil && bot != nil && sess.bot.ChatbotID == bot.ChatbotID {
		return
	}

	sess.bot = bot
	sess.turns = nil
	sess.questionCount = 0
	sess.lastLead = nil
	sess.machine.Reset()
}

// HandleMessage routes one visitor message through the chatbot. While the
// capture form is open, free chat is refused and the caller must surface the
// form instead. The question that crosses the capture threshold still gets
// its normal answer; the form opens on the same result.
func (m *Manager) HandleMessage(ctx context.Context, sess *Session, content string) (*MessageResult, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.machine.InFlow() {
		return nil, domain.CaptureRequiredError()
	}

	sess.turns = append(sess.turns, domain.ConversationTurn{Role: domain.RoleUser, Content: content})

	reply, route := sess.bot.Ask(ctx, content)

	sess.turns = append(sess.turns, domain.ConversationTurn{Role: domain.RoleAssistant, Content: reply})
	sess.questionCount++

	if sess.questionCount >= m.captureAfter && !sess.machine.Captured() && !sess.machine.InFlow() {
		sess.machine.Arm()
	}

	result := &MessageResult{
		Reply:         reply,
		Route:         route,
		QuestionCount: sess.questionCount,
	}
	if sess.machine.InFlow() {
		state := sess.machine.State()
		result.Capture = &CaptureStatus{State: state, Prompt: state.Prompt()}
	}
	return result, nil
}

// HandleCapture drives one form action. Validation errors surface to the
// caller with the state unchanged; the terminal action records the lead.
func (m *Manager) HandleCapture(ctx context.Context, sess *Session, action Action, value string) (*CaptureResult, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	var err error
	switch action {
	case ActionSubmit:
		err = sess.machine.Submit(ctx, value)
	case ActionSkip:
		err = sess.machine.Skip(ctx)
	default:
		return nil, domain.BadRequestError("action must be \"submit\" or \"skip\"")
	}
	if err != nil {
		return nil, err
	}

	state := sess.machine.State()
	result := &CaptureResult{
		State:    state,
		Prompt:   state.Prompt(),
		Captured: sess.machine.Captured(),
	}
	if result.Captured {
		result.Lead = sess.lastLead
	}
	return result, nil
}

// persistFor builds the machine's storage callback for one session. Invoked
// with the session lock held, so it reads session fields directly.
func (m *Manager) persistFor(sess *Session) leadcapture.PersistFunc {
	return func(ctx context.Context, name, email, phone string) error {
		lead, err := m.leadStore.SaveLead(ctx, domain.SaveLeadParams{
			ChatbotID:      sess.bot.ChatbotID,
			CompanyName:    sess.bot.CompanyName,
			Name:           name,
			Email:          email,
			Phone:          phone,
			SessionID:      sess.ID,
			QuestionsAsked: sess.questionCount,
			Conversation:   sess.turns,
			StartedAt:      sess.StartedAt,
		})
		if err != nil {
			return domain.InternalError("saving lead failed", err)
		}
		sess.lastLead = lead
		return nil
	}
}
