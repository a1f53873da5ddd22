package leadcapture

import (
	"context"
	"strings"

	"github.com/leadgenie/leadgenie/internal/domain"
)

// State is the lead-capture position. Transitions are strictly forward:
// Inactive -> AskName -> AskEmail -> AskPhone -> Captured.
type State string

const (
	StateInactive State = "inactive"
	StateAskName  State = "ask_name"
	StateAskEmail State = "ask_email"
	StateAskPhone State = "ask_phone"
	StateCaptured State = "captured"
)

// Prompt returns the form question shown for an active state.
func (s State) Prompt() string {
	switch s {
	case StateAskName:
		return "May I know your name?"
	case StateAskEmail:
		return "What's your email address?"
	case StateAskPhone:
		return "And your phone number?"
	default:
		return ""
	}
}

// PersistFunc records the completed lead. Called exactly once, on the
// terminal transition out of AskPhone. A non-nil error keeps the machine in
// AskPhone so the visitor can retry the same action.
type PersistFunc func(ctx context.Context, name, email, phone string) error

// Machine drives the three-step contact form. The zero state is Inactive;
// the caller arms it when the question-count trigger fires.
type Machine struct {
	state State
	name  string
	email string
	phone string

	persist PersistFunc
}

// New creates an inactive machine with the given persist collaborator.
func New(persist PersistFunc) *Machine {
	return &Machine{state: StateInactive, persist: persist}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// InFlow reports whether the form is open, which blocks free chat input.
func (m *Machine) InFlow() bool {
	switch m.state {
	case StateAskName, StateAskEmail, StateAskPhone:
		return true
	}
	return false
}

// Captured reports whether a lead was recorded this session.
func (m *Machine) Captured() bool { return m.state == StateCaptured }

// Arm starts the form. Legal only from Inactive.
func (m *Machine) Arm() error {
	if m.state != StateInactive {
		return domain.InvalidTransitionError("lead capture already started")
	}
	m.state = StateAskName
	return nil
}

// Reset returns the machine to Inactive and clears partially collected data.
// Used when the session switches to a different chatbot.
func (m *Machine) Reset() {
	m.state = StateInactive
	m.name = ""
	m.email = ""
	m.phone = ""
}

// Submit accepts the visitor's value for the current step. Validation
// failures leave the state unchanged and return a VALIDATION_ERROR.
func (m *Machine) Submit(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)

	switch m.state {
	case StateAskName:
		if value == "" {
			return domain.ValidationError("name", "please enter your name")
		}
		m.name = value
		m.state = StateAskEmail
		return nil

	case StateAskEmail:
		if !ValidateEmail(value) {
			return domain.ValidationError("email", "please enter a valid email")
		}
		m.email = value
		m.state = StateAskPhone
		return nil

	case StateAskPhone:
		if value == "" {
			value = domain.PlaceholderPhone
		}
		return m.complete(ctx, value)

	default:
		return domain.InvalidTransitionError("no form step is awaiting input")
	}
}

// Skip stores the placeholder for the current step and advances.
func (m *Machine) Skip(ctx context.Context) error {
	switch m.state {
	case StateAskName:
		m.name = domain.PlaceholderName
		m.state = StateAskEmail
		return nil

	case StateAskEmail:
		m.email = domain.PlaceholderEmail
		m.state = StateAskPhone
		return nil

	case StateAskPhone:
		return m.complete(ctx, domain.PlaceholderPhone)

	default:
		return domain.InvalidTransitionError("no form step is awaiting input")
	}
}

// complete performs the terminal action shared by Submit and Skip on the
// phone step: persist the lead, then transition to Captured.
func (m *Machine) complete(ctx context.Context, phone string) error {
	m.phone = phone
	if m.persist != nil {
		if err := m.persist(ctx, m.name, m.email, m.phone); err != nil {
			return err
		}
	}
	m.state = StateCaptured
	return nil
}

// ValidateEmail does the basic format check: an "@" must be present and the
// part after the last "@" must contain a ".".
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return false
	}
	domainPart := email[strings.LastIndex(email, "@")+1:]
	return strings.Contains(domainPart, ".")
}
