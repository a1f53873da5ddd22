package chatbot

import "sync"

// Registry holds the live bot instances for this process, keyed by company
// slug. Adding a bot under an existing slug replaces the previous instance.
type Registry struct {
	mu     sync.RWMutex
	bySlug map[string]*Bot
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySlug: make(map[string]*Bot)}
}

// Add registers a bot under a slug, replacing any previous instance.
func (r *Registry) Add(slug string, bot *Bot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bySlug[slug]; !exists {
		r.order = append(r.order, slug)
	}
	r.bySlug[slug] = bot
}

// Get looks up a bot by slug.
func (r *Registry) Get(slug string) (*Bot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bot, ok := r.bySlug[slug]
	return bot, ok
}

// GetByID looks up a bot by its chatbot id.
func (r *Registry) GetByID(chatbotID string) (*Bot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, bot := range r.bySlug {
		if bot.ChatbotID == chatbotID {
			return bot, true
		}
	}
	return nil, false
}

// Remove drops a bot from the registry.
func (r *Registry) Remove(slug string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySlug[slug]; !ok {
		return
	}
	delete(r.bySlug, slug)
	for i, s := range r.order {
		if s == slug {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// List returns registered bots in insertion order.
func (r *Registry) List() []*Bot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Bot, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.bySlug[slug])
	}
	return out
}
