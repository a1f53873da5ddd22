package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidgetCode(t *testing.T) {
	code := WidgetCode("abc123def456", "Acme Corp")

	assert.Contains(t, code, "<!-- Acme Corp AI Chatbot -->")
	assert.Contains(t, code, `id="chatbot-abc123def456"`)
	assert.Contains(t, code, "iframe.src='YOUR_SERVER_URL?id=abc123def456'")
	assert.Contains(t, code, "btn.innerHTML='Chat'")
}

func TestWidgetCode_Deterministic(t *testing.T) {
	a := WidgetCode("abc123def456", "Acme Corp")
	b := WidgetCode("abc123def456", "Acme Corp")
	assert.Equal(t, a, b)
}
