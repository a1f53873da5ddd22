package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContacts_FindsEmailsAndPhones(t *testing.T) {
	text := "Reach us at sales@acme.example or support@acme.example.\n" +
		"Call +1 555 123 4567 or 020 7946 0123 any weekday."

	got := ExtractContacts(text, 3)

	assert.Equal(t, []string{"sales@acme.example", "support@acme.example"}, got.Emails)
	assert.Len(t, got.Phones, 2)
	assert.Contains(t, got.Phones[0], "555 123 4567")
}

func TestExtractContacts_DeduplicatesAndCaps(t *testing.T) {
	text := "a@x.com a@x.com b@x.com c@x.com d@x.com e@x.com"

	got := ExtractContacts(text, 3)

	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, got.Emails)
}

func TestExtractContacts_NoMatches(t *testing.T) {
	got := ExtractContacts("nothing to see here", 3)

	assert.True(t, got.IsEmpty())
	// Empty slices, not nil, so the JSON representation is [].
	assert.NotNil(t, got.Emails)
	assert.NotNil(t, got.Phones)
}
