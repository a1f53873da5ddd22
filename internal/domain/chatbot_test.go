package domain

import (
	"regexp"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple name",
			input: "Acme",
			want:  "acme",
		},
		{
			name:  "spaces become dashes",
			input: "Acme Corp",
			want:  "acme-corp",
		},
		{
			name:  "punctuation collapses",
			input: "Smith & Sons, Inc.",
			want:  "smith-sons-inc",
		},
		{
			name:  "leading and trailing junk trimmed",
			input: "  Hello World!  ",
			want:  "hello-world",
		},
		{
			name:  "digits kept",
			input: "Studio 54",
			want:  "studio-54",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewChatbotID(t *testing.T) {
	id := NewChatbotID("Acme Corp", "https://acme.example")

	if len(id) != 12 {
		t.Errorf("id length = %d, want 12", len(id))
	}
	if !regexp.MustCompile(`^[0-9a-f]{12}$`).MatchString(id) {
		t.Errorf("id %q is not lowercase hex", id)
	}

	other := NewChatbotID("Acme Corp", "https://acme.example")
	if id == other {
		t.Error("two ids for the same inputs should differ")
	}
}

func TestContactInfo_IsEmpty(t *testing.T) {
	if !(ContactInfo{}).IsEmpty() {
		t.Error("zero ContactInfo should be empty")
	}
	if (ContactInfo{Emails: []string{"a@b.com"}}).IsEmpty() {
		t.Error("ContactInfo with an email should not be empty")
	}
	if (ContactInfo{Phones: []string{"+1 555 000 1234"}}).IsEmpty() {
		t.Error("ContactInfo with a phone should not be empty")
	}
}
