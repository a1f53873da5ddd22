package scraper

import (
	"regexp"

	"github.com/leadgenie/leadgenie/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s.\-]{7,}\d`)
)

// ExtractContacts mines email addresses and phone-like digit sequences from
// text. Results are deduplicated in first-seen order and capped at max each.
func ExtractContacts(text string, max int) domain.ContactInfo {
	return domain.ContactInfo{
		Emails: uniqueCapped(emailPattern.FindAllString(text, -1), max),
		Phones: uniqueCapped(phonePattern.FindAllString(text, -1), max),
	}
}

func uniqueCapped(matches []string, max int) []string {
	out := []string{}
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
		if len(out) >= max {
			break
		}
	}
	return out
}
