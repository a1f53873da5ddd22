package scraper

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// skipElements are removed wholesale before text extraction: boilerplate
// markup that never carries answerable content.
var skipElements = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"footer": true,
}

// ExtractText parses HTML and returns its visible text as newline-joined
// lines. Lines are trimmed; only lines longer than minLine chars are kept,
// capped at maxLines, and the joined result is truncated to maxLen bytes.
// An empty string means the page had no qualifying text.
func ExtractText(r io.Reader, minLine, maxLines, maxLen int) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var lines []string

	var walker func(*html.Node)
	walker = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			for _, raw := range strings.Split(n.Data, "\n") {
				line := strings.TrimSpace(raw)
				if len(line) > minLine {
					lines = append(lines, line)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walker(c)
		}
	}
	walker(doc)

	if len(lines) == 0 {
		return "", nil
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	content := strings.Join(lines, "\n")
	if len(content) > maxLen {
		content = content[:maxLen]
	}
	return content, nil
}
