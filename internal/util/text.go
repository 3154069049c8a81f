package util

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// SanitizePrompt normalizes article text before it is sent to the generative
// backend: combining diacritics, high-plane runes and control characters are
// dropped and whitespace is collapsed. Some backends reject payloads with
// mixed-script noise scraped out of page chrome.
func SanitizePrompt(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := false
	for _, r := range text {
		switch {
		case r >= 0x0300 && r <= 0x036F: // combining diacritical marks
			continue
		case r >= 0x0400: // Cyrillic, CJK and other high-plane runes
			continue
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

// LooksLikeHTML reports whether the payload appears to be markup rather than
// plain article text. Extensions normally send innerText, but some pages
// hand over raw fragments.
func LooksLikeHTML(text string) bool {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "<!DOCTYPE") || strings.HasPrefix(t, "<!doctype") {
		return true
	}
	lower := strings.ToLower(t)
	for _, tag := range []string{"<html", "<body", "<article", "<p>", "<div"} {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

// VisibleText extracts the readable text from an HTML fragment, skipping
// script, style, noscript and iframe subtrees.
func VisibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}
