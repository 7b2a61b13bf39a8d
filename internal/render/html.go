// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render produces the deterministic article outputs: marked-up HTML
// and the schema.org JSON-LD block.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/pdiddy/article-engine/internal/section"
	"github.com/pdiddy/article-engine/pkg/types"
)

// headings maps each canonical key to its document heading. Keys outside
// the canonical order are not rendered.
var headings = map[string]string{
	"intro":          "Introduction",
	"overview":       "Overview",
	"key_points":     "Key Points",
	"methodology":    "Methodology",
	"advantages":     "Advantages",
	"disadvantages":  "Disadvantages",
	"use_cases":      "Use Cases",
	"original_data":  "Original Data",
	"faq":            "FAQ",
	"future_outlook": "Future Outlook",
	"conclusion":     "Conclusion",
	"references":     "References",
}

// listPreferred holds the keys rendered as a <ul> when the section is a
// list, falling back to a paragraph for plain text.
var listPreferred = map[string]bool{
	"advantages":    true,
	"disadvantages": true,
	"use_cases":     true,
}

// HTML renders the sections in canonical order. Absent or empty sections
// are skipped. All text and URLs are escaped before emission.
func HTML(s *types.Sections) string {
	var b strings.Builder
	for _, key := range section.CanonicalOrder {
		v, ok := s.Get(key)
		if !ok || v.IsEmpty() {
			continue
		}

		fmt.Fprintf(&b, "<h2>%s</h2>\n", headings[key])
		switch {
		case key == "key_points":
			writeList(&b, v.List)
		case key == "faq":
			writeFAQ(&b, v)
		case key == "references":
			writeReferences(&b, v.List)
		case listPreferred[key] && v.Kind == types.KindList:
			writeList(&b, v.List)
		default:
			writeParagraph(&b, v.String())
		}
	}
	return b.String()
}

// writeParagraph emits a single <p>, turning newlines into <br> breaks.
func writeParagraph(b *strings.Builder, text string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = html.EscapeString(strings.TrimSpace(line))
	}
	fmt.Fprintf(b, "<p>%s</p>\n", strings.Join(lines, "<br>"))
}

func writeList(b *strings.Builder, items []string) {
	b.WriteString("<ul>\n")
	for _, item := range items {
		fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(item))
	}
	b.WriteString("</ul>\n")
}

// writeFAQ emits one <h3> question and <p> answer per pair. A FAQ that is
// still plain text degrades to a paragraph.
func writeFAQ(b *strings.Builder, v types.Value) {
	if v.Kind != types.KindQA {
		writeParagraph(b, v.String())
		return
	}
	for _, qa := range v.QA {
		fmt.Fprintf(b, "<h3>%s</h3>\n", html.EscapeString(qa.Question))
		writeParagraph(b, qa.Answer)
	}
}

func writeReferences(b *strings.Builder, urls []string) {
	b.WriteString("<ul>\n")
	for _, u := range urls {
		escaped := html.EscapeString(u)
		fmt.Fprintf(b, "<li><a href=\"%s\" target=\"_blank\" rel=\"nofollow noopener\">%s</a></li>\n", escaped, escaped)
	}
	b.WriteString("</ul>\n")
}
