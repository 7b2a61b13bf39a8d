// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pdiddy/article-engine/pkg/types"
)

// now is substitutable so tests can pin the publication date.
var now = time.Now

// authorName identifies the publishing organization in structured data.
const authorName = "Article Engine"

type articleLD struct {
	Context       string   `json:"@context"`
	Type          string   `json:"@type"`
	Headline      string   `json:"headline"`
	DatePublished string   `json:"datePublished"`
	DateModified  string   `json:"dateModified"`
	Author        authorLD `json:"author"`
	MainEntity    []any    `json:"mainEntity"`
}

type authorLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type faqPageLD struct {
	Type       string       `json:"@type"`
	MainEntity []questionLD `json:"mainEntity"`
}

type questionLD struct {
	Type           string   `json:"@type"`
	Name           string   `json:"name"`
	AcceptedAnswer answerLD `json:"acceptedAnswer"`
}

type answerLD struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// JSONLD builds the schema.org Article block for the topic. When the faq
// section holds question/answer pairs a FAQPage entity mirrors every pair.
// Text is verbatim: JSON strings are not HTML-escaped here.
func JSONLD(topic string, s *types.Sections) string {
	today := now().UTC().Format("2006-01-02")
	ld := articleLD{
		Context:       "https://schema.org",
		Type:          "Article",
		Headline:      topic,
		DatePublished: today,
		DateModified:  today,
		Author:        authorLD{Type: "Organization", Name: authorName},
		MainEntity:    []any{},
	}

	if v, ok := s.Get("faq"); ok && v.Kind == types.KindQA && len(v.QA) > 0 {
		page := faqPageLD{Type: "FAQPage"}
		for _, qa := range v.QA {
			page.MainEntity = append(page.MainEntity, questionLD{
				Type: "Question",
				Name: qa.Question,
				AcceptedAnswer: answerLD{
					Type: "Answer",
					Text: qa.Answer,
				},
			})
		}
		ld.MainEntity = append(ld.MainEntity, page)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ld); err != nil {
		// The structures above always marshal.
		return ""
	}
	return buf.String()
}
