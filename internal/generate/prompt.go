// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/pdiddy/article-engine/pkg/types"
)

// draftSystemPrompt frames the model as an SEO editor and pins the output
// contract: one JSON object, canonical section keys, nothing else.
const draftSystemPrompt = `You are a professional SEO editor writing long-form articles in Japanese.
Respond with a single JSON object and no text outside it.
Use these top-level keys where you have material for them:
intro, overview, key_points, methodology, advantages, disadvantages,
use_cases, original_data, faq, future_outlook, conclusion, references.
key_points is a list of short bullet strings. faq is a list of objects with
"question" and "answer" fields. references is a list of source URLs drawn
from the search results you were given. All other values are plain strings.`

var draftUserTmpl = template.Must(template.New("draft").Parse(`Write a comprehensive SEO article about: {{.Topic}}

Ground the article in these ranked search results (JSON):
{{.SERP}}
{{if .CustomData}}
The publisher supplied this original data; work it into an original_data section:
{{.CustomData}}
{{end}}`))

const regenerateSystemPrompt = `You are a professional SEO editor improving one section of an existing Japanese article.
Respond with the improved section text only. No JSON, no headings, no commentary.`

var regenerateTmpl = template.Must(template.New("regenerate").Parse(`Article topic: {{.Topic}}
Section: {{.Key}}

Current text:
{{.CurrentText}}

Rewrite this section to be clearer, better structured, and more useful to readers.`))

const evaluateSystemPrompt = `You are an editorial reviewer scoring a finished article.
Respond with a single JSON object with integer scores from 0 to 10 for
"comprehensiveness", "readability", "authority", and "seo_fitness", a
"suggestions" list of short strings, and an "overall_comment" string.`

var evaluateTmpl = template.Must(template.New("evaluate").Parse(`Article topic: {{.Topic}}

{{range .Sections}}## {{.Key}}
{{.Text}}

{{end}}`))

func renderDraftPrompt(topic string, results []types.Result, customData string) (string, error) {
	serp, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding search results: %w", err)
	}

	var buf bytes.Buffer
	err = draftUserTmpl.Execute(&buf, struct {
		Topic      string
		SERP       string
		CustomData string
	}{Topic: topic, SERP: string(serp), CustomData: customData})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderRegeneratePrompt(topic, key, currentText string) (string, error) {
	var buf bytes.Buffer
	err := regenerateTmpl.Execute(&buf, struct {
		Topic       string
		Key         string
		CurrentText string
	}{Topic: topic, Key: key, CurrentText: currentText})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderEvaluatePrompt(art *types.Article) (string, error) {
	type sectionText struct {
		Key  string
		Text string
	}
	var sections []sectionText
	art.Sections.Range(func(key string, v types.Value) bool {
		sections = append(sections, sectionText{Key: key, Text: v.String()})
		return true
	})

	var buf bytes.Buffer
	err := evaluateTmpl.Execute(&buf, struct {
		Topic    string
		Sections []sectionText
	}{Topic: art.Topic, Sections: sections})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
