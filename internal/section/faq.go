// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/article-engine/pkg/types"
)

const maxQuestionRunes = 80

var (
	qMarker  = regexp.MustCompile(`^\s*Q[:：]`)
	qPattern = regexp.MustCompile(`^Q[:：]\s*(.+)`)
	aPattern = regexp.MustCompile(`(?s)A[:：]\s*(.+)`)
)

// bulletCutset covers the bullet characters the model uses for lists.
const bulletCutset = "・-•* \t"

// ParseFAQ converts loosely formatted FAQ text into question/answer pairs.
// It never fails: Q:/A: blocks (ASCII or full-width colon) are preferred;
// a bullet list degrades to auto-numbered questions; any other non-empty
// text becomes a single pair with the first line as the question. Empty
// input yields no pairs.
func ParseFAQ(text string) []types.QA {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if pairs := parseMarkedBlocks(text); len(pairs) > 0 {
		return pairs
	}

	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return nil
	}

	if allBulleted(lines) {
		pairs := make([]types.QA, 0, len(lines))
		for i, line := range lines {
			answer := strings.TrimSpace(strings.TrimLeft(line, bulletCutset))
			if answer == "" {
				// A bare bullet still counts: keep the line as written so
				// every non-empty input yields at least one pair.
				answer = line
			}
			pairs = append(pairs, types.QA{
				Question: fmt.Sprintf("Question %d", i+1),
				Answer:   answer,
			})
		}
		return pairs
	}

	question := truncateRunes(lines[0], maxQuestionRunes)
	answer := strings.TrimSpace(strings.Join(lines[1:], "\n"))
	return []types.QA{{Question: question, Answer: answer}}
}

// parseMarkedBlocks splits the text at lines opening with a Q marker and
// extracts one pair per block. A block without markers, such as a preamble
// before the first question, still becomes a pair with its first line as
// the question. Returns nil when no marked block exists at all so the
// caller's fallbacks apply.
func parseMarkedBlocks(text string) []types.QA {
	var pairs []types.QA
	marked := false
	for _, block := range splitAtQMarkers(text) {
		firstLine, rest, _ := strings.Cut(strings.TrimSpace(block), "\n")
		if m := qPattern.FindStringSubmatch(firstLine); m != nil {
			marked = true
			question := truncateRunes(strings.TrimSpace(m[1]), maxQuestionRunes)
			if question == "" {
				continue
			}
			answer := ""
			if am := aPattern.FindStringSubmatch(rest); am != nil {
				answer = strings.TrimSpace(am[1])
			}
			pairs = append(pairs, types.QA{Question: question, Answer: answer})
			continue
		}

		question := truncateRunes(strings.TrimSpace(firstLine), maxQuestionRunes)
		if question == "" {
			continue
		}
		pairs = append(pairs, types.QA{
			Question: question,
			Answer:   strings.TrimSpace(rest),
		})
	}
	if !marked {
		return nil
	}
	return pairs
}

// splitAtQMarkers returns blocks delimited by lines that start a question.
func splitAtQMarkers(text string) []string {
	lines := strings.Split(text, "\n")
	var blocks []string
	var current []string
	for _, line := range lines {
		if qMarker.MatchString(line) && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func allBulleted(lines []string) bool {
	for _, line := range lines {
		if !strings.ContainsAny(string(firstRune(line)), "・-•*") {
			return false
		}
	}
	return true
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
