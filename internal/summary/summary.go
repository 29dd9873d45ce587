// Package summary produces short article summaries for records that
// arrived without one. A hosted model is tried first; a local
// extractive pass covers the case where no model is reachable.
package summary

import (
	"context"
	"strings"
)

// MaxSummaryLength bounds summary output in characters.
const MaxSummaryLength = 400

// Summarizer condenses article text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Extractive is the keyless fallback summarizer: it keeps the leading
// sentences of the text up to the length bound. News copy front-loads
// the substance, so this reads acceptably in practice.
type Extractive struct{}

// Summarize implements Summarizer.
func (Extractive) Summarize(_ context.Context, text string) (string, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "", nil
	}

	var b strings.Builder
	for _, sentence := range splitSentences(text) {
		if b.Len() > 0 && b.Len()+len(sentence)+1 > MaxSummaryLength {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
	}
	out := b.String()
	if out == "" {
		// Single oversized sentence: hard-truncate on a word boundary.
		out = truncateWords(text, MaxSummaryLength)
	}
	return out, nil
}

// splitSentences breaks text on terminal punctuation. It does not try
// to handle abbreviations; over-splitting only shortens the summary.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' {
			continue
		}
		s := strings.TrimSpace(text[start : i+1])
		if s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func truncateWords(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := strings.LastIndexByte(text[:limit], ' ')
	if cut <= 0 {
		cut = limit
	}
	return strings.TrimSpace(text[:cut])
}
