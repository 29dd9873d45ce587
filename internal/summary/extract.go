package summary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// maxFetchBytes bounds how much of a page is read.
	maxFetchBytes = 2 << 20

	// minParagraphLength filters nav links and bylines out of the
	// extracted body text.
	minParagraphLength = 60

	// maxContentLength bounds extracted text fed to a summarizer.
	maxContentLength = 8000
)

// contentSelectors are tried in order; the first match wins. Ordered
// from most to least specific.
var contentSelectors = []string{
	"article",
	"main",
	"div[itemprop=articleBody]",
	"div.article-body",
	"div.story-body",
	"div.post-content",
	"div.entry-content",
	"div.content",
}

// Extractor fetches a page and pulls out its readable body text.
type Extractor struct {
	httpClient *http.Client
}

// NewExtractor creates a page extractor.
func NewExtractor() *Extractor {
	return &Extractor{httpClient: &http.Client{Timeout: 20 * time.Second}}
}

// Extract fetches url and returns its body text, trimmed to a length a
// summarizer can handle.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "newsrank/1.0")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching page: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}
	return ExtractContent(doc), nil
}

// ExtractContent pulls readable text from a parsed document. It walks
// the selector list for a content container, then collects its
// paragraphs; with no container it falls back to every paragraph on
// the page.
func ExtractContent(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer, aside").Remove()

	for _, sel := range contentSelectors {
		if container := doc.Find(sel).First(); container.Length() > 0 {
			if text := paragraphText(container); text != "" {
				return text
			}
		}
	}
	return paragraphText(doc.Selection)
}

func paragraphText(s *goquery.Selection) string {
	var b strings.Builder
	s.Find("p").Each(func(_ int, p *goquery.Selection) {
		if b.Len() >= maxContentLength {
			return
		}
		text := strings.Join(strings.Fields(p.Text()), " ")
		if len(text) < minParagraphLength {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	})

	out := b.String()
	if len(out) > maxContentLength {
		out = truncateWords(out, maxContentLength)
	}
	return out
}
