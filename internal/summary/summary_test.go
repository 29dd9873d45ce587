package summary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestExtractive_Summarize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short text kept whole",
			text: "First sentence. Second sentence.",
			want: "First sentence. Second sentence.",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
		{
			name: "whitespace collapsed",
			text: "Spaced   out\n\ttext.",
			want: "Spaced out text.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extractive{}.Summarize(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Summarize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractive_LengthBound(t *testing.T) {
	sentence := "This sentence pads the text toward the summary length limit. "
	long := strings.Repeat(sentence, 20)

	got, err := Extractive{}.Summarize(context.Background(), long)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len(got) > MaxSummaryLength {
		t.Errorf("len = %d, want <= %d", len(got), MaxSummaryLength)
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("summary does not end on a sentence boundary: %q", got)
	}
}

func TestExtractive_OversizedSentence(t *testing.T) {
	long := strings.Repeat("word ", 200) // one sentence, no terminal punctuation

	got, err := Extractive{}.Summarize(context.Background(), long)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got == "" || len(got) > MaxSummaryLength {
		t.Errorf("len = %d, want 1..%d", len(got), MaxSummaryLength)
	}
}

const testPage = `<html><head><title>t</title></head><body>
<nav><p>Home News Sport Weather and more from the navigation bar over here</p></nav>
<article>
<p>The first substantial paragraph of the article body carries the actual news content being reported today.</p>
<p>ad</p>
<p>The second substantial paragraph continues the story with additional details and quotes from those involved.</p>
</article>
<footer><p>Copyright and contact information and other boilerplate text that lives down in the footer</p></footer>
</body></html>`

func TestExtractContent(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(testPage))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	got := ExtractContent(doc)
	if !strings.Contains(got, "first substantial paragraph") {
		t.Errorf("body text missing: %q", got)
	}
	if !strings.Contains(got, "second substantial paragraph") {
		t.Errorf("second paragraph missing: %q", got)
	}
	if strings.Contains(got, "navigation bar") || strings.Contains(got, "footer") {
		t.Errorf("chrome leaked into extraction: %q", got)
	}
	if strings.Contains(" "+got+" ", " ad ") {
		t.Errorf("short filler paragraph kept: %q", got)
	}
}

func TestExtractContent_NoContainer(t *testing.T) {
	page := `<html><body><div><p>A bare page with one long enough paragraph to clear the minimum length filter.</p></div></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	if got := ExtractContent(doc); !strings.Contains(got, "bare page") {
		t.Errorf("fallback extraction failed: %q", got)
	}
}

func TestExtractor_Extract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	e := NewExtractor()
	got, err := e.Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(got, "first substantial paragraph") {
		t.Errorf("extracted = %q", got)
	}
}

func TestHFClient_Summarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer hf-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`[{"summary_text": "A condensed version."}]`))
	}))
	defer srv.Close()

	c := NewHFClient("hf-key", WithHFEndpoint(srv.URL))
	got, err := c.Summarize(context.Background(), "Long article text goes here.")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "A condensed version." {
		t.Errorf("Summarize() = %q", got)
	}
}

func TestHFClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHFClient("", WithHFEndpoint(srv.URL))
	if _, err := c.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

type failingSummarizer struct{}

func (failingSummarizer) Summarize(context.Context, string) (string, error) {
	return "", errors.New("unreachable")
}

func TestFallback(t *testing.T) {
	f := Fallback{Primary: failingSummarizer{}}
	got, err := f.Summarize(context.Background(), "Fallback text survives. Even when the model is down.")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !strings.HasPrefix(got, "Fallback text survives.") {
		t.Errorf("Summarize() = %q", got)
	}
}

func TestFallback_NoPrimary(t *testing.T) {
	f := Fallback{}
	got, err := f.Summarize(context.Background(), "Only the extractive pass runs.")
	if err != nil || got == "" {
		t.Errorf("Summarize() = %q, %v", got, err)
	}
}
