package article

import (
	"errors"
	"testing"
	"time"
)

func TestParseTopic(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  Topic
	}{
		{"exact match", "technology", TopicTechnology},
		{"mixed case", "TeChNoLoGy", TopicTechnology},
		{"surrounding whitespace", "  sports ", TopicSports},
		{"unknown label", "astrology", TopicUncategorized},
		{"empty label", "", TopicUncategorized},
		{"uncategorized is not a known topic", "uncategorized", TopicUncategorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTopic(tt.label); got != tt.want {
				t.Errorf("ParseTopic(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := Raw{
		ID:          "abc123",
		Title:       "Quantum Breakthrough Announced",
		URL:         "https://example.com/quantum",
		Source:      "Science Daily",
		PublishedAt: "2026-03-01T10:30:00Z",
		Summary:     "Scientists demonstrate a 1000-qubit processor.",
		Topic:       "Technology",
	}

	a, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if a.ID != "abc123" {
		t.Errorf("ID = %q, want %q", a.ID, "abc123")
	}
	if a.Topic != TopicTechnology {
		t.Errorf("Topic = %q, want %q", a.Topic, TopicTechnology)
	}
	want := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	if !a.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", a.PublishedAt, want)
	}
	if a.ReadTime == "" {
		t.Error("ReadTime is empty")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	a, err := Normalize(Raw{Title: "Untitled Topic", URL: "https://example.com/x"})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if a.Summary != "" {
		t.Errorf("Summary = %q, want empty (pending backfill)", a.Summary)
	}
	if a.Topic != TopicUncategorized {
		t.Errorf("Topic = %q, want %q", a.Topic, TopicUncategorized)
	}
	if a.ID == "" {
		t.Error("ID not derived from URL")
	}
	if a.ID != DeriveID("https://example.com/x") {
		t.Errorf("ID = %q, want URL-derived id", a.ID)
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
	}{
		{"missing title", Raw{ID: "1", URL: "https://example.com"}},
		{"missing id and url", Raw{Title: "Headline"}},
		{"whitespace title", Raw{ID: "1", Title: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			if !errors.Is(err, ErrInvalidArticle) {
				t.Errorf("Normalize() error = %v, want ErrInvalidArticle", err)
			}
		})
	}
}

func TestDeriveID_Stable(t *testing.T) {
	a := DeriveID("https://example.com/story")
	b := DeriveID("https://example.com/story")
	if a != b {
		t.Errorf("DeriveID not stable: %q != %q", a, b)
	}
	if a == DeriveID("https://example.com/other") {
		t.Error("DeriveID collides for distinct URLs")
	}
}

func TestReadTime(t *testing.T) {
	tests := []struct {
		length int
		want   string
	}{
		{0, "1 min read"},
		{500, "1 min read"},
		{2700, "2 min read"},
		{13500, "10 min read"},
	}

	for _, tt := range tests {
		if got := ReadTime(tt.length); got != tt.want {
			t.Errorf("ReadTime(%d) = %q, want %q", tt.length, got, tt.want)
		}
	}
}
