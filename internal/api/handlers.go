package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"newsrank/internal/article"
	"newsrank/internal/recommend"
	"newsrank/internal/source"
)

// newsResponse is the envelope for article-list endpoints.
type newsResponse struct {
	Articles []article.Article `json:"articles"`
	Provider string            `json:"provider,omitempty"`
}

// recommendationsResponse is the envelope for the recommendations
// endpoint.
type recommendationsResponse struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"articles": s.articles.Len(),
	})
}

// handleNews serves GET /api/news. It fetches fresh records through the
// provider chain, ingests them, and returns the normalized articles.
// Responses are cached per topic and search term.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	search := r.URL.Query().Get("search")
	limit, err := maxResultsParam(r, source.DefaultFetchLimit)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cacheKey := "news:" + topic + ":" + search + ":" + strconv.Itoa(limit)
	if s.serveCached(w, cacheKey) {
		return
	}

	q := source.Query{Search: search, Limit: limit}
	if topic != "" {
		q.Topic = article.ParseTopic(topic)
	}
	raws, err := s.provider.Fetch(r.Context(), q)
	if err != nil {
		s.log.Error().Err(err).Msg("all provider tiers failed")
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: "no provider available"})
		return
	}

	report := s.adapter.IngestBatch(r.Context(), raws)
	s.log.Info().
		Int("fetched", len(raws)).
		Int("ingested", report.Ingested).
		Int("skipped", len(report.Failures)).
		Msg("news fetched")

	articles := make([]article.Article, 0, len(raws))
	for _, raw := range raws {
		id := raw.ID
		if id == "" {
			id = article.DeriveID(raw.URL)
		}
		if a, ok := s.articles.Get(id); ok {
			articles = append(articles, a)
		}
	}

	s.respondCached(w, cacheKey, newsResponse{Articles: articles, Provider: s.provider.Name()})
}

// handleTrending serves GET /api/news/trending from the local stores.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	limit, err := maxResultsParam(r, recommend.DefaultMaxResults)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cacheKey := "trending:" + strconv.Itoa(limit)
	if s.serveCached(w, cacheKey) {
		return
	}

	recs, err := s.engine.Trending(limit)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.respondCached(w, cacheKey, recommendationsResponse{Recommendations: recs})
}

// handleRecommendations serves GET /api/recommendations. Either
// article_id or interests (comma-separated) selects the pool; with
// neither the response is trending.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	limit, err := maxResultsParam(r, recommend.DefaultMaxResults)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	req := recommend.Request{
		AnchorID:   r.URL.Query().Get("article_id"),
		MaxResults: limit,
		Diversify:  r.URL.Query().Get("diverse") == "true",
	}
	if raw := r.URL.Query().Get("interests"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				req.Interests = append(req.Interests, part)
			}
		}
	}

	recs, err := s.engine.Recommend(req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, recommend.ErrInvalidMaxResults) {
			status = http.StatusBadRequest
		}
		respondJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, recommendationsResponse{Recommendations: recs})
}

type summarizeRequest struct {
	ArticleID string `json:"articleId"`
	URL       string `json:"url"`
	Text      string `json:"text"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// handleSummarize serves POST /api/summarize. The text to summarize
// comes from the request body, or is extracted from the given URL. When
// an article id is supplied the summary is backfilled into the store.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	text := req.Text
	if text == "" && req.URL != "" && s.extractor != nil {
		extracted, err := s.extractor.Extract(r.Context(), req.URL)
		if err != nil {
			s.log.Warn().Str("url", req.URL).Err(err).Msg("extraction failed")
			respondJSON(w, http.StatusBadGateway, errorResponse{Error: "could not extract article text"})
			return
		}
		text = extracted
	}
	if text == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "nothing to summarize"})
		return
	}

	out, err := s.summarizer.Summarize(r.Context(), text)
	if err != nil {
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: "summarization failed"})
		return
	}

	if req.ArticleID != "" {
		s.adapter.BackfillSummary(req.ArticleID, out)
	}
	respondJSON(w, http.StatusOK, summarizeResponse{Summary: out})
}

// maxResultsParam parses the max_results query parameter. Absent means
// fallback; negative values are rejected here so the handler can map
// them to 400 before touching the engine.
func maxResultsParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("max_results")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("max_results must be an integer")
	}
	if n < 0 {
		return 0, errors.New("max_results must not be negative")
	}
	return n, nil
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// serveCached writes the cached response for key if present.
func (s *Server) serveCached(w http.ResponseWriter, key string) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(key)
	if err != nil {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "hit")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
	return true
}

// respondCached writes body as JSON and stores it under key.
func (s *Server) respondCached(w http.ResponseWriter, key string, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "encoding response"})
		return
	}
	if s.cache != nil {
		if err := s.cache.Set(key, data, s.cacheTTL); err != nil {
			s.log.Warn().Str("key", key).Err(err).Msg("cache write failed")
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
