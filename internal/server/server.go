package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"battlecards/internal/battlecard"
	"battlecards/internal/curation"
	"battlecards/internal/digest"
	"battlecards/internal/filter"
	"battlecards/internal/logger"
	"battlecards/internal/metrics"
	"battlecards/internal/middleware"
	"battlecards/internal/models"
	"battlecards/internal/severity"
	"battlecards/internal/snapshot"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxDigestLimit = 100

// Pinger проверяет доступность хранилища для /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server хранит зависимости HTTP-обработчиков.
type Server struct {
	snapshot    *snapshot.Holder
	cards       *curation.Service
	db          Pinger
	composer    digest.Composer
	digestLimit int
	metrics     *metrics.Metrics
}

// Option настраивает Server.
type Option func(*Server)

// WithDB включает проверку базы в /health.
func WithDB(db Pinger) Option {
	return func(s *Server) { s.db = db }
}

// WithComposer задаёт сборщик дайджеста (в тестах с фиксированными часами).
func WithComposer(c digest.Composer) Option {
	return func(s *Server) { s.composer = c }
}

// WithDigestLimit задаёт лимит дайджеста по умолчанию.
func WithDigestLimit(limit int) Option {
	return func(s *Server) { s.digestLimit = limit }
}

// WithMetrics включает метрики обработчиков и middleware.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// NewServer создаёт новый экземпляр Server.
func NewServer(holder *snapshot.Holder, cards *curation.Service, opts ...Option) *Server {
	s := &Server{
		snapshot:    holder,
		cards:       cards,
		composer:    digest.Composer{},
		digestLimit: digest.DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes собирает маршруты и middleware.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/insights", s.GetInsights)
	mux.HandleFunc("GET /api/insights/{id}/card", s.GetCard)
	mux.HandleFunc("GET /api/competitors", s.GetCompetitors)
	mux.HandleFunc("GET /api/cards", s.ListCards)
	mux.HandleFunc("POST /api/cards/{id}", s.CurateCard)
	mux.HandleFunc("DELETE /api/cards/{id}", s.DeleteCard)
	mux.HandleFunc("GET /api/digest", s.GetDigest)
	mux.HandleFunc("GET /health", s.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.RequestIDMiddleware(mux)
	return middleware.LoggingMiddleware(s.metrics)(handler)
}

// InsightView: запись вместе с вычисленной важностью.
type InsightView struct {
	models.Insight
	Severity models.Severity `json:"severity"`
}

func criteriaFrom(r *http.Request) filter.Criteria {
	q := r.URL.Query()
	return filter.Criteria{
		Query:      q.Get("q"),
		Competitor: q.Get("competitor"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}
}

// GetInsights возвращает отфильтрованные записи (?q=&competitor=&from=&to=).
// Некорректные даты в from/to игнорируются.
func (s *Server) GetInsights(w http.ResponseWriter, r *http.Request) {
	items := filter.Filter(s.snapshot.Load(), criteriaFrom(r))

	views := make([]InsightView, 0, len(items))
	for _, in := range items {
		views = append(views, InsightView{Insight: in, Severity: severity.Classify(in.Tags)})
	}
	writeJSON(w, http.StatusOK, views)
}

// GetCompetitors возвращает список конкурентов из текущего снимка.
func (s *Server) GetCompetitors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, filter.Competitors(s.snapshot.Load()))
}

// GetCard строит карточку по записи без сохранения.
func (s *Server) GetCard(w http.ResponseWriter, r *http.Request) {
	in, ok := s.snapshot.Find(r.PathValue("id"))
	if !ok {
		http.Error(w, "insight not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, battlecard.Generate(in))
}

// ListCards возвращает отобранные карточки.
func (s *Server) ListCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cards.List())
}

// CurateCard строит карточку по записи {id} и сохраняет её, заменяя прежнюю.
func (s *Server) CurateCard(w http.ResponseWriter, r *http.Request) {
	in, ok := s.snapshot.Find(r.PathValue("id"))
	if !ok {
		http.Error(w, "insight not found", http.StatusNotFound)
		return
	}

	card, err := s.cards.Curate(r.Context(), in)
	if err != nil {
		logger.Log.WithField("id", in.ID).Errorf("Failed to save card: %v", err)
		http.Error(w, "failed to save card", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

// DeleteCard удаляет карточку {id}.
func (s *Server) DeleteCard(w http.ResponseWriter, r *http.Request) {
	err := s.cards.Remove(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, curation.ErrNotFound):
		http.Error(w, "card not found", http.StatusNotFound)
	case err != nil:
		logger.Log.Errorf("Failed to remove card: %v", err)
		http.Error(w, "failed to remove card", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetDigest возвращает текстовый дайджест по отфильтрованным записям (?limit= и параметры фильтра).
func (s *Server) GetDigest(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = s.digestLimit
	}
	if limit > maxDigestLimit {
		limit = maxDigestLimit
	}

	items := filter.Filter(s.snapshot.Load(), criteriaFrom(r))
	text := s.composer.Compose(items, limit)
	if s.metrics != nil {
		s.metrics.DigestsComposed.Inc()
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

// HealthCheck отвечает 200 OK, если база доступна (или не настроена), иначе 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			http.Error(w, "DB unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("Failed to encode response: %v", err)
	}
}
