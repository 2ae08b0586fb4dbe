// search.go — сервис поиска по каталогу.
// Полный pipeline: разбор запроса → кандидаты из repository → scoring →
// ранжирование и пагинация. Координирует поисковое ядро и Prometheus-метрики.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/repository"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/search"
)

// Ошибки сервисного слоя.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrDataUnavailable — каталог ещё не загружен.
	ErrDataUnavailable = errors.New("каталог ещё не загружен")
)

// Prometheus-метрики поиска.
var (
	searchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pm_search_total",
		Help: "Общее количество поисковых запросов.",
	})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pm_search_duration_seconds",
		Help:    "Длительность поисковых запросов.",
		Buckets: prometheus.DefBuckets,
	})
)

// SearchResult — результат поиска с пагинацией.
type SearchResult struct {
	// Query — исходная строка запроса
	Query string
	// Page — эффективный номер страницы (после clamping)
	Page int
	// PageSize — размер страницы
	PageSize int
	// TotalResults — общее количество совпадений
	TotalResults int
	// TotalPages — количество страниц (0 при пустом результате)
	TotalPages int
	// Items — записи запрошенной страницы в порядке убывания релевантности
	Items []search.ScoredCandidate
}

// SearchService — сервис поиска по каталогу фильмов.
type SearchService struct {
	repo   repository.MovieRepository
	scorer *search.Scorer
	logger *slog.Logger
}

// NewSearchService создаёт сервис поиска.
func NewSearchService(
	repo repository.MovieRepository,
	scorer *search.Scorer,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		repo:   repo,
		scorer: scorer,
		logger: logger.With(slog.String("component", "search_service")),
	}
}

// Search выполняет поиск по каталогу.
// Возвращает search.ErrInvalidQuery при вырожденном запросе и
// ErrDataUnavailable, пока каталог не загружен.
func (s *SearchService) Search(ctx context.Context, raw string, page, pageSize int) (*SearchResult, error) {
	start := time.Now()
	searchTotal.Inc()

	q, err := search.Analyze(raw)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.Candidates(ctx, q)
	if err != nil {
		if errors.Is(err, repository.ErrDataUnavailable) {
			return nil, ErrDataUnavailable
		}
		return nil, fmt.Errorf("выборка кандидатов: %w", err)
	}

	// Scoring: записи со счётом <= 0 исключаются как несовпавшие
	scored := make([]search.ScoredCandidate, 0, len(candidates))
	for _, rec := range candidates {
		if score := s.scorer.Score(q, rec.Haystack); score > 0 {
			scored = append(scored, search.ScoredCandidate{Record: rec, Score: score})
		}
	}

	items, total, totalPages, effectivePage := search.RankAndPage(scored, page, pageSize)

	duration := time.Since(start)
	searchDuration.Observe(duration.Seconds())

	s.logger.Debug("Поиск выполнен",
		slog.String("query", raw),
		slog.Int("candidates", len(candidates)),
		slog.Int("total", total),
		slog.Int("returned", len(items)),
		slog.Duration("duration", duration),
	)

	return &SearchResult{
		Query:        raw,
		Page:         effectivePage,
		PageSize:     pageSize,
		TotalResults: total,
		TotalPages:   totalPages,
		Items:        items,
	}, nil
}
