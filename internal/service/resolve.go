// resolve.go — сервис резолвинга UID в координаты хранения.
// Сначала проверяет LRU-кэш, при промахе — запрос к repository,
// результат кэшируется.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/domain/model"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/repository"
)

// Prometheus-метрики резолвинга.
var (
	resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pm_resolve_total",
		Help: "Общее количество запросов резолвинга UID (по результату).",
	}, []string{"result"})
)

// ResolveService — сервис резолвинга UID.
type ResolveService struct {
	repo   repository.MovieRepository
	cache  *CacheService
	logger *slog.Logger
}

// NewResolveService создаёт сервис резолвинга.
func NewResolveService(
	repo repository.MovieRepository,
	cache *CacheService,
	logger *slog.Logger,
) *ResolveService {
	return &ResolveService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("component", "resolve_service")),
	}
}

// Resolve возвращает запись каталога по UID.
// UID — непрозрачный токен: не нормализуется, сравнение case-sensitive.
// Возвращает ErrNotFound для неизвестного UID и ErrDataUnavailable,
// пока каталог не загружен.
func (s *ResolveService) Resolve(ctx context.Context, uid string) (*model.MovieRecord, error) {
	// Проверяем кэш
	if record, ok := s.cache.Get(uid); ok {
		s.logger.Debug("Кэш hit для UID", slog.String("uid", uid))
		resolveTotal.WithLabelValues("hit").Inc()
		return record, nil
	}

	// Cache miss — запрос к репозиторию
	record, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			resolveTotal.WithLabelValues("not_found").Inc()
			return nil, ErrNotFound
		}
		if errors.Is(err, repository.ErrDataUnavailable) {
			resolveTotal.WithLabelValues("unavailable").Inc()
			return nil, ErrDataUnavailable
		}
		resolveTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("резолвинг UID: %w", err)
	}

	// Сохраняем в кэш
	s.cache.Set(uid, record)
	resolveTotal.WithLabelValues("miss").Inc()

	return record, nil
}
