// stats.go — сервис статистики каталога: общее количество записей,
// распределение по типам, uptime процесса.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/repository"
)

// Stats — статистика каталога.
type Stats struct {
	// TotalRecords — общее количество записей
	TotalRecords int
	// ByType — количество записей по типам (video, document...)
	ByType map[string]int
	// Uptime — время работы процесса
	Uptime time.Duration
}

// StatsService — сервис статистики каталога.
type StatsService struct {
	repo    repository.MovieRepository
	started time.Time
	logger  *slog.Logger
}

// NewStatsService создаёт сервис статистики. Отсчёт uptime — с момента создания.
func NewStatsService(repo repository.MovieRepository, logger *slog.Logger) *StatsService {
	return &StatsService{
		repo:    repo,
		started: time.Now(),
		logger:  logger.With(slog.String("component", "stats_service")),
	}
}

// Stats возвращает текущую статистику каталога.
// Возвращает ErrDataUnavailable, пока каталог не загружен.
func (s *StatsService) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrDataUnavailable) {
			return nil, ErrDataUnavailable
		}
		return nil, fmt.Errorf("подсчёт записей: %w", err)
	}

	byType, err := s.repo.CountByType(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrDataUnavailable) {
			return nil, ErrDataUnavailable
		}
		return nil, fmt.Errorf("подсчёт по типам: %w", err)
	}

	return &Stats{
		TotalRecords: total,
		ByType:       byType,
		Uptime:       time.Since(s.started),
	}, nil
}
