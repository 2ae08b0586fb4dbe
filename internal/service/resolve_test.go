package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/domain/model"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/repository"
)

// TestResolveService_Resolve проверяет резолвинг UID и кэширование результата.
func TestResolveService_Resolve(t *testing.T) {
	callCount := 0
	repo := &mockMovieRepo{
		getByUIDFn: func(_ context.Context, uid string) (*model.MovieRecord, error) {
			callCount++
			return &model.MovieRecord{UID: uid, PostID: 42, ChannelID: 7}, nil
		},
	}

	cache := NewCacheService(100, 5*time.Minute)
	svc := NewResolveService(repo, cache, slog.Default())

	// Первый вызов — cache miss, идёт в репозиторий
	rec, err := svc.Resolve(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("Resolve ошибка: %v", err)
	}
	if rec.PostID != 42 || rec.ChannelID != 7 {
		t.Errorf("PostID=%d ChannelID=%d, ожидалось 42/7", rec.PostID, rec.ChannelID)
	}
	if callCount != 1 {
		t.Errorf("repo.GetByUID вызван %d раз, ожидался 1", callCount)
	}

	// Второй вызов — cache hit, репозиторий не вызывается
	rec, err = svc.Resolve(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("Resolve ошибка (cache hit): %v", err)
	}
	if rec.UID != "uid-1" {
		t.Errorf("UID = %q, ожидался uid-1", rec.UID)
	}
	if callCount != 1 {
		t.Errorf("repo.GetByUID вызван %d раз, ожидался 1 (cache hit)", callCount)
	}
}

// TestResolveService_Resolve_NotFound проверяет ErrNotFound;
// отрицательный результат не кэшируется.
func TestResolveService_Resolve_NotFound(t *testing.T) {
	callCount := 0
	repo := &mockMovieRepo{
		getByUIDFn: func(_ context.Context, _ string) (*model.MovieRecord, error) {
			callCount++
			return nil, repository.ErrNotFound
		},
	}

	cache := NewCacheService(100, 5*time.Minute)
	svc := NewResolveService(repo, cache, slog.Default())

	for i := 0; i < 2; i++ {
		_, err := svc.Resolve(context.Background(), "unknown")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("ошибка = %v, ожидалась ErrNotFound", err)
		}
	}
	if callCount != 2 {
		t.Errorf("repo.GetByUID вызван %d раз, ожидалось 2 (not found не кэшируется)", callCount)
	}
}

// TestResolveService_Resolve_DataUnavailable проверяет маппинг ошибки
// незагруженного каталога.
func TestResolveService_Resolve_DataUnavailable(t *testing.T) {
	repo := &mockMovieRepo{
		getByUIDFn: func(_ context.Context, _ string) (*model.MovieRecord, error) {
			return nil, repository.ErrDataUnavailable
		},
	}

	cache := NewCacheService(100, 5*time.Minute)
	svc := NewResolveService(repo, cache, slog.Default())

	_, err := svc.Resolve(context.Background(), "uid-1")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("ошибка = %v, ожидалась ErrDataUnavailable", err)
	}
}

// TestResolveService_Resolve_PurgeInvalidates проверяет, что очистка кэша
// (публикация нового поколения) приводит к повторному запросу в репозиторий.
func TestResolveService_Resolve_PurgeInvalidates(t *testing.T) {
	callCount := 0
	repo := &mockMovieRepo{
		getByUIDFn: func(_ context.Context, uid string) (*model.MovieRecord, error) {
			callCount++
			return &model.MovieRecord{UID: uid}, nil
		},
	}

	cache := NewCacheService(100, 5*time.Minute)
	svc := NewResolveService(repo, cache, slog.Default())

	if _, err := svc.Resolve(context.Background(), "uid-1"); err != nil {
		t.Fatalf("Resolve ошибка: %v", err)
	}

	cache.Purge()

	if _, err := svc.Resolve(context.Background(), "uid-1"); err != nil {
		t.Fatalf("Resolve ошибка после Purge: %v", err)
	}
	if callCount != 2 {
		t.Errorf("repo.GetByUID вызван %d раз, ожидалось 2 (кэш очищен)", callCount)
	}
}
