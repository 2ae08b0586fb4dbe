// memory.go — in-memory движок каталога: неизменяемый снапшот записей
// с индексом UID, публикуемый атомарной заменой указателя.
// Запросы никогда не наблюдают индекс одного поколения с записями другого.
package repository

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/domain/model"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/search"
)

// snapshot — одно поколение каталога. После публикации не изменяется.
type snapshot struct {
	records []*model.MovieRecord
	byUID   map[string]*model.MovieRecord
	byType  map[string]int
}

// MemoryRepository — реализация MovieRepository поверх снапшота в памяти.
// До первой публикации все операции возвращают ErrDataUnavailable.
type MemoryRepository struct {
	snap atomic.Pointer[snapshot]
}

// NewMemoryRepository создаёт пустой (ещё не загруженный) репозиторий.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Replace строит новое поколение каталога и атомарно публикует его.
// Haystack каждой записи вычисляется здесь один раз — он не зависит
// от запроса. Дубликат UID — ошибка: индекс обязан быть биективным.
func (r *MemoryRepository) Replace(records []*model.MovieRecord) error {
	snap := &snapshot{
		records: records,
		byUID:   make(map[string]*model.MovieRecord, len(records)),
		byType:  make(map[string]int),
	}

	for _, rec := range records {
		if rec.UID == "" {
			return fmt.Errorf("запись без UID (post_id=%d)", rec.PostID)
		}
		if _, exists := snap.byUID[rec.UID]; exists {
			return fmt.Errorf("дубликат UID %q в каталоге", rec.UID)
		}
		rec.Haystack = search.BuildHaystack(rec.TitleOrEmpty(), rec.FileNameOrEmpty())
		snap.byUID[rec.UID] = rec
		snap.byType[rec.Type]++
	}

	r.snap.Store(snap)
	return nil
}

// Loaded возвращает true после первой успешной публикации снапшота.
func (r *MemoryRepository) Loaded() bool {
	return r.snap.Load() != nil
}

// GetByUID возвращает запись по UID или ErrNotFound.
func (r *MemoryRepository) GetByUID(_ context.Context, uid string) (*model.MovieRecord, error) {
	snap := r.snap.Load()
	if snap == nil {
		return nil, ErrDataUnavailable
	}
	rec, ok := snap.byUID[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Candidates возвращает полный снапшот: in-memory движок не префильтрует,
// отсев выполняет scorer (записи со счётом <= 0 исключаются).
func (r *MemoryRepository) Candidates(_ context.Context, _ *search.Query) ([]*model.MovieRecord, error) {
	snap := r.snap.Load()
	if snap == nil {
		return nil, ErrDataUnavailable
	}
	return snap.records, nil
}

// Count возвращает количество записей текущего поколения.
func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	snap := r.snap.Load()
	if snap == nil {
		return 0, ErrDataUnavailable
	}
	return len(snap.records), nil
}

// CountByType возвращает распределение записей по типам.
func (r *MemoryRepository) CountByType(_ context.Context) (map[string]int, error) {
	snap := r.snap.Load()
	if snap == nil {
		return nil, ErrDataUnavailable
	}
	// Копия: снапшот неизменяем, вызывающий код может делать с картой что угодно
	byType := make(map[string]int, len(snap.byType))
	for k, v := range snap.byType {
		byType[k] = v
	}
	return byType, nil
}
