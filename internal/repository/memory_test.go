package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/domain/model"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/search"
)

func strPtr(s string) *string { return &s }

// testRecords — небольшой каталог для тестов.
func testRecords() []*model.MovieRecord {
	return []*model.MovieRecord{
		{UID: "uid-1", PostID: 101, ChannelID: 7, Title: strPtr("Avengers: Endgame"), FileName: strPtr("Avengers.Endgame.2019.1080p.mkv"), Type: "video"},
		{UID: "uid-2", PostID: 102, ChannelID: 7, FileName: strPtr("The.Matrix.1999.720p.mkv"), Type: "video"},
		{UID: "uid-3", PostID: 103, ChannelID: 8, Title: strPtr("Dune Part Two"), Type: "document"},
	}
}

// TestMemoryRepository_Unloaded проверяет ErrDataUnavailable до первой публикации.
func TestMemoryRepository_Unloaded(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if repo.Loaded() {
		t.Error("Loaded() = true для пустого репозитория")
	}

	if _, err := repo.GetByUID(ctx, "uid-1"); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("GetByUID: ошибка = %v, ожидалась ErrDataUnavailable", err)
	}
	if _, err := repo.Candidates(ctx, &search.Query{Tokens: []string{"matrix"}}); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Candidates: ошибка = %v, ожидалась ErrDataUnavailable", err)
	}
	if _, err := repo.Count(ctx); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Count: ошибка = %v, ожидалась ErrDataUnavailable", err)
	}
	if _, err := repo.CountByType(ctx); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("CountByType: ошибка = %v, ожидалась ErrDataUnavailable", err)
	}
}

// TestMemoryRepository_Replace проверяет публикацию и вычисление haystack.
func TestMemoryRepository_Replace(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Replace(testRecords()); err != nil {
		t.Fatalf("Replace ошибка: %v", err)
	}

	if !repo.Loaded() {
		t.Error("Loaded() = false после публикации")
	}

	rec, err := repo.GetByUID(ctx, "uid-1")
	if err != nil {
		t.Fatalf("GetByUID ошибка: %v", err)
	}
	want := "avengers endgame avengers endgame 2019 1080p mkv"
	if rec.Haystack != want {
		t.Errorf("Haystack = %q, ожидалось %q", rec.Haystack, want)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count ошибка: %v", err)
	}
	if count != 3 {
		t.Errorf("Count = %d, ожидалось 3", count)
	}
}

// TestMemoryRepository_GetByUID_CaseSensitive проверяет, что UID —
// непрозрачный токен: сравнение точное, без нормализации.
func TestMemoryRepository_GetByUID_CaseSensitive(t *testing.T) {
	repo := NewMemoryRepository()
	if err := repo.Replace(testRecords()); err != nil {
		t.Fatalf("Replace ошибка: %v", err)
	}

	if _, err := repo.GetByUID(context.Background(), "UID-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByUID(UID-1): ошибка = %v, ожидалась ErrNotFound", err)
	}
}

// TestMemoryRepository_Replace_DuplicateUID проверяет отказ при дубликате UID.
func TestMemoryRepository_Replace_DuplicateUID(t *testing.T) {
	repo := NewMemoryRepository()

	err := repo.Replace([]*model.MovieRecord{
		{UID: "dup", Type: "video"},
		{UID: "dup", Type: "video"},
	})
	if err == nil {
		t.Fatal("ожидалась ошибка дубликата UID")
	}
}

// TestMemoryRepository_Replace_EmptyUID проверяет отказ при пустом UID.
func TestMemoryRepository_Replace_EmptyUID(t *testing.T) {
	repo := NewMemoryRepository()

	err := repo.Replace([]*model.MovieRecord{
		{UID: "", PostID: 55, Type: "video"},
	})
	if err == nil {
		t.Fatal("ожидалась ошибка пустого UID")
	}
}

// TestMemoryRepository_Replace_Swap проверяет полную замену поколения:
// записи прошлого снапшота недоступны после публикации нового.
func TestMemoryRepository_Replace_Swap(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Replace(testRecords()); err != nil {
		t.Fatalf("Replace ошибка: %v", err)
	}
	if err := repo.Replace([]*model.MovieRecord{
		{UID: "uid-9", PostID: 901, Type: "video"},
	}); err != nil {
		t.Fatalf("Replace (второе поколение) ошибка: %v", err)
	}

	if _, err := repo.GetByUID(ctx, "uid-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("запись прошлого поколения доступна, ожидалась ErrNotFound: %v", err)
	}
	if _, err := repo.GetByUID(ctx, "uid-9"); err != nil {
		t.Errorf("GetByUID(uid-9) ошибка: %v", err)
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Errorf("Count = %d, ожидался 1", count)
	}
}

// TestMemoryRepository_CountByType проверяет распределение по типам
// и независимость возвращаемой карты от снапшота.
func TestMemoryRepository_CountByType(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Replace(testRecords()); err != nil {
		t.Fatalf("Replace ошибка: %v", err)
	}

	byType, err := repo.CountByType(ctx)
	if err != nil {
		t.Fatalf("CountByType ошибка: %v", err)
	}
	if byType["video"] != 2 || byType["document"] != 1 {
		t.Errorf("byType = %v, ожидалось video:2 document:1", byType)
	}

	// Модификация копии не влияет на снапшот
	byType["video"] = 99
	again, _ := repo.CountByType(ctx)
	if again["video"] != 2 {
		t.Errorf("снапшот изменён через возвращённую карту: video = %d", again["video"])
	}
}

// TestMemoryRepository_Candidates проверяет, что движок возвращает полный
// снапшот — отсев выполняет scorer.
func TestMemoryRepository_Candidates(t *testing.T) {
	repo := NewMemoryRepository()

	if err := repo.Replace(testRecords()); err != nil {
		t.Fatalf("Replace ошибка: %v", err)
	}

	q := &search.Query{Tokens: []string{"matrix"}}
	candidates, err := repo.Candidates(context.Background(), q)
	if err != nil {
		t.Fatalf("Candidates ошибка: %v", err)
	}
	if len(candidates) != 3 {
		t.Errorf("len(candidates) = %d, ожидался полный снапшот (3)", len(candidates))
	}
}
