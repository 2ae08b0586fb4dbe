// Пакет repository — источник кандидатов и индекс UID для Movie API.
// Два движка за одним интерфейсом: in-memory снапшот (по умолчанию)
// и PostgreSQL (таблица movies, owned by внешний importer).
// Scoring и ранжирование всегда выполняются в поисковом ядре —
// движок лишь сужает множество кандидатов.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/domain/model"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/search"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrDataUnavailable — каталог ещё не загружен.
	ErrDataUnavailable = errors.New("каталог ещё не загружен")
)

// MovieRepository — интерфейс доступа к каталогу фильмов.
// Все операции read-only; реализации безопасны для конкурентного чтения.
type MovieRepository interface {
	// GetByUID возвращает запись по UID (точное совпадение, case-sensitive).
	GetByUID(ctx context.Context, uid string) (*model.MovieRecord, error)
	// Candidates возвращает кандидатов для разобранного запроса.
	// In-memory движок отдаёт полный снапшот, SQL-движок — superset
	// записей, способных набрать положительный счёт.
	Candidates(ctx context.Context, q *search.Query) ([]*model.MovieRecord, error)
	// Count возвращает общее количество записей каталога.
	Count(ctx context.Context) (int, error)
	// CountByType возвращает количество записей по типам (video, document...).
	CountByType(ctx context.Context) (map[string]int, error)
}

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
