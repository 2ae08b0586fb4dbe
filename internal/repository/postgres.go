// postgres.go — SQL-движок каталога поверх pgx.
// Таблица movies наполняется внешним importer'ом; сервис — read-only
// потребитель. Префильтр кандидатов: haystack LIKE по токенам запроса,
// подсказке года и boost-литералам (superset всех записей, способных
// набрать положительный счёт).
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/domain/model"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/search"
)

// movieColumns — список столбцов таблицы movies для SELECT-запросов.
// DRY: одно место для всех SELECT'ов.
const movieColumns = `uid, post_id, channel_id, title, file_name, duration, size, mime, type, haystack`

// pgRepo — реализация MovieRepository через pgx.
type pgRepo struct {
	db DBTX
}

// NewPostgresRepository создаёт репозиторий каталога поверх PostgreSQL.
func NewPostgresRepository(db DBTX) MovieRepository {
	return &pgRepo{db: db}
}

// GetByUID возвращает запись по UID или ErrNotFound.
// UID — непрозрачный токен: сравнение точное и case-sensitive.
func (r *pgRepo) GetByUID(ctx context.Context, uid string) (*model.MovieRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE uid = $1`, movieColumns)

	rec, err := scanMovie(r.db.QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}
	return rec, nil
}

// Candidates возвращает записи, haystack которых содержит хотя бы один
// токен запроса, подсказку года или boost-литерал. Итоговый отсев и
// ранжирование выполняет поисковое ядро.
func (r *pgRepo) Candidates(ctx context.Context, q *search.Query) ([]*model.MovieRecord, error) {
	where, args := buildCandidateWhere(q, 1)

	query := fmt.Sprintf(`SELECT %s FROM movies %s`, movieColumns, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки кандидатов: %w", err)
	}
	defer rows.Close()

	var result []*model.MovieRecord
	for rows.Next() {
		rec, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации кандидатов: %w", err)
	}

	return result, nil
}

// Count возвращает общее количество записей каталога.
func (r *pgRepo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта записей: %w", err)
	}
	return total, nil
}

// CountByType возвращает количество записей по типам.
func (r *pgRepo) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT type, COUNT(*) FROM movies GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта по типам: %w", err)
	}
	defer rows.Close()

	byType := make(map[string]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("ошибка сканирования типа: %w", err)
		}
		byType[t] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации типов: %w", err)
	}
	return byType, nil
}

// rowScanner — общий интерфейс pgx.Row и pgx.Rows для scanMovie.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMovie сканирует одну строку таблицы movies в доменную модель.
func scanMovie(row rowScanner) (*model.MovieRecord, error) {
	rec := &model.MovieRecord{}
	err := row.Scan(
		&rec.UID, &rec.PostID, &rec.ChannelID, &rec.Title, &rec.FileName,
		&rec.Duration, &rec.Size, &rec.Mime, &rec.Type, &rec.Haystack,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// buildCandidateWhere строит WHERE-условие префильтра кандидатов.
// startArg — номер первого $-параметра (для корректной нумерации).
// Паттерны: токены запроса, подсказка года и boost-литералы — запись
// без единого совпадения не может набрать счёт > 0 и в выборку не нужна.
func buildCandidateWhere(q *search.Query, startArg int) (whereClause string, args []any) {
	seen := make(map[string]bool)
	var patterns []string

	add := func(sub string) {
		if sub == "" || seen[sub] {
			return
		}
		seen[sub] = true
		patterns = append(patterns, sub)
	}

	for _, tok := range q.Tokens {
		add(tok)
	}
	add(q.Year)
	for _, lit := range search.BoostLiterals() {
		add(lit)
	}

	conditions := make([]string, 0, len(patterns))
	argNum := startArg
	for _, sub := range patterns {
		conditions = append(conditions, fmt.Sprintf("haystack LIKE $%d", argNum))
		args = append(args, "%"+sub+"%")
		argNum++
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " OR "), args
}
