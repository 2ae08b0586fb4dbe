// rank.go — сортировка кандидатов по релевантности и вычисление страницы.
package search

import (
	"sort"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/domain/model"
)

// ScoredCandidate — запись каталога с вычисленной релевантностью.
// Живёт только в рамках одного поискового запроса.
type ScoredCandidate struct {
	Record *model.MovieRecord
	Score  int
}

// RankAndPage сортирует кандидатов по убыванию счёта (стабильно: при
// равенстве сохраняется порядок перечисления источника) и вырезает
// запрошенную страницу.
//
// Возвращает: записи страницы, общее число результатов, число страниц
// и эффективный номер страницы. Номер вне диапазона молча ограничивается
// [1, totalPages]. Вырожденный случай: при нуле результатов totalPages = 0
// и пустая страница независимо от запрошенного номера.
func RankAndPage(candidates []ScoredCandidate, page, pageSize int) (pageItems []ScoredCandidate, total, totalPages, effectivePage int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total = len(candidates)
	if total == 0 {
		return nil, 0, 0, page
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	totalPages = (total + pageSize - 1) / pageSize

	effectivePage = page
	if effectivePage > totalPages {
		effectivePage = totalPages
	}

	start := (effectivePage - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	return candidates[start:end], total, totalPages, effectivePage
}
