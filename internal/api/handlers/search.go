// search.go — обработчик GET /api/v1/search.
// Валидация параметров, вызов service, проекция результатов
// в публичную форму (внутренний счёт релевантности не раскрывается).
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/abhijeetpatil2122/paradox-movie-api/internal/api/errors"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/search"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/service"
)

// searchResponse — ответ поиска с пагинацией.
type searchResponse struct {
	Query        string         `json:"query"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	TotalResults int            `json:"total_results"`
	TotalPages   int            `json:"total_pages"`
	Results      []searchResult `json:"results"`
}

// searchResult — публичная форма одной записи результата.
// Внутренние поля (score, haystack, координаты хранения) не раскрываются.
type searchResult struct {
	UID      string   `json:"uid"`
	Title    *string  `json:"title"`
	Duration *float64 `json:"duration,omitempty"`
	Size     *int64   `json:"size,omitempty"`
	Type     string   `json:"type"`
}

// handleSearch — реализация GET /api/v1/search?q=&page=&page_size=.
func (h *APIHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	page, pageSize, err := paginationParams(r)
	if err != nil {
		apierrors.ValidationError(w, "Параметры page и page_size должны быть целыми числами")
		return
	}

	result, err := h.searchService.Search(r.Context(), q, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrInvalidQuery):
			apierrors.ValidationError(w, "Параметр q обязателен и должен содержать хотя бы один значимый токен")
		case errors.Is(err, service.ErrDataUnavailable):
			apierrors.ServiceUnavailable(w, "Каталог ещё не загружен")
		default:
			h.logger.Error("Ошибка поиска",
				slog.String("query", q),
				slog.String("error", err.Error()),
			)
			apierrors.InternalError(w, "Внутренняя ошибка при поиске")
		}
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:        result.Query,
		Page:         result.Page,
		PageSize:     result.PageSize,
		TotalResults: result.TotalResults,
		TotalPages:   result.TotalPages,
		Results:      projectResults(result.Items),
	})
}

// projectResults конвертирует кандидатов в публичную форму результата.
func projectResults(items []search.ScoredCandidate) []searchResult {
	results := make([]searchResult, 0, len(items))
	for _, item := range items {
		results = append(results, projectResult(item))
	}
	return results
}

// projectResult проецирует одного кандидата: отбрасывает счёт,
// title замещается именем файла при отсутствии названия.
func projectResult(item search.ScoredCandidate) searchResult {
	rec := item.Record

	title := rec.Title
	if title == nil || *title == "" {
		title = rec.FileName
	}

	return searchResult{
		UID:      rec.UID,
		Title:    title,
		Duration: rec.Duration,
		Size:     rec.Size,
		Type:     rec.Type,
	}
}
