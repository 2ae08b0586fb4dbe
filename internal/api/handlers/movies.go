// movies.go — обработчик GET /api/v1/movies/{uid}.
// Резолвинг UID в координаты хранения (post_id, channel_id).
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/abhijeetpatil2122/paradox-movie-api/internal/api/errors"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/service"
)

// resolveResponse — ответ резолвинга UID.
type resolveResponse struct {
	UID       string  `json:"uid"`
	PostID    int64   `json:"post_id"`
	ChannelID int64   `json:"channel_id"`
	Title     *string `json:"title"`
}

// handleGetMovie — реализация GET /api/v1/movies/{uid}.
// UID — непрозрачный токен: не нормализуется, сравнение case-sensitive.
func (h *APIHandler) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if strings.TrimSpace(uid) == "" {
		apierrors.ValidationError(w, "UID обязателен")
		return
	}

	record, err := h.resolveService.Resolve(r.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "Запись с указанным UID не найдена")
		case errors.Is(err, service.ErrDataUnavailable):
			apierrors.ServiceUnavailable(w, "Каталог ещё не загружен")
		default:
			h.logger.Error("Ошибка резолвинга UID",
				slog.String("uid", uid),
				slog.String("error", err.Error()),
			)
			apierrors.InternalError(w, "Внутренняя ошибка при резолвинге UID")
		}
		return
	}

	writeJSON(w, http.StatusOK, resolveResponse{
		UID:       record.UID,
		PostID:    record.PostID,
		ChannelID: record.ChannelID,
		Title:     record.Title,
	})
}
