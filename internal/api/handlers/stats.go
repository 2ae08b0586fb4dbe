// stats.go — обработчик GET /api/v1/stats.
// Статистика каталога: количество записей, распределение по типам, uptime.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/abhijeetpatil2122/paradox-movie-api/internal/api/errors"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/service"
)

// statsResponse — ответ статистики каталога.
type statsResponse struct {
	TotalRecords  int            `json:"total_records"`
	ByType        map[string]int `json:"by_type"`
	UptimeSeconds int64          `json:"uptime_seconds"`
}

// handleStats — реализация GET /api/v1/stats.
func (h *APIHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Stats(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrDataUnavailable) {
			apierrors.ServiceUnavailable(w, "Каталог ещё не загружен")
			return
		}
		h.logger.Error("Ошибка получения статистики",
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка при получении статистики")
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalRecords:  stats.TotalRecords,
		ByType:        stats.ByType,
		UptimeSeconds: int64(stats.Uptime.Seconds()),
	})
}
