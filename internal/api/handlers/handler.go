// handler.go — основной обработчик API Movie API.
// Регистрирует маршруты на chi-роутере и делегирует запросы в сервисный слой.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/service"
)

// Границы пагинации поиска.
const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 20
)

// APIHandler — основной обработчик API Movie API.
type APIHandler struct {
	searchService  *service.SearchService
	resolveService *service.ResolveService
	statsService   *service.StatsService
	health         *HealthHandler
	logger         *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	searchService *service.SearchService,
	resolveService *service.ResolveService,
	statsService *service.StatsService,
	health *HealthHandler,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		searchService:  searchService,
		resolveService: resolveService,
		statsService:   statsService,
		health:         health,
		logger:         logger.With(slog.String("component", "api_handler")),
	}
}

// Routes регистрирует все маршруты API на роутере.
func (h *APIHandler) Routes(r chi.Router) {
	r.Get("/", h.handleRoot)
	r.Get("/health/live", h.health.HealthLive)
	r.Get("/health/ready", h.health.HealthReady)
	r.Get("/metrics", h.health.GetMetrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", h.handleSearch)
		r.Get("/movies/{uid}", h.handleGetMovie)
		r.Get("/stats", h.handleStats)
	})
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// paginationParams разбирает параметры пагинации из query string.
// page: по умолчанию 1, значения < 1 молча трактуются как 1.
// page_size: по умолчанию 10, ограничен диапазоном [1, 20].
// Нечисловые значения — ошибка валидации.
func paginationParams(r *http.Request) (page, pageSize int, err error) {
	page = defaultPage
	pageSize = defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		if page < 1 {
			page = 1
		}
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		if pageSize < 1 {
			pageSize = 1
		}
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}

	return page, pageSize, nil
}

// rootResponse — ответ GET / (баннер сервиса).
type rootResponse struct {
	Success      bool   `json:"success"`
	API          string `json:"api"`
	Status       string `json:"status"`
	Version      string `json:"version"`
	TotalRecords int    `json:"total_records"`
}

// handleRoot — баннер сервиса с количеством записей каталога.
// Пока каталог не загружен, отвечает status=loading с нулевым счётчиком.
func (h *APIHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	resp := rootResponse{
		Success: true,
		API:     "Paradox Movie API",
		Status:  "online",
		Version: versionString(),
	}

	stats, err := h.statsService.Stats(r.Context())
	if err != nil {
		resp.Status = "loading"
	} else {
		resp.TotalRecords = stats.TotalRecords
	}

	writeJSON(w, http.StatusOK, resp)
}
