// loader.go — загрузка каталога в in-memory движок.
// Полный pipeline: скачивание JSON-снапшота с источника (или чтение
// локального файла) → парсинг → атомарная публикация нового поколения.
// Новый снапшот и индекс UID собираются целиком в стороне и публикуются
// одной операцией — запросы в полёте не наблюдают смешанных поколений.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/domain/model"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/fetchclient"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/repository"
)

// Prometheus-метрики загрузки датасета.
var (
	datasetLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pm_dataset_loads_total",
		Help: "Общее количество загрузок датасета (по результату).",
	}, []string{"result"})

	datasetLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pm_dataset_load_duration_seconds",
		Help:    "Длительность загрузки и публикации датасета.",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	datasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pm_dataset_records",
		Help: "Количество записей в опубликованном поколении каталога.",
	})
)

// LoaderService — загрузчик каталога для движка memory.
type LoaderService struct {
	repo        *repository.MemoryRepository
	cache       *CacheService
	fetchClient *fetchclient.Client
	datasetURL  string
	datasetPath string
	cachePath   string
	logger      *slog.Logger

	// Сериализация загрузок и состояние условных запросов
	mu   sync.Mutex
	etag string
}

// NewLoaderService создаёт загрузчик каталога.
// fetchClient может быть nil — тогда используется только локальный файл.
func NewLoaderService(
	repo *repository.MemoryRepository,
	cache *CacheService,
	fetchClient *fetchclient.Client,
	datasetURL, datasetPath, cachePath string,
	logger *slog.Logger,
) *LoaderService {
	return &LoaderService{
		repo:        repo,
		cache:       cache,
		fetchClient: fetchClient,
		datasetURL:  datasetURL,
		datasetPath: datasetPath,
		cachePath:   cachePath,
		logger:      logger.With(slog.String("component", "loader_service")),
	}
}

// Load загружает каталог и атомарно публикует новое поколение.
//
// Порядок источников:
//  1. PM_DATASET_URL (если задан) — скачивание через fetchclient;
//     ответ 304 Not Modified оставляет текущее поколение.
//  2. При ошибке скачивания — локальный кэш снапшота, затем PM_DATASET_PATH.
//  3. Без URL — только PM_DATASET_PATH.
func (l *LoaderService) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()

	var data []byte
	var err error

	if l.fetchClient != nil && l.datasetURL != "" {
		data, err = l.fetchRemote(ctx)
		if err != nil {
			// Источник недоступен — пробуем локальные копии
			l.logger.Warn("Скачивание датасета не удалось, переход на локальную копию",
				slog.String("url", l.datasetURL),
				slog.String("error", err.Error()),
			)
			data, err = l.readLocal()
		}
	} else {
		data, err = l.readLocal()
	}

	if err != nil {
		datasetLoadsTotal.WithLabelValues("error").Inc()
		return err
	}
	if data == nil {
		// 304 Not Modified — текущее поколение актуально
		datasetLoadsTotal.WithLabelValues("not_modified").Inc()
		return nil
	}

	count, err := l.publish(data)
	if err != nil {
		datasetLoadsTotal.WithLabelValues("error").Inc()
		return err
	}

	duration := time.Since(start)
	datasetLoadsTotal.WithLabelValues("success").Inc()
	datasetLoadDuration.Observe(duration.Seconds())
	datasetRecords.Set(float64(count))

	l.logger.Info("Каталог опубликован",
		slog.Int("records", count),
		slog.Duration("duration", duration),
	)

	return nil
}

// Run запускает периодическое обновление каталога.
// Блокируется до отмены контекста. interval > 0.
func (l *LoaderService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.logger.Info("Периодическое обновление каталога запущено",
		slog.Duration("interval", interval),
	)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Периодическое обновление каталога остановлено")
			return
		case <-ticker.C:
			if err := l.Load(ctx); err != nil {
				l.logger.Error("Ошибка обновления каталога",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// CheckReady — readiness probe каталога.
// Реализует интерфейс handlers.ReadinessChecker.
func (l *LoaderService) CheckReady() (status, message string) {
	if !l.repo.Loaded() {
		return "fail", "каталог ещё не загружен"
	}
	count, err := l.repo.Count(context.Background())
	if err != nil {
		return "fail", err.Error()
	}
	return "ok", fmt.Sprintf("каталог загружен, записей: %d", count)
}

// fetchRemote скачивает снапшот с источника.
// Возвращает (nil, nil) при 304 Not Modified.
func (l *LoaderService) fetchRemote(ctx context.Context) ([]byte, error) {
	resp, err := l.fetchClient.Fetch(ctx, l.datasetURL, l.etag)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// продолжаем ниже
	case http.StatusNotModified:
		l.logger.Debug("Датасет не изменился (304)", slog.String("etag", l.etag))
		return nil, nil
	default:
		return nil, fmt.Errorf("источник датасета вернул статус %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("чтение тела датасета: %w", err)
	}

	l.etag = resp.Header.Get("ETag")

	// Кэшируем скачанный снапшот для офлайн-перезапусков
	if l.cachePath != "" {
		if err := os.WriteFile(l.cachePath, data, 0o644); err != nil {
			l.logger.Warn("Не удалось записать кэш датасета",
				slog.String("path", l.cachePath),
				slog.String("error", err.Error()),
			)
		}
	}

	return data, nil
}

// readLocal читает снапшот из локального кэша или PM_DATASET_PATH.
func (l *LoaderService) readLocal() ([]byte, error) {
	paths := []string{}
	if l.cachePath != "" {
		paths = append(paths, l.cachePath)
	}
	if l.datasetPath != "" {
		paths = append(paths, l.datasetPath)
	}

	var lastErr error
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err == nil {
			l.logger.Debug("Датасет прочитан из локального файла", slog.String("path", p))
			return data, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("не задан ни один локальный источник датасета")
	}
	return nil, fmt.Errorf("чтение локального датасета: %w", lastErr)
}

// publish парсит JSON-снапшот и атомарно публикует новое поколение.
// После публикации кэш резолвинга очищается — записи прошлого поколения
// не должны переживать замену каталога.
func (l *LoaderService) publish(data []byte) (int, error) {
	var records []*model.MovieRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("парсинг датасета: %w", err)
	}

	if err := l.repo.Replace(records); err != nil {
		return 0, fmt.Errorf("публикация каталога: %w", err)
	}

	if l.cache != nil {
		l.cache.Purge()
	}

	return len(records), nil
}
