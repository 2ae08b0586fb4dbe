// main.go — точка входа Movie API.
// Сборка зависимостей: config, logger, движок хранения каталога
// (memory с загрузчиком датасета или postgres), сервисный слой,
// HTTP-сервер с middleware.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/api/handlers"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/api/middleware"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/config"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/database"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/fetchclient"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/repository"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/search"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/server"
	"github.com/abhijeetpatil2122/paradox-movie-api/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// 2. Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Movie API запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("engine", cfg.StorageEngine),
		slog.String("search_mode", cfg.SearchMode),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Кэш резолвинга UID. Общий экземпляр: загрузчик каталога
	// очищает его при публикации нового поколения.
	cache := service.NewCacheService(cfg.CacheSize, cfg.CacheTTL)

	// 4. Движок хранения каталога
	var repo repository.MovieRepository
	var checker handlers.ReadinessChecker

	switch cfg.StorageEngine {
	case config.EnginePostgres:
		if err := database.Migrate(cfg, logger); err != nil {
			log.Fatalf("Ошибка миграций: %v", err)
		}
		pool, err := database.Connect(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("Ошибка подключения к PostgreSQL: %v", err)
		}
		defer pool.Close()

		repo = repository.NewPostgresRepository(pool)
		checker = database.NewReadinessChecker(pool)

	default: // memory
		memRepo := repository.NewMemoryRepository()
		repo = memRepo

		var fetchClient *fetchclient.Client
		if cfg.DatasetURL != "" {
			fetchClient, err = fetchclient.New(cfg.DatasetCACertPath, cfg.DatasetTimeout, cfg.DatasetAuthToken, logger)
			if err != nil {
				log.Fatalf("Ошибка создания клиента датасета: %v", err)
			}
		}

		loader := service.NewLoaderService(
			memRepo, cache, fetchClient,
			cfg.DatasetURL, cfg.DatasetPath, cfg.DatasetCachePath,
			logger,
		)
		checker = loader

		// Первичная загрузка каталога. Без периодического обновления
		// ошибка фатальна — сервису нечего отдавать. С обновлением
		// продолжаем: readiness будет fail до первой успешной загрузки.
		if err := loader.Load(ctx); err != nil {
			if cfg.DatasetRefreshInterval <= 0 {
				log.Fatalf("Ошибка загрузки каталога: %v", err)
			}
			logger.Error("Первичная загрузка каталога не удалась, ожидание обновления",
				slog.String("error", err.Error()),
			)
		}

		if cfg.DatasetRefreshInterval > 0 {
			go loader.Run(ctx, cfg.DatasetRefreshInterval)
		}
	}

	// 5. Сервисный слой
	scorer := search.NewScorer(search.Mode(cfg.SearchMode))
	searchSvc := service.NewSearchService(repo, scorer, logger)
	resolveSvc := service.NewResolveService(repo, cache, logger)
	statsSvc := service.NewStatsService(repo, logger)

	// 6. HTTP-обработчики
	healthHandler := handlers.NewHealthHandler(checker)
	apiHandler := handlers.NewAPIHandler(searchSvc, resolveSvc, statsSvc, healthHandler, logger)

	// 7. HTTP-сервер с middleware (метрики до логирования)
	srv := server.New(cfg, logger, apiHandler,
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	)

	// 8. Запуск сервера (блокирующий вызов с graceful shutdown)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		log.Fatalf("Сервер завершился с ошибкой: %v", err)
	}

	logger.Info("Movie API остановлен")
}
