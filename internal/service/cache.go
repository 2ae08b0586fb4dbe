// Пакет service — бизнес-логика Movie API.
// CacheService — LRU-кэш записей каталога с TTL для резолвинга UID.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhijeetpatil2122/paradox-movie-api/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pm_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш резолвинга UID.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pm_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша резолвинга UID.",
	})
)

// CacheService — LRU-кэш записей каталога с автоматическим TTL.
// Каждый экземпляр сервиса имеет собственный in-memory кэш.
type CacheService struct {
	cache *expirable.LRU[string, *model.MovieRecord]
}

// NewCacheService создаёт LRU-кэш с указанным максимальным размером и TTL.
func NewCacheService(maxSize int, ttl time.Duration) *CacheService {
	cache := expirable.NewLRU[string, *model.MovieRecord](maxSize, nil, ttl)
	return &CacheService{cache: cache}
}

// Get возвращает MovieRecord из кэша по uid.
// Возвращает (запись, true) при hit или (nil, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *CacheService) Get(uid string) (*model.MovieRecord, bool) {
	val, ok := c.cache.Get(uid)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет запись в кэше.
func (c *CacheService) Set(uid string, record *model.MovieRecord) {
	c.cache.Add(uid, record)
}

// Purge полностью очищает кэш (вызывается после публикации нового
// поколения каталога, чтобы не отдавать записи прошлого поколения).
func (c *CacheService) Purge() {
	c.cache.Purge()
}
