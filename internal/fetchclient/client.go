// Пакет fetchclient — HTTP-клиент для скачивания JSON-снапшота каталога
// с внешнего источника. Поддерживает TLS с кастомным CA (PM_DATASET_CA_CERT_PATH),
// статический bearer-токен и условные запросы через ETag/If-None-Match.
package fetchclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Client — HTTP-клиент источника датасета.
type Client struct {
	httpClient *http.Client
	authToken  string
	logger     *slog.Logger
}

// New создаёт клиент источника датасета.
// caCertPath — путь к CA-сертификату для TLS (пустая строка — стандартный пул).
// timeout — таймаут HTTP-запросов (из конфигурации PM_DATASET_TIMEOUT).
// authToken — статический bearer-токен (пустая строка — без авторизации).
func New(caCertPath string, timeout time.Duration, authToken string, logger *slog.Logger) (*Client, error) {
	transport := &http.Transport{
		MaxIdleConnsPerHost: 2,
	}

	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата источника: %w", err)
		}
		transport.TLSClientConfig = tlsConfig
		logger.Info("CA-сертификат источника датасета добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	return &Client{
		httpClient: httpClient,
		authToken:  authToken,
		logger:     logger.With(slog.String("component", "fetch_client")),
	}, nil
}

// Fetch выполняет GET-запрос снапшота каталога.
// Возвращает *http.Response — вызывающий код ОБЯЗАН закрыть resp.Body.
//
// etag — значение ETag предыдущего ответа; непустое значение отправляется
// в If-None-Match, источник может ответить 304 Not Modified.
func (c *Client) Fetch(ctx context.Context, rawURL, etag string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("создание запроса Fetch: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.httpClient.Do(req) //nolint:gosec // G704: URL из конфигурации
	if err != nil {
		return nil, fmt.Errorf("запрос датасета %s: %w", rawURL, err)
	}

	// Не закрываем resp.Body — вызывающий код отвечает за это
	return resp, nil
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA-сертификатом.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}
