package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestHealthLive проверяет liveness probe.
func TestHealthLive(t *testing.T) {
	h := NewHealthHandler(&stubChecker{status: "ok"})

	rec := httptest.NewRecorder()
	h.HealthLive(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}

	var resp healthLiveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("разбор ответа: %v", err)
	}
	if resp.Status != "ok" || resp.Service != "movie-api" {
		t.Errorf("status=%q service=%q, ожидалось ok/movie-api", resp.Status, resp.Service)
	}
}

// TestHealthReady проверяет readiness probe для всех статусов хранилища.
func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		checker    ReadinessChecker
		wantStatus string
		wantCode   int
	}{
		{"хранилище готово", &stubChecker{status: "ok", message: "каталог загружен"}, "ok", http.StatusOK},
		{"хранилище degraded", &stubChecker{status: "degraded"}, "degraded", http.StatusOK},
		{"хранилище недоступно", &stubChecker{status: "fail", message: "каталог ещё не загружен"}, "fail", http.StatusServiceUnavailable},
		{"checker не задан", nil, "fail", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checker)

			rec := httptest.NewRecorder()
			h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("статус = %d, ожидался %d", rec.Code, tt.wantCode)
			}

			var resp healthReadyResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("разбор ответа: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q, ожидался %q", resp.Status, tt.wantStatus)
			}
		})
	}
}

// TestGetMetrics проверяет отдачу Prometheus-метрик.
func TestGetMetrics(t *testing.T) {
	h := NewHealthHandler(&stubChecker{status: "ok"})

	rec := httptest.NewRecorder()
	h.GetMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("статус = %d, ожидался 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("пустое тело ответа /metrics")
	}
}
