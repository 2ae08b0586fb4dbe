package fetchclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestClient_Fetch проверяет заголовки запроса и чтение тела ответа.
func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, ожидался application/json", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, ожидался Bearer test-token", got)
		}
		if got := r.Header.Get("If-None-Match"); got != "" {
			t.Errorf("If-None-Match = %q, ожидался пустой (первый запрос)", got)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := New("", 10*time.Second, "test-token", slog.Default())
	if err != nil {
		t.Fatalf("New ошибка: %v", err)
	}

	resp, err := client.Fetch(context.Background(), srv.URL, "")
	if err != nil {
		t.Fatalf("Fetch ошибка: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("статус = %d, ожидался 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `[]` {
		t.Errorf("тело = %q, ожидалось []", body)
	}
}

// TestClient_Fetch_ETag проверяет условный запрос с If-None-Match.
func TestClient_Fetch_ETag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := New("", 10*time.Second, "", slog.Default())
	if err != nil {
		t.Fatalf("New ошибка: %v", err)
	}

	resp, err := client.Fetch(context.Background(), srv.URL, `"v1"`)
	if err != nil {
		t.Fatalf("Fetch ошибка: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("статус = %d, ожидался 304", resp.StatusCode)
	}
}

// TestClient_Fetch_NoAuth проверяет, что без токена заголовок
// Authorization не отправляется.
func TestClient_Fetch_NoAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, ожидалось отсутствие заголовка", got)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := New("", 10*time.Second, "", slog.Default())
	if err != nil {
		t.Fatalf("New ошибка: %v", err)
	}

	resp, err := client.Fetch(context.Background(), srv.URL, "")
	if err != nil {
		t.Fatalf("Fetch ошибка: %v", err)
	}
	_ = resp.Body.Close()
}

// TestNew_BadCACert проверяет ошибку при несуществующем CA-сертификате.
func TestNew_BadCACert(t *testing.T) {
	if _, err := New("/nonexistent/ca.pem", 10*time.Second, "", slog.Default()); err == nil {
		t.Fatal("ожидалась ошибка чтения CA-сертификата")
	}
}
