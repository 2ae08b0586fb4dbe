package middleware

import "testing"

// TestNormalizePath проверяет нормализацию путей для лейблов метрик.
func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/health/live", "/health/live"},
		{"/health/ready", "/health/ready"},
		{"/metrics", "/metrics"},
		{"/api/v1/search", "/api/v1/search"},
		{"/api/v1/stats", "/api/v1/stats"},
		{"/api/v1/movies/abc123", "/api/v1/movies/{uid}"},
		{"/api/v1/movies/another-uid-456", "/api/v1/movies/{uid}"},
		{"/unknown/path", "/unknown/path"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, ожидалось %q", tt.path, got, tt.want)
		}
	}
}
