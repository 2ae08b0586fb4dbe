// Пакет errors — единый JSON-формат ошибок API.
// Все ошибочные ответы имеют вид {"success":false,"code":...,"message":...}.
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse — тело ошибочного ответа API.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError записывает ошибочный JSON-ответ с указанным статусом и кодом.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// ValidationError — 400 Bad Request (некорректные параметры запроса).
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// NotFound — 404 Not Found.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "NOT_FOUND", message)
}

// ServiceUnavailable — 503 Service Unavailable (каталог ещё не загружен).
func ServiceUnavailable(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", message)
}

// InternalError — 500 Internal Server Error.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}
