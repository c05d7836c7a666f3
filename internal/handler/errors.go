package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/slashrage/jalapeno-business/internal/apperrors"
)

// standard response envelope
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{Success: false, Message: message})
}

func WriteSuccess(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

// WriteServiceError maps the error kind to an HTTP status,
// internal details are not exposed
func WriteServiceError(w http.ResponseWriter, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		WriteError(w, err.Error(), http.StatusBadRequest)
	case apperrors.KindNotFound:
		WriteError(w, err.Error(), http.StatusNotFound)
	case apperrors.KindConflict:
		WriteError(w, err.Error(), http.StatusConflict)
	case apperrors.KindImageProcessing:
		WriteError(w, "не удалось обработать изображение", http.StatusUnprocessableEntity)
	case apperrors.KindStorageUnavailable:
		WriteError(w, "хранилище временно недоступно", http.StatusServiceUnavailable)
	default:
		WriteError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
