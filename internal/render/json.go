package render

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/aaronzipp/banker-and-robber/internal/models"
)

// JSON writes v as a JSON response
func JSON(w http.ResponseWriter, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// Error writes a JSON error body
func Error(w http.ResponseWriter, log *zap.Logger, status int, message string) {
	JSON(w, log, status, models.ErrorResponse{Success: false, Error: message})
}
