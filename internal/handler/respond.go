package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/khendev23/gap-cafe-type/internal/repositories"
	"github.com/khendev23/gap-cafe-type/internal/service"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

func writeJSON(w http.ResponseWriter, log *logger.Logger, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, log *logger.Logger, statusCode int, message string) {
	writeJSON(w, log, statusCode, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func parseBody(r *http.Request, target interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// statusFor maps service and repository errors onto HTTP statuses. Underlying
// detail stays in the server log; clients get the generic message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repositories.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, repositories.ErrMenuItemNotFound):
		return http.StatusNotFound, "Menu item not found"
	case errors.Is(err, repositories.ErrOrderNumberConflict):
		return http.StatusConflict, "Order number conflict, please retry"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
