package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mart/ranking-admin/internal/domain"
	"github.com/mart/ranking-admin/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps sentinel errors onto HTTP statuses. Every mutation
// failure ends up here so nothing is silently swallowed.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrRankingNotFound), errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrMissingFields), errors.Is(err, domain.ErrPositionOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotAPermutation):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrDisplayNameExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("ERROR [%s]: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
