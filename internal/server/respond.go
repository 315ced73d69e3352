package server

import (
	"encoding/json"
	"net/http"

	"github.com/maxaizer/gig-market/internal/domain/models"
	"github.com/maxaizer/gig-market/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// badRequestError marks a client input problem; its message is safe to
// return to the caller.
type badRequestError struct {
	message string
}

func (e badRequestError) Error() string {
	return e.message
}

func badRequest(message string) error {
	return badRequestError{message: message}
}

type apiHandler func(w http.ResponseWriter, r *http.Request) error

// handle funnels every handler error through one responder so the
// status mapping lives in a single place.
func handle(fn apiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			respondError(w, err)
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {

	var badReq badRequestError
	if errors.As(err, &badReq) {
		_ = respondJSON(w, http.StatusBadRequest, errorBody(badReq.message))
		return
	}

	switch {
	case errors.Is(err, models.ErrJobNotFound):
		_ = respondJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, models.ErrSelfAccept),
		errors.Is(err, models.ErrAlreadyAccepted),
		errors.Is(err, models.ErrNotAccepted),
		errors.Is(err, models.ErrDuplicateEmail):
		_ = respondJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		// detail stays in the log, the client gets a generic message
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("request failed: %v", err)
		_ = respondJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
	}
}

func errorBody(message string) map[string]any {
	return map[string]any{"success": false, "message": message}
}
