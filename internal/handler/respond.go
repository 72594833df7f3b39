package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/neurotracker/neurotracker-go/internal/assessment"
	"github.com/neurotracker/neurotracker-go/internal/navigation"
	"github.com/neurotracker/neurotracker-go/internal/service"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20 // 1MB

var errBodyTooLarge = errors.New("request body too large")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// readBody reads at most maxBodyBytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errBodyTooLarge
		}
		return nil, err
	}
	return data, nil
}

// decode reads a JSON body into v and writes the error response itself when
// it fails.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse(errBodyTooLarge.Error()))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

// statusFor maps domain errors onto HTTP status codes. Anything unknown is an
// internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrToolUnavailable),
		errors.Is(err, navigation.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAccountExists),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, navigation.ErrInvalidTransition):
		return http.StatusConflict
	case service.IsValidation(err),
		errors.Is(err, assessment.ErrAnswerOutOfRange),
		errors.Is(err, assessment.ErrSurveyIncomplete),
		errors.Is(err, navigation.ErrUnknownEvent):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Internal errors are logged and
// never shown to the client.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		writeJSON(w, status, errorResponse("internal server error"))
		return
	}
	writeJSON(w, status, errorResponse(err.Error()))
}
