package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neurotracker/neurotracker-go/internal/assessment"
	"github.com/neurotracker/neurotracker-go/internal/navigation"
	"github.com/neurotracker/neurotracker-go/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrToolUnavailable, http.StatusNotFound},
		{navigation.ErrSessionNotFound, http.StatusNotFound},
		{service.ErrAccountExists, http.StatusConflict},
		{service.ErrAlreadyCompleted, http.StatusConflict},
		{fmt.Errorf("%w: login on survey", navigation.ErrInvalidTransition), http.StatusConflict},
		{service.ErrPasswordMismatch, http.StatusBadRequest},
		{fmt.Errorf("%w: unknown camera", service.ErrInvalidSetting), http.StatusBadRequest},
		{assessment.ErrSurveyIncomplete, http.StatusBadRequest},
		{navigation.ErrUnknownEvent, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestWriteErrorHidesInternalErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rec := httptest.NewRecorder()

	writeError(rec, zap.New(core), errors.New("dial tcp 10.0.0.5:5432: refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.Len())

	rec = httptest.NewRecorder()
	writeError(rec, zap.New(core), service.ErrUsernameTaken)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrUsernameTaken.Error())
	assert.Equal(t, 1, logs.Len())
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		ok     bool
		status int
	}{
		{name: "valid", body: `{"camera":"camera2"}`, ok: true},
		{name: "malformed", body: `{"camera":`, status: http.StatusBadRequest},
		{name: "too large", body: `{"camera":"` + strings.Repeat("x", maxBodyBytes) + `"}`, status: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body))

			var v struct {
				Camera string `json:"camera"`
			}
			ok := decode(rec, req, &v)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, "camera2", v.Camera)
				return
			}
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
