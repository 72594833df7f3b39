package handler

import (
	"net/http"

	"github.com/neurotracker/neurotracker-go/internal/assessment"
	"github.com/neurotracker/neurotracker-go/internal/service"
	"go.uber.org/zap"
)

// ThemeHandler serves the device-wide theme and the static assessment
// content. Neither needs a session.
type ThemeHandler struct {
	theme *service.ThemeService
	log   *zap.Logger
}

func NewThemeHandler(theme *service.ThemeService, log *zap.Logger) *ThemeHandler {
	return &ThemeHandler{theme: theme, log: log}
}

// HandleGet handles GET /api/v1/theme requests.
func (h *ThemeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	theme, err := h.theme.Current(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

// HandleCycle handles POST /api/v1/theme/cycle requests.
func (h *ThemeHandler) HandleCycle(w http.ResponseWriter, r *http.Request) {
	theme, err := h.theme.Cycle(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

// HandleBands handles GET /api/v1/bands requests.
func HandleBands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, assessment.Bands())
}
