package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/crypto"
	"github.com/neurotracker/neurotracker-go/internal/middleware"
	"github.com/neurotracker/neurotracker-go/internal/navigation"
	"go.uber.org/zap"
)

// SessionHandler exposes the navigation controller of each client session.
type SessionHandler struct {
	sessions *navigation.SessionManager
	secret   string
	expiry   time.Duration
	log      *zap.Logger
}

func NewSessionHandler(sessions *navigation.SessionManager, secret string, expiry time.Duration, log *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, secret: secret, expiry: expiry, log: log}
}

type sessionResponse struct {
	Token string          `json:"token"`
	View  navigation.View `json:"view"`
}

type eventErrorResponse struct {
	Error string          `json:"error"`
	View  navigation.View `json:"view"`
}

// controller resolves the session named by the request's token.
func controller(sessions *navigation.SessionManager, r *http.Request) (*navigation.Controller, error) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		return nil, navigation.ErrSessionNotFound
	}
	return sessions.Get(id)
}

// HandleCreate handles POST /api/v1/sessions requests.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ctrl := h.sessions.Create()

	token, err := crypto.IssueSessionToken(id, h.secret, h.expiry)
	if err != nil {
		h.sessions.Delete(id)
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, View: ctrl.View()})
}

// HandleDelete handles DELETE /api/v1/sessions requests.
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}
	h.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleView handles GET /api/v1/view requests.
func (h *SessionHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctrl, err := controller(h.sessions, r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.View())
}

// HandleEvent handles POST /api/v1/events requests. Failed events still
// return the current view so clients can re-render.
func (h *SessionHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	ctrl, err := controller(h.sessions, r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	ev, err := navigation.DecodeEvent(body)
	if err != nil {
		if errors.Is(err, navigation.ErrUnknownEvent) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	view, err := ctrl.Dispatch(r.Context(), ev)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			writeError(w, h.log, err)
			return
		}
		writeJSON(w, status, eventErrorResponse{Error: err.Error(), View: view})
		return
	}

	writeJSON(w, http.StatusOK, view)
}
