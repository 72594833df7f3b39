package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/neurotracker/neurotracker-go/internal/config"
	"github.com/neurotracker/neurotracker-go/internal/handler"
	"github.com/neurotracker/neurotracker-go/internal/middleware"
	"github.com/neurotracker/neurotracker-go/internal/navigation"
	"go.uber.org/zap"
)

// NewRouter builds the HTTP API. Session creation and event dispatch share
// the per-IP limiter since they carry the credential checks.
func NewRouter(cfg *config.Config, svc *Services, sessions *navigation.SessionManager, limiter *middleware.Limiter, log *zap.Logger) http.Handler {
	sessionHandler := handler.NewSessionHandler(sessions, cfg.Session.Secret, cfg.Session.Expiry, log)
	toolsHandler := handler.NewToolsHandler(sessions, svc.Attention, svc.Meeting, svc.Calendar, svc.Compatibility, svc.Profile, log)
	themeHandler := handler.NewThemeHandler(svc.Theme, log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecureHeaders(!cfg.IsProduction()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/theme", themeHandler.HandleGet)
		r.Post("/theme/cycle", themeHandler.HandleCycle)
		r.Get("/bands", handler.HandleBands)

		r.With(limiter.Middleware).Post("/sessions", sessionHandler.HandleCreate)

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(cfg.Session.Secret))

			r.Delete("/sessions", sessionHandler.HandleDelete)
			r.Get("/view", sessionHandler.HandleView)
			r.With(limiter.Middleware).Post("/events", sessionHandler.HandleEvent)

			r.Get("/profile", toolsHandler.HandleProfile)

			r.Get("/tools/attention", toolsHandler.HandleGetAttention)
			r.Put("/tools/attention", toolsHandler.HandlePutAttention)
			r.Post("/tools/attention/reset", toolsHandler.HandleResetAttention)
			r.Post("/tools/attention/classify", toolsHandler.HandleClassify)

			r.Get("/tools/meeting", toolsHandler.HandleGetMeeting)
			r.Put("/tools/meeting", toolsHandler.HandlePutMeeting)
			r.Post("/tools/meeting/suggest", toolsHandler.HandleSuggestMeeting)

			r.Get("/tools/calendar", toolsHandler.HandleCalendar)

			r.Get("/tools/ai-models", toolsHandler.HandleGetModels)
			r.Put("/tools/ai-models", toolsHandler.HandlePutModels)
			r.Get("/tools/ai-models/chart", toolsHandler.HandleModelsChart)
		})
	})

	return r
}
