// Package app assembles the stores, services and session manager shared by
// the HTTP server and the terminal UI.
package app

import (
	"context"
	"fmt"

	"github.com/neurotracker/neurotracker-go/internal/config"
	"github.com/neurotracker/neurotracker-go/internal/navigation"
	"github.com/neurotracker/neurotracker-go/internal/repository"
	"github.com/neurotracker/neurotracker-go/internal/service"
	"go.uber.org/zap"
)

// Services holds one instance of every domain service over a single store.
type Services struct {
	Auth          *service.AuthService
	Onboarding    *service.OnboardingService
	Survey        *service.SurveyService
	Profile       *service.ProfileService
	Theme         *service.ThemeService
	Attention     *service.AttentionService
	Meeting       *service.MeetingService
	Calendar      *service.CalendarService
	Compatibility *service.CompatibilityService
}

// NewServices wires the services to store. calendarSeed fixes the calendar's
// generated priorities.
func NewServices(store repository.Store, cfg config.AuthConfig, calendarSeed uint64, log *zap.Logger) (*Services, error) {
	users := repository.NewCredentialStore(store)
	completions := repository.NewCompletionStore(store)
	prefs := repository.NewPreferenceStore(store)
	checker := service.NewReservedPrefixChecker(cfg.UsernameCheckLatency)

	var verifier service.Verifier
	switch cfg.Verifier {
	case "", "mock":
		verifier = service.NewMockVerifier(cfg.VerificationLatency, log)
	case "code":
		verifier = service.NewCodeVerifier(repository.NewCodeStore(store), service.NewLogMailer(log), cfg.CodeTTL)
	default:
		return nil, fmt.Errorf("unknown verifier %q", cfg.Verifier)
	}

	return &Services{
		Auth:          service.NewAuthService(users, completions, cfg.SimulatedLatency, log),
		Onboarding:    service.NewOnboardingService(verifier, checker, prefs, log),
		Survey:        service.NewSurveyService(completions, log),
		Profile:       service.NewProfileService(users, completions, prefs, checker, log),
		Theme:         service.NewThemeService(prefs),
		Attention:     service.NewAttentionService(prefs),
		Meeting:       service.NewMeetingService(prefs),
		Calendar:      service.NewCalendarService(calendarSeed),
		Compatibility: service.NewCompatibilityService(prefs),
	}, nil
}

// NewController starts a fresh navigation controller on the landing screen.
func (s *Services) NewController(log *zap.Logger) *navigation.Controller {
	return navigation.NewController(navigation.Deps{
		Auth:       s.Auth,
		Onboarding: s.Onboarding,
		Survey:     s.Survey,
		Profile:    s.Profile,
		Log:        log,
	})
}

// OpenStore returns the configured key-value backend. When the database
// cannot be reached it falls back to memory and logs a warning, so the app
// still starts. The returned close func is never nil.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (repository.Store, func() error, error) {
	noop := func() error { return nil }

	if cfg.Driver == "" || cfg.Driver == "memory" {
		log.Info("using in-memory store")
		return repository.NewMemoryStore(), noop, nil
	}

	db, err := repository.NewDB(cfg.Driver, cfg.DSN)
	if err != nil {
		log.Warn("database connection failed, using in-memory store", zap.String("driver", cfg.Driver), zap.Error(err))
		return repository.NewMemoryStore(), noop, nil
	}

	store, err := repository.NewSQLStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, noop, fmt.Errorf("preparing %s store: %w", cfg.Driver, err)
	}

	log.Info("database connected", zap.String("driver", cfg.Driver))
	return store, db.Close, nil
}
