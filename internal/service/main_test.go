package service

import (
	"testing"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/crypto"
	"github.com/neurotracker/neurotracker-go/internal/repository"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testHasher = crypto.NewHasher(crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})

type testDeps struct {
	kv          *repository.MemoryStore
	users       *repository.CredentialStore
	completions *repository.CompletionStore
	prefs       *repository.PreferenceStore
}

func newTestDeps() testDeps {
	kv := repository.NewMemoryStore()
	return testDeps{
		kv:          kv,
		users:       repository.NewCredentialStore(kv),
		completions: repository.NewCompletionStore(kv),
		prefs:       repository.NewPreferenceStore(kv),
	}
}

// newTestAuthService records every simulated wait instead of sleeping.
func newTestAuthService(d testDeps) (*AuthService, *[]time.Duration) {
	var waits []time.Duration
	svc := NewAuthService(d.users, d.completions, time.Second, zap.NewNop())
	svc.hasher = testHasher
	svc.sleep = func(d time.Duration) { waits = append(waits, d) }
	return svc, &waits
}
