package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/neurotracker/neurotracker-go/internal/crypto"
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

var (
	errNoCredentials = errors.New("missing authorization header")
	errNotBearer     = errors.New("invalid authorization format")
)

// SessionAuth admits requests that present a session token minted by
// POST /sessions. The token holds nothing but the id of a server-side
// navigation session; who the user is, and which screen they are on, lives
// in that session. Handlers read the id with SessionIDFromContext and
// resolve it themselves, so an expired or swept session surfaces there as
// not found rather than here.
func SessionAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, err.Error())
				return
			}

			claims, err := crypto.ParseSessionToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), claims.SessionID)))
		})
	}
}

// bearerToken returns the token of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errNoCredentials
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errNotBearer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errNotBearer
	}
	return token, nil
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext reports the session id SessionAuth accepted.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
