package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders sets the standard browser hardening headers. Development
// mode skips the production-only checks.
func SecureHeaders(development bool) func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		IsDevelopment:      development,
	}).Handler
}
