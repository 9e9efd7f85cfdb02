package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// NewSecure returns the security-header middleware. The surface is a
// JSON API consumed by the platform's backends and front-ends, so the
// CSP forbids everything and framing is denied outright; browsers only
// ever see error bodies and the metrics page.
func NewSecure(isDevelopment bool) func(next http.Handler) http.Handler {
	s := secure.New(secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
	})
	return s.Handler
}
