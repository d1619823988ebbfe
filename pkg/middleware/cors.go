package middleware

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// CORS lets the configured origins read the dashboard from a browser. Every
// dashboard route is read-only, so preflights for anything but GET and HEAD
// are answered without an Access-Control-Allow-Methods header. Rejected
// preflights are logged at debug level.
func CORS(allowedOrigins []string, logger zerolog.Logger) func(http.Handler) http.Handler {
	corsLogger := logger.With().Str("component", "cors").Logger()

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead},
		AllowedHeaders:   []string{"Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
		Logger:           &corsLogger,
	})

	return c.Handler
}
