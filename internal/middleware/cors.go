package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows every origin. Preflights are answered here with 200, reflecting
// the requested method and headers; other OPTIONS requests reach next.
func CORS(next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:       []string{"*"},
		ExposedHeaders:       []string{RequestIDHeader},
		MaxAge:               1800,
		OptionsPassthrough:   false,
		OptionsSuccessStatus: http.StatusOK,
	}).Handler(next)
}
