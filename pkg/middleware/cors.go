package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS middleware
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID", "X-User-Role"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
