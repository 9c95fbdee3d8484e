package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// CORSMiddleware оборачивает go-chi/cors в gin.HandlerFunc.
// Preflight-запросы завершаются здесь, дальше по цепочке не идут.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	options := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders: []string{"X-Request-ID", "X-Total-Count"},
		MaxAge:         300,
	}

	// c "*" браузер не принимает credentials
	options.AllowCredentials = !contains(allowedOrigins, "*")

	handler := cors.New(options)

	return func(c *gin.Context) {
		passed := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})
		handler.Handler(next).ServeHTTP(c.Writer, c.Request)

		// preflight: go-chi/cors уже ответил, дальше цепочка не идет
		if !passed {
			c.Abort()
		}
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
