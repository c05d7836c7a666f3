package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/slashrage/jalapeno-business/internal/config"
	handlers "github.com/slashrage/jalapeno-business/internal/handler"
	"github.com/slashrage/jalapeno-business/internal/logger"
	"github.com/slashrage/jalapeno-business/internal/service"
)

type Middleware func(http.Handler) http.Handler

// AuthMiddleware checks the JWT and puts the user data into the context
func AuthMiddleware(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handlers.WriteError(w, "требуется авторизация", http.StatusUnauthorized)
				return
			}

			// expected format "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				handlers.WriteError(w, "неверный формат токена", http.StatusUnauthorized)
				return
			}

			user, err := authService.GetUserFromToken(parts[1])
			if err != nil {
				handlers.WriteError(w, "недействительный токен", http.StatusUnauthorized)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, "userID", user.UserID.Hex())
			ctx = context.WithValue(ctx, "email", user.Email)
			ctx = context.WithValue(ctx, "role", user.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORSMiddleware(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("запрос обработан",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
