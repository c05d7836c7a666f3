package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/slashrage/jalapeno-business/cmd/app"
	"github.com/slashrage/jalapeno-business/internal/config"
	handlers "github.com/slashrage/jalapeno-business/internal/handler"
	"github.com/slashrage/jalapeno-business/internal/logger"
	"github.com/slashrage/jalapeno-business/internal/middleware"
)

func main() {
	// setting up config and logger
	cfg := config.LoadConfig()

	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.JWTSecretKey == "" {
		logger.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	// default admin when the database is empty
	if err := services.Auth.SeedAdmin(context.Background()); err != nil {
		logger.Error("Не удалось создать администратора", "error", err)
	}

	handler := handlers.NewHandlers(services, cfg)

	router := mux.NewRouter()
	router.HandleFunc("/api/health", handlers.HealthHandler).Methods(http.MethodGet)

	// auth routes
	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)

	// public post routes
	router.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/slug/{slug}", handler.GetPostBySlug).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/categories", handler.GetCategories).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/tags", handler.GetTags).Methods(http.MethodGet)

	// protected routes
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(mux.MiddlewareFunc(middleware.AuthMiddleware(services.Auth)))
	protected.HandleFunc("/auth/me", handler.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/auth/update", handler.UpdateUser).Methods(http.MethodPut)
	protected.HandleFunc("/auth/updatepassword", handler.UpdatePassword).Methods(http.MethodPut)
	protected.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	protected.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	protected.HandleFunc("/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	protected.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)

	// serving uploaded files
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	handlerChain := middleware.Chain(
		router,
		rateLimiter.Limit,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware(cfg),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.Info("Сервер запущен", "addr", addr, "db", cfg.Mongo.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		logger.Fatal("Ошибка запуска сервера", "error", err)
	}
}
