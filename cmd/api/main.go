package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/showcase/showcase-go/internal/assets"
	"github.com/showcase/showcase-go/internal/config"
	"github.com/showcase/showcase-go/internal/crypto"
	"github.com/showcase/showcase-go/internal/email"
	"github.com/showcase/showcase-go/internal/handler"
	"github.com/showcase/showcase-go/internal/middleware"
	"github.com/showcase/showcase-go/internal/repository"
	"github.com/showcase/showcase-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	port, testMode := parseArgs(os.Args[1:])

	cfg := config.Load()
	if port != "" {
		cfg.Port = port
	}

	dsn := cfg.DatabaseDSN
	if testMode {
		dsn = cfg.TestDatabaseDSN
	}

	db, err := repository.NewDB(dsn)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Join(cfg.StaticDir, "images"), 0o755); err != nil {
		slog.Error("could not create static directory", "error", err)
		os.Exit(1)
	}

	hasher := crypto.NewHasher(cfg.HashSecret)
	store := assets.NewStore(cfg.TmpDir, cfg.StaticDir, cfg.PublicBaseURL)
	notifier := email.NewNotifier(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailEnabled)

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	authService := service.NewAuthService(userRepo, hasher)
	userService := service.NewUserService(userRepo, hasher)
	eventService := service.NewEventService(eventRepo)
	appService := service.NewApplicationService(appRepo, eventRepo, userRepo, notifier, store)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)
	eventHandler := handler.NewEventHandler(eventService)
	appHandler := handler.NewApplicationHandler(appService)
	imageHandler := handler.NewImageHandler(store, cfg.UploadLimit)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Authenticate(userRepo))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/images", imageHandler.HandleUpload)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.HandleList)
		r.Post("/", eventHandler.HandleCreate)
		r.Get("/{id}", eventHandler.HandleGet)
		r.Put("/{id}", eventHandler.HandleUpdate)
		r.Delete("/{id}", eventHandler.HandleDelete)
	})

	r.Route("/applications", func(r chi.Router) {
		r.Get("/", appHandler.HandleList)
		r.Post("/", appHandler.HandleCreate)
		r.Get("/{id}", appHandler.HandleGet)
		r.Put("/{id}", appHandler.HandleUpdate)
		r.Delete("/{id}", appHandler.HandleDelete)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.HandleCreate)
		r.Get("/me", authHandler.HandleMe)
		r.Get("/{id}", userHandler.HandleGet)
		r.Put("/{id}", userHandler.HandleUpdate)
	})

	r.Handle("/static/*", http.StripPrefix("/static/",
		cacheControl(http.FileServer(http.Dir(cfg.StaticDir)))))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "test", testMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// parseArgs reads the listen port and test-mode switch from the command
// line. The port is the first non-flag argument; --test is honored anywhere
// on the line, before or after the port.
func parseArgs(args []string) (port string, testMode bool) {
	for _, arg := range args {
		switch {
		case arg == "--test" || arg == "-test":
			testMode = true
		case port == "" && !strings.HasPrefix(arg, "-"):
			port = arg
		}
	}
	return port, testMode
}

// cacheControl serves static assets with a one-day client cache.
func cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		next.ServeHTTP(w, r)
	})
}
