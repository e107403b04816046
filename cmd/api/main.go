//	@title			Gitbin API
//	@version		1.0
//	@description	Upload service that commits files to a GitHub repository branch and serves them through a CDN.
//
//	@host		localhost:8080
//	@BasePath	/api/v1

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/gitbin/service/internal/cdn"
	"github.com/gitbin/service/internal/config"
	"github.com/gitbin/service/internal/githost"
	"github.com/gitbin/service/internal/metrics"
	appMiddleware "github.com/gitbin/service/internal/middleware"
	"github.com/gitbin/service/internal/response"
	"github.com/gitbin/service/internal/upload"

	_ "github.com/gitbin/service/docs/swagger"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	host, err := githost.NewGitHub(githost.Options{
		Token:       cfg.GitHubToken,
		Owner:       cfg.GitHubOwner,
		Repo:        cfg.GitHubRepo,
		AuthorName:  cfg.CommitAuthorName,
		AuthorEmail: cfg.CommitAuthorEmail,
		APIBaseURL:  cfg.GitHubAPIURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("github client init failed")
	}

	// Wire dependencies: git host → service → handler
	resolver := cdn.NewResolver(cfg.CDNBaseURL, cfg.GitHubOwner, cfg.GitHubRepo)
	m := metrics.New(prometheus.DefaultRegisterer)
	uploadSvc := upload.NewService(host, resolver, m, upload.Options{
		BaseBranch:   cfg.BaseBranch,
		BranchPrefix: cfg.BranchPrefix,
	})
	uploadHandler := upload.NewHandler(uploadSvc, cfg.MaxUploadBytes, cfg.AllowedFileTypes, m)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(appMiddleware.Identity)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", appMiddleware.IdentityHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w)
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/uploads", uploadHandler.Upload)
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// The handler makes up to four upstream calls per upload; keep the
		// write timeout above the git host client's own 30s timeout.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-quit
	log.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}

// setupLogger applies the configured level and, outside production, a
// human-readable console writer instead of raw JSON.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
