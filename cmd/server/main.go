package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/api"
	"github.com/tendant/simple-catalog/pkg/catalog/config"
	s3storage "github.com/tendant/simple-catalog/pkg/catalog/storage/s3"
)

type Config struct {
	Port        string `env:"CATALOG_PORT" env-default:"8080"`
	Environment string `env:"CATALOG_ENVIRONMENT" env-default:"development"`

	// "memory", or a postgres:// / postgresql:// connection string.
	DatabaseURL string `env:"CATALOG_DATABASE_URL" env-default:"memory"`

	StorageType string `env:"CATALOG_STORAGE_TYPE" env-default:"memory"`
	S3          S3Config

	FallbackDir   string `env:"CATALOG_FALLBACK_DIR" env-default:"uploads"`
	FallbackURL   string `env:"CATALOG_FALLBACK_URL" env-default:"/uploads"`
	UploadWorkers int    `env:"CATALOG_UPLOAD_WORKERS" env-default:"4"`
}

type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	Bucket          string `env:"AWS_S3_BUCKET" env-default:""`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	URLPrefix       string `env:"AWS_S3_URL_PREFIX" env-default:""`
}

func (c Config) serverConfig() (*config.ServerConfig, error) {
	return config.Load(func(sc *config.ServerConfig) error {
		sc.Port = c.Port
		sc.Environment = c.Environment
		sc.StorageType = c.StorageType
		sc.S3 = s3storage.Config{
			Region:          c.S3.Region,
			Bucket:          c.S3.Bucket,
			Endpoint:        c.S3.Endpoint,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			UsePathStyle:    c.S3.Endpoint != "",
			URLPrefix:       c.S3.URLPrefix,
		}
		sc.FallbackDir = c.FallbackDir
		sc.FallbackURL = c.FallbackURL
		sc.UploadWorkers = c.UploadWorkers

		if c.DatabaseURL != "" && c.DatabaseURL != "memory" {
			sc.DatabaseType = "postgres"
			sc.DatabaseURL = c.DatabaseURL
		}
		return nil
	})
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error("failed to read environment", "error", err)
		os.Exit(1)
	}
	serverConfig, err := cfg.serverConfig()
	if err != nil {
		log.Error("invalid server configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc, shutdown, err := serverConfig.BuildService(ctx, log)
	if err != nil {
		log.Error("failed to build catalog service", "error", err)
		os.Exit(1)
	}
	defer shutdown()

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: routes(svc, serverConfig, log),
	}

	go func() {
		log.Info("catalog server starting",
			"port", serverConfig.Port,
			"environment", serverConfig.Environment,
			"database", serverConfig.DatabaseType,
			"storage", serverConfig.StorageType)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	log.Info("server exiting")
}

func routes(svc catalog.Service, serverConfig *config.ServerConfig, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for development
	if serverConfig.Environment == "development" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusOK)
					return
				}
				next.ServeHTTP(w, r)
			})
		})
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status": "healthy", "environment": %q}`, serverConfig.Environment)
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/categories", api.NewCategoryHandler(svc, log).Routes())
		r.Mount("/products", api.NewProductHandler(svc, log).Routes())
	})

	// Serve locally stored fallback assets.
	prefix := "/" + strings.Trim(serverConfig.FallbackURL, "/")
	r.Handle(prefix+"/*", http.StripPrefix(prefix+"/",
		http.FileServer(http.Dir(serverConfig.FallbackDir))))

	return r
}
