package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell-server/internal/config"
	"inkwell-server/internal/handler"
	"inkwell-server/internal/middleware"
	"inkwell-server/internal/repository"
	"inkwell-server/internal/service"
	"inkwell-server/pkg/logger"
	"inkwell-server/pkg/response"
	"inkwell-server/pkg/token"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level, cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	couchURL := fmt.Sprintf("http://%s:%s@%s:%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
	)

	client, err := kivik.New("couch", couchURL)
	if err != nil {
		zlog.Fatal("Failed to connect to CouchDB", zap.Error(err))
	}

	exists, err := client.DBExists(context.Background(), cfg.Database.Name)
	if err != nil {
		zlog.Fatal("Failed to check database existence", zap.Error(err))
	}

	if !exists {
		if err := client.CreateDB(context.Background(), cfg.Database.Name); err != nil {
			zlog.Fatal("Failed to create database", zap.Error(err))
		}
		zlog.Info("Created database", zap.String("name", cfg.Database.Name))
	}

	userRepo := repository.NewUserRepository(client, cfg.Database.Name)
	noteRepo := repository.NewNoteRepository(client, cfg.Database.Name)
	versionRepo := repository.NewVersionRepository(client, cfg.Database.Name)
	folderRepo := repository.NewFolderRepository(client, cfg.Database.Name)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshTokenExpiration)
	noteService := service.NewNoteService(noteRepo, versionRepo)
	versionService := service.NewVersionService(noteRepo, versionRepo)
	shareService := service.NewShareService(noteRepo, token.NewGenerator())
	folderService := service.NewFolderService(folderRepo, noteRepo)

	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)
	versionHandler := handler.NewVersionHandler(versionService)
	shareHandler := handler.NewShareHandler(shareService)
	folderHandler := handler.NewFolderHandler(folderService)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware(zlog))
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST", "OPTIONS")

	// The anonymous read path: token only, no auth.
	api.HandleFunc("/shared/{token}", shareHandler.Resolve).Methods("GET", "OPTIONS")

	api.HandleFunc("/health", healthHandler).Methods("GET")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	protected.HandleFunc("/auth/me", authHandler.Me).Methods("GET", "OPTIONS")

	protected.HandleFunc("/notes", noteHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes", noteHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/notes/{id}/trash", noteHandler.Trash).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/notes/{id}/restore", noteHandler.Restore).Methods("PUT", "OPTIONS")

	protected.HandleFunc("/notes/{id}/versions", versionHandler.Save).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes/{id}/versions", versionHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}/versions/{versionId}", versionHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}/versions/{versionId}/restore", versionHandler.Restore).Methods("PUT", "OPTIONS")

	protected.HandleFunc("/notes/{id}/share", shareHandler.Toggle).Methods("PUT", "OPTIONS")

	protected.HandleFunc("/folders", folderHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/folders", folderHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/folders/{id}", folderHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/folders/{id}", folderHandler.Delete).Methods("DELETE", "OPTIONS")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("Starting Inkwell server",
			zap.String("addr", addr),
			zap.String("env", cfg.Server.Env),
			zap.String("db", fmt.Sprintf("%s:%s", cfg.Database.Host, cfg.Database.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
