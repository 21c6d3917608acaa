package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/tombers-dev/tombers-backend/apitoken"
	"github.com/tombers-dev/tombers-backend/cmd/backend/handlers"
	"github.com/tombers-dev/tombers-backend/database"
	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/match"
	"github.com/tombers-dev/tombers-backend/project"
	"github.com/tombers-dev/tombers-backend/rating"
	"github.com/tombers-dev/tombers-backend/session"
	"github.com/tombers-dev/tombers-backend/storage"
	"github.com/tombers-dev/tombers-backend/user"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogrusLogger(cfg.Log.Level)
	log.Info(ctx, "starting server", map[string]interface{}{
		"version": Version,
		"commit":  Commit,
		"date":    BuildDate,
	})

	db, err := database.Connect(databaseConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	log.Info(ctx, "database connected", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	// Stores and domain services
	userStore := user.NewMySQLStore(db, log)
	projectStore := project.NewMySQLStore(db, log)
	ratingStore := rating.NewMySQLStore(db, log)
	tokenStore := apitoken.NewMySQLStore(db, log)
	txManager := database.NewGormTxManager(db)

	engine := match.NewEngine(userStore, projectStore, txManager, log)
	ratingService := rating.NewService(ratingStore, userStore, projectStore, txManager, log)

	// Session manager
	sessionManager := session.NewManager(cfg.Session.Duration, log)
	sessionManager.StartCleanup(5 * time.Minute)
	defer sessionManager.StopCleanup()

	log.Info(ctx, "session manager initialized", map[string]interface{}{
		"duration": cfg.Session.Duration.String(),
	})

	// Blob storage for avatars and project images
	blobs, err := storage.New(storage.Config{
		Type:          cfg.Storage.Type,
		BaseDir:       cfg.Storage.BaseDir,
		Bucket:        cfg.Storage.S3Bucket,
		Region:        cfg.Storage.S3Region,
		PresignExpiry: cfg.Storage.S3PresignExpiry,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info(ctx, "storage initialized", map[string]interface{}{
		"type": cfg.Storage.Type,
	})

	// Setup router
	router := mux.NewRouter()

	// Health check endpoint (public)
	router.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	// Auth handlers (public)
	authHandler := handlers.NewAuthHandler(
		userStore,
		sessionManager,
		cfg.Session.CookieSecret,
		cfg.Session.CookieName,
		cfg.Session.Secure,
		log,
	)

	router.HandleFunc("/api/v1/auth/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/api/v1/auth/login", authHandler.Login).Methods("POST")
	router.HandleFunc("/api/v1/auth/logout", authHandler.Logout).Methods("POST")

	// Protected routes
	resolveEmail := func(ctx context.Context, userID uuid.UUID) (string, error) {
		u, err := userStore.GetByID(ctx, userID)
		if err != nil {
			return "", err
		}
		return u.Email, nil
	}
	authMiddleware := handlers.NewAuthMiddleware(
		sessionManager,
		tokenStore,
		resolveEmail,
		cfg.Session.CookieSecret,
		cfg.Session.CookieName,
		log,
	)

	userHandler := handlers.NewUserHandler(userStore, blobs, log)
	projectHandler := handlers.NewProjectHandler(engine, projectStore, userStore, blobs, log)
	ratingHandler := handlers.NewRatingHandler(ratingService, log)
	tokenHandler := handlers.NewAPITokenHandler(tokenStore, log)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(authMiddleware.Handler)
	apiRouter.Use(handlers.WriteScopeMiddleware)

	apiRouter.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	// Users
	apiRouter.HandleFunc("/users", userHandler.List).Methods("GET")
	apiRouter.HandleFunc("/users/profile", userHandler.Profile).Methods("GET")
	apiRouter.HandleFunc("/users/profile", userHandler.UpdateProfile).Methods("PUT")
	apiRouter.HandleFunc("/users/search", userHandler.Search).Methods("GET")
	apiRouter.HandleFunc("/users/available", userHandler.Available).Methods("GET")
	apiRouter.HandleFunc("/users/avatar", userHandler.UploadAvatar).Methods("POST")
	apiRouter.HandleFunc("/users/{id}", userHandler.GetByID).Methods("GET")
	apiRouter.HandleFunc("/users/{id}", userHandler.Update).Methods("PUT")
	apiRouter.HandleFunc("/users/{id}/ratings", ratingHandler.GetUserRatings).Methods("GET")
	apiRouter.HandleFunc("/users/{id}/ratings/average", ratingHandler.GetUserAverage).Methods("GET")

	// Projects
	apiRouter.HandleFunc("/projects", projectHandler.Create).Methods("POST")
	apiRouter.HandleFunc("/projects", projectHandler.List).Methods("GET")
	apiRouter.HandleFunc("/projects/search", projectHandler.Search).Methods("GET")
	apiRouter.HandleFunc("/projects/active", projectHandler.Active).Methods("GET")
	apiRouter.HandleFunc("/projects/incomplete", projectHandler.Incomplete).Methods("GET")
	apiRouter.HandleFunc("/projects/{id}", projectHandler.GetByID).Methods("GET")
	apiRouter.HandleFunc("/projects/{id}", projectHandler.Update).Methods("PUT")
	apiRouter.HandleFunc("/projects/{id}", projectHandler.Delete).Methods("DELETE")
	apiRouter.HandleFunc("/projects/{id}/image", projectHandler.UploadImage).Methods("POST")

	// Interest lifecycle
	apiRouter.HandleFunc("/projects/{id}/like", projectHandler.Like).Methods("POST")
	apiRouter.HandleFunc("/projects/{id}/unlike", projectHandler.Unlike).Methods("POST")
	apiRouter.HandleFunc("/projects/{id}/dislike", projectHandler.Dislike).Methods("POST")
	apiRouter.HandleFunc("/projects/{id}/undislike", projectHandler.Undislike).Methods("POST")
	apiRouter.HandleFunc("/projects/{id}/interested", projectHandler.Interested).Methods("GET")
	apiRouter.HandleFunc("/projects/{id}/manage-interested", projectHandler.ManageInterested).Methods("POST")

	// Ratings
	apiRouter.HandleFunc("/ratings", ratingHandler.RateUser).Methods("POST")
	apiRouter.HandleFunc("/projects/{id}/ratings", ratingHandler.GetProjectRatings).Methods("GET")

	// API tokens
	apiRouter.HandleFunc("/tokens", tokenHandler.Create).Methods("POST")
	apiRouter.HandleFunc("/tokens", tokenHandler.List).Methods("GET")
	apiRouter.HandleFunc("/tokens/{token_id}", tokenHandler.Revoke).Methods("DELETE")

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info(ctx, "server listening", map[string]interface{}{
			"address": addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info(ctx, "server stopped", nil)
	return nil
}
