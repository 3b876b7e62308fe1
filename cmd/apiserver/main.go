package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/puscasale/MAP-SocialNetwork/internal/config"
	"github.com/puscasale/MAP-SocialNetwork/internal/handlers/apiserver"
	"github.com/puscasale/MAP-SocialNetwork/internal/middleware"
	"github.com/puscasale/MAP-SocialNetwork/internal/services"
	"github.com/puscasale/MAP-SocialNetwork/internal/storage"
	"github.com/puscasale/MAP-SocialNetwork/pkg/logger"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	logger.Info("configuration loaded", "app", cfg.AppName, "version", cfg.AppVersion)

	repos, txManager, err := buildStore(cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", err)
	}
	logger.Info("storage initialized", "type", cfg.Database.Type)

	socialService, err := services.NewSocialService(repos, txManager)
	if err != nil {
		logger.Fatal("failed to initialize social service", err)
	}

	authHandler := apiserver.NewAuthHandler(socialService, cfg.Auth)
	userHandler := apiserver.NewUserHandler(socialService)
	friendshipHandler := apiserver.NewFriendshipHandler(socialService)
	messageHandler := apiserver.NewMessageHandler(socialService)
	networkHandler := apiserver.NewNetworkHandler(socialService)

	r := mux.NewRouter()

	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/signup", authHandler.SignUp).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	// Public profile lookup.
	r.HandleFunc("/users/{userID:[0-9]+}", userHandler.GetUser).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(middleware.AuthMiddleware(cfg.Auth))

	apiRouter.HandleFunc("/users/me", userHandler.UpdateMe).Methods(http.MethodPut)
	apiRouter.HandleFunc("/users/me", userHandler.DeleteMe).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/users", userHandler.ListUsers).Methods(http.MethodGet)
	apiRouter.HandleFunc("/users/search", userHandler.SearchUsers).Methods(http.MethodGet)

	apiRouter.HandleFunc("/friends", friendshipHandler.ListFriends).Methods(http.MethodGet)

	friendshipRouter := apiRouter.PathPrefix("/friendships").Subrouter()
	friendshipRouter.HandleFunc("", friendshipHandler.ListAll).Methods(http.MethodGet)
	friendshipRouter.HandleFunc("/mine", friendshipHandler.ListMine).Methods(http.MethodGet)
	friendshipRouter.HandleFunc("/requests", friendshipHandler.SendRequest).Methods(http.MethodPost)
	friendshipRouter.HandleFunc("/requests/pending", friendshipHandler.ListPending).Methods(http.MethodGet)
	friendshipRouter.HandleFunc("/requests/decide", friendshipHandler.DecideRequest).Methods(http.MethodPost)
	friendshipRouter.HandleFunc("/{userID:[0-9]+}", friendshipHandler.Unfriend).Methods(http.MethodDelete)

	apiRouter.HandleFunc("/messages", messageHandler.Send).Methods(http.MethodPost)
	apiRouter.HandleFunc("/messages/{userID:[0-9]+}", messageHandler.Conversation).Methods(http.MethodGet)

	apiRouter.HandleFunc("/network/communities", networkHandler.Communities).Methods(http.MethodGet)
	apiRouter.HandleFunc("/network/most-social", networkHandler.MostSocial).Methods(http.MethodGet)

	corsOptions := []handlers.CORSOption{
		handlers.AllowedOrigins(cfg.APIServer.CORS.AllowedOrigins),
		handlers.AllowedMethods(cfg.APIServer.CORS.AllowedMethods),
		handlers.AllowedHeaders(cfg.APIServer.CORS.AllowedHeaders),
		handlers.MaxAge(cfg.APIServer.CORS.MaxAge),
	}
	if cfg.APIServer.CORS.AllowCredentials {
		corsOptions = append(corsOptions, handlers.AllowCredentials())
	}
	corsHandler := handlers.CORS(corsOptions...)(r)

	serverAddr := fmt.Sprintf("%s:%s", cfg.APIServer.Host, cfg.APIServer.Port)
	srv := &http.Server{
		Addr:           serverAddr,
		Handler:        corsHandler,
		ReadTimeout:    cfg.APIServer.ReadTimeout,
		WriteTimeout:   cfg.APIServer.WriteTimeout,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: cfg.APIServer.MaxHeaderBytes,
	}

	go func() {
		logger.Info("API server listening", "addr", serverAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("API server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, stopping API server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("API server forced to shut down", err)
	}
	logger.Info("API server stopped")
}

// buildStore wires the persistence backend selected by DATABASE.TYPE.
func buildStore(cfg config.DatabaseConfig) (storage.Repositories, storage.TxManager, error) {
	switch cfg.Type {
	case "postgres":
		db, err := storage.InitDB(cfg)
		if err != nil {
			return storage.Repositories{}, nil, err
		}
		if err := storage.AutoMigrateTables(db); err != nil {
			return storage.Repositories{}, nil, err
		}
		repos := storage.Repositories{
			Users:       storage.NewGormUserRepository(db),
			Friendships: storage.NewGormFriendshipRepository(db),
			Messages:    storage.NewGormMessageRepository(db),
		}
		return repos, storage.NewGormTxManager(db), nil
	case "memory":
		store := storage.NewMemoryStore()
		return store.Repositories(), store, nil
	case "file":
		store, err := storage.NewFileStore(cfg.UsersFile, cfg.FriendshipsFile)
		if err != nil {
			return storage.Repositories{}, nil, err
		}
		return store.Repositories(), store, nil
	default:
		return storage.Repositories{}, nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}
