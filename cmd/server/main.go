package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/thanhng/socialhub/internal/config"
	"github.com/thanhng/socialhub/internal/database"
	"github.com/thanhng/socialhub/internal/handlers"
	"github.com/thanhng/socialhub/internal/logging"
	"github.com/thanhng/socialhub/internal/middleware"
	"github.com/thanhng/socialhub/internal/services"
	"github.com/thanhng/socialhub/internal/store"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	// Initialize logger
	logger := logging.New()

	// In development the environment comes from a local .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
		logger.Debug("Debug logging enabled", map[string]interface{}{
			"env": cfg.Server.Environment,
		})
	}

	logger.Info("Starting SocialHub server...")

	// Connect to MongoDB
	logger.Info("Connecting to MongoDB", map[string]interface{}{
		"database": cfg.Mongo.Database,
	})
	db, err := database.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}
	defer func() { _ = db.Close() }()
	logger.Info("Connected to MongoDB")

	// Ensure indexes
	logger.Info("Ensuring database indexes...")
	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	if err := database.EnsureIndexes(indexCtx, db.DB); err != nil {
		return fmt.Errorf("ensuring indexes: %w", err)
	}
	logger.Info("Indexes ready")

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	st := store.New(db.DB)

	userService := services.NewUserService(st.Users)
	friendService := services.NewFriendService(st.Users, st.Requests)
	postService := services.NewPostService(st.Users, st.Posts)
	reactionService := services.NewReactionService(st.Posts)
	commentService := services.NewCommentService(st.Users, st.Posts)
	messageService := services.NewMessageService(st.Users, st.Messages)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	userHandler := handlers.NewUserHandler(userService)
	friendHandler := handlers.NewFriendHandler(friendService, userService)
	postHandler := handlers.NewPostHandler(postService, reactionService, commentService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Initialize middleware
	identity := middleware.NewIdentityMiddleware(userService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Environment == "production")
	requestLogger := middleware.NewRequestLogger(logger)
	apiRateLimiter := middleware.NewAPIRateLimiter(redisDB.Client)
	registerRateLimiter := middleware.NewRegisterRateLimiter(redisDB.Client)

	requireUser := identity.RequireUser

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no identity, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// User endpoints
	mux.Handle("POST /api/register", registerRateLimiter.Limit(http.HandlerFunc(userHandler.Register)))
	mux.Handle("GET /api/users/{id}", requireUser(http.HandlerFunc(userHandler.GetUser)))
	mux.Handle("PUT /api/users/profile", requireUser(http.HandlerFunc(userHandler.UpdateProfile)))
	mux.Handle("GET /api/users/{id}/posts", requireUser(http.HandlerFunc(postHandler.ListByUser)))

	// Friend endpoints
	mux.Handle("GET /api/friends", requireUser(http.HandlerFunc(friendHandler.ListFriends)))
	mux.Handle("GET /api/friends/search", requireUser(http.HandlerFunc(friendHandler.Search)))
	mux.Handle("POST /api/friends/requests", requireUser(http.HandlerFunc(friendHandler.SendRequest)))
	mux.Handle("GET /api/friends/requests", requireUser(http.HandlerFunc(friendHandler.ListRequests)))
	mux.Handle("POST /api/friends/requests/{id}/accept", requireUser(http.HandlerFunc(friendHandler.AcceptRequest)))
	mux.Handle("GET /api/friends/status/{id}", requireUser(http.HandlerFunc(friendHandler.Status)))
	mux.Handle("POST /api/friends/reconcile", requireUser(http.HandlerFunc(friendHandler.Reconcile)))

	// Post endpoints
	mux.Handle("POST /api/posts", requireUser(http.HandlerFunc(postHandler.Create)))
	mux.Handle("GET /api/posts", requireUser(http.HandlerFunc(postHandler.Feed)))
	mux.Handle("DELETE /api/posts/{id}", requireUser(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("POST /api/posts/{id}/like", requireUser(http.HandlerFunc(postHandler.Like)))
	mux.Handle("POST /api/posts/{id}/reactions", requireUser(http.HandlerFunc(postHandler.React)))
	mux.Handle("POST /api/posts/{id}/comments", requireUser(http.HandlerFunc(postHandler.Comment)))

	// Message endpoints
	mux.Handle("POST /api/messages", requireUser(http.HandlerFunc(messageHandler.Send)))
	mux.Handle("GET /api/messages/{id}", requireUser(http.HandlerFunc(messageHandler.Thread)))
	mux.Handle("GET /api/conversations", requireUser(http.HandlerFunc(messageHandler.Conversations)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = identity.Resolve(handler)
	handler = apiRateLimiter.Limit(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
