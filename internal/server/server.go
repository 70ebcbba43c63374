package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"homevista/internal/config"
	custommiddleware "homevista/internal/middleware"
	"homevista/internal/service"
	"homevista/internal/storage"
	"homevista/internal/transport"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	store  storage.Store
	redis  *redis.Client
}

// NewServer wires the store into services and handlers and builds the
// HTTP server. The redis client is optional; without it rate limiting
// is skipped.
func NewServer(cfg *config.Config, logger *zap.Logger, store storage.Store, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 300,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize services
	userService := service.NewUserService(store, cfg.JWT.Secret)
	catalogService := service.NewCatalogService(store)
	cartService := service.NewCartService(store, cfg.Checkout)
	orderService := service.NewOrderService(store, cartService, logger)
	propertyService := service.NewPropertyService(store)
	designService := service.NewDesignService(store)
	consultantService := service.NewConsultantService(store)
	chatService := service.NewChatService(store, service.KeywordClassifier{})
	studioService := service.NewStudioService(cfg.Studio)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, logger)
	furnitureHandler := transport.NewFurnitureHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	propertyHandler := transport.NewPropertyHandler(propertyService, logger)
	designHandler := transport.NewDesignHandler(designService, logger)
	consultantHandler := transport.NewConsultantHandler(consultantService, logger)
	chatHandler := transport.NewChatHandler(chatService, logger)
	studioHandler := transport.NewStudioHandler(studioService, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)

	// Register routes
	userHandler.RegisterRoutes(router, authMiddleware)
	furnitureHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	propertyHandler.RegisterRoutes(router)
	designHandler.RegisterRoutes(router)
	consultantHandler.RegisterRoutes(router)
	chatHandler.RegisterRoutes(router)
	studioHandler.RegisterRoutes(router, authMiddleware, custommiddleware.RequireSelf("userId", logger))

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		store:  store,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.store != nil {
		if err := s.store.Close(ctx); err != nil {
			s.logger.Error("Failed to close store", zap.Error(err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
