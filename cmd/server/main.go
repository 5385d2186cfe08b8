package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swiftaid/internal/config"
	"swiftaid/internal/handlers"
	"swiftaid/internal/middleware"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/repositories/memory"
	"swiftaid/internal/repositories/mongodb"
	"swiftaid/internal/services"
	"swiftaid/internal/utils"
	"swiftaid/pkg/auth"
	"swiftaid/pkg/cache"
	"swiftaid/pkg/database"
	"swiftaid/pkg/logger"
	"swiftaid/pkg/sms"
	"swiftaid/pkg/websocket"
	"swiftaid/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
		Colors: cfg.App.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	stores, cleanup, err := buildStores(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer cleanup()

	verifier, issuer, roleSetter, err := buildAuth(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize auth provider: %v", err)
	}

	smsProvider, err := buildSMS(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize SMS provider: %v", err)
	}

	// Socket position updates take the same path as the REST endpoint and fan
	// back out to the admin tracking room; the dispatch service pushes
	// assignment events back through the same hub.
	var dispatchService services.DispatchService
	wsHandler := websocket.NewHandler(func(driverID string, latitude, longitude float64) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := dispatchService.UpdateLocation(ctx, driverID, latitude, longitude); err != nil {
			log.WithError(err).WithDriverID(driverID).Warn("Failed to persist socket location update")
		}
	})

	dispatchService = services.NewDispatchService(
		cfg.Dispatch, stores.users, stores.emergencies, stores.locations, stores.stats, smsProvider, wsHandler, log)
	emergencyService := services.NewEmergencyService(stores.emergencies, stores.users, log)
	adminService := services.NewAdminService(stores.users, stores.emergencies, stores.locations, log)
	authService := services.NewAuthService(stores.users, stores.stats, issuer, roleSetter, log)

	authHandler := handlers.NewAuthHandler(authService)
	patientHandler := handlers.NewPatientHandler(emergencyService)
	driverHandler := handlers.NewDriverHandler(dispatchService)
	adminHandler := handlers.NewAdminHandler(adminService)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))

	authMW := middleware.AuthRequired(verifier, stores.users)

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, authMW, cfg.Auth.Provider == "firebase")
		routes.SetupPatientRoutes(v1, patientHandler, authHandler, authMW)
		routes.SetupDriverRoutes(v1, driverHandler, authMW)
		routes.SetupAdminRoutes(v1, adminHandler, authMW)
		routes.SetupWebSocketRoutes(v1, wsHandler, authMW)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": utils.AppName,
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
}

type storeSet struct {
	users       interfaces.UserRepository
	emergencies interfaces.EmergencyRepository
	locations   interfaces.LocationRepository
	stats       interfaces.DriverStatsRepository
}

// buildStores constructs the repository set for the configured driver. The
// returned cleanup closes whatever connections were opened.
func buildStores(cfg *config.Config, log *logger.Logger) (*storeSet, func(), error) {
	switch cfg.Database.Driver {
	case "memory":
		log.Warn("Using in-memory store; data will not survive a restart")
		return &storeSet{
			users:       memory.NewUserRepository(),
			emergencies: memory.NewEmergencyRepository(),
			locations:   memory.NewLocationRepository(),
			stats:       memory.NewDriverStatsRepository(),
		}, func() {}, nil

	case "mongodb":
		db, err := database.NewMongoDB(&database.Config{
			URI:            cfg.Database.URI,
			Database:       cfg.Database.Database,
			MaxPoolSize:    cfg.Database.MaxPoolSize,
			MinPoolSize:    cfg.Database.MinPoolSize,
			ConnectTimeout: cfg.Database.ConnectTimeout,
			SocketTimeout:  cfg.Database.SocketTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongodb: %w", err)
		}

		var cacheService mongodb.CacheService
		var redisCache *cache.RedisCache
		if cfg.Redis.Enabled {
			redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
				Host:         cfg.Redis.Host,
				Port:         cfg.Redis.Port,
				Password:     cfg.Redis.Password,
				DB:           cfg.Redis.DB,
				PoolSize:     cfg.Redis.PoolSize,
				MinIdleConns: cfg.Redis.MinIdleConns,
				DialTimeout:  cfg.Redis.DialTimeout,
				ReadTimeout:  cfg.Redis.ReadTimeout,
				WriteTimeout: cfg.Redis.WriteTimeout,
			})
			if err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("connect redis: %w", err)
			}
			cacheService = redisCache
		}

		cleanup := func() {
			if redisCache != nil {
				_ = redisCache.Close()
			}
			db.Close()
		}
		return &storeSet{
			users:       mongodb.NewUserRepository(db.Database, cacheService),
			emergencies: mongodb.NewEmergencyRepository(db.Database, cacheService),
			locations:   mongodb.NewLocationRepository(db.Database, cacheService),
			stats:       mongodb.NewDriverStatsRepository(db.Database),
		}, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Database.Driver)
	}
}

func buildAuth(cfg *config.Config) (auth.TokenVerifier, auth.TokenIssuer, services.RoleSetter, error) {
	switch cfg.Auth.Provider {
	case "firebase":
		verifier, err := auth.NewFirebaseVerifier(cfg.Auth.FirebaseCredentials)
		if err != nil {
			return nil, nil, nil, err
		}
		return verifier, nil, verifier, nil

	case "local":
		provider := auth.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.JWTTokenTTL)
		return provider, provider, nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown auth provider %q", cfg.Auth.Provider)
	}
}

func buildSMS(cfg *config.Config) (sms.Provider, error) {
	switch cfg.SMS.Provider {
	case "twilio":
		return sms.NewTwilioProvider(cfg.SMS.Twilio.AccountSID, cfg.SMS.Twilio.AuthToken, cfg.SMS.Twilio.FromNumber), nil
	case "sns":
		return sms.NewAWSSNSProvider(cfg.SMS.SNS.Region)
	case "noop", "":
		return sms.NewNoopProvider(), nil
	default:
		return nil, fmt.Errorf("unknown SMS provider %q", cfg.SMS.Provider)
	}
}
