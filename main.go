package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usertable-api/internal/config"
	"usertable-api/internal/controllers"
	"usertable-api/internal/database"
	"usertable-api/internal/events"
	"usertable-api/internal/logging"
	"usertable-api/internal/middleware"
	"usertable-api/internal/repository"
	"usertable-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)
	log.Info().Stringer("config", cfg).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, err := database.DialectFor(cfg.DatabaseDriver)
	if err != nil {
		log.Fatal().Err(err).Msg("unsupported database")
	}

	// Connect to database
	db, err := database.NewConnection(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, cfg.DBConnectRetries)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run database migrations
	if err := database.RunMigrations(db, dialect); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	publisher := newPublisher(cfg)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, dialect)
	schemaRepo := repository.NewSchemaRepository(db, dialect)

	// Initialize services
	userService := service.NewUserService(userRepo, cfg.DBQueryTimeout)
	schemaService := service.NewSchemaService(schemaRepo, publisher, cfg.DBQueryTimeout)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	schemaRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitSchemaRPS), cfg.RateLimitSchemaBurst)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	controllers.RegisterRoutes(router,
		controllers.NewHealthController(db),
		controllers.NewUserController(userService),
		controllers.NewTableController(schemaService),
		controllers.Limits{
			General: generalRateLimiter.LimitMiddleware(),
			Schema:  schemaRateLimiter.LimitMiddleware(),
		},
	)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ServerAddr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	generalRateLimiter.Stop()
	schemaRateLimiter.Stop()
	err = multierr.Combine(
		srv.Shutdown(shutdownCtx),
		publisher.Close(),
		db.Close(),
	)
	if err != nil {
		log.Error().Err(err).Msg("shutdown finished with errors")
	}
}

// newPublisher builds the configured schema event publisher. Event delivery is
// optional: an unreachable backend only disables it.
func newPublisher(cfg *config.Config) events.Publisher {
	switch cfg.EventsBackend {
	case "redis":
		p, err := events.NewRedisPublisher(cfg.RedisURL, cfg.EventsTopic)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without schema events")
			return events.NewNopPublisher()
		}
		log.Info().Str("channel", cfg.EventsTopic).Msg("publishing schema events to Redis")
		return p
	case "kafka":
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.EventsTopic).Msg("publishing schema events to Kafka")
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventsTopic)
	default:
		return events.NewNopPublisher()
	}
}
