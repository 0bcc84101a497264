package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/supportiq/helpdesk/internal/ai"
	httptransport "github.com/supportiq/helpdesk/internal/api/http"
	"github.com/supportiq/helpdesk/internal/api/http/handlers"
	"github.com/supportiq/helpdesk/internal/auth"
	"github.com/supportiq/helpdesk/internal/config"
	"github.com/supportiq/helpdesk/internal/events"
	"github.com/supportiq/helpdesk/internal/observability"
	"github.com/supportiq/helpdesk/internal/persistence"
	"github.com/supportiq/helpdesk/internal/repository"
	"github.com/supportiq/helpdesk/internal/service"
	"github.com/supportiq/helpdesk/internal/triage"
	"github.com/supportiq/helpdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewTicketMessageRepository(pool)
	triageRepo := repository.NewTriageRepository(pool)

	metrics := observability.NewMetrics()

	var replies service.ReplyGenerator
	classifier := buildClassifier(cfg, redis, logger)
	if cfg.AI.Enabled {
		replies = ai.NewReplyGenerator(ai.NewClient(cfg.AI, logger))
	}

	authService := service.NewAuthService(*cfg, userRepo)
	if cfg.Auth.BootstrapAgentEmail != "" && cfg.Auth.BootstrapAgentPass != "" {
		if err := authService.EnsureAgent(ctx, "Support Agent", cfg.Auth.BootstrapAgentEmail, cfg.Auth.BootstrapAgentPass); err != nil {
			logger.Fatal("failed to bootstrap agent account", zap.Error(err))
		}
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		MessageRepo: messageRepo,
		TriageRepo:  triageRepo,
		Classifier:  classifier,
		Replies:     replies,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	draftService := service.NewDraftService(ticketRepo, messageRepo, replies, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Agent:          handlers.NewAgentHandler(ticketService, draftService),
		AuthMiddleware: authMiddleware,
	})

	go serveMetrics(cfg.App.MetricsAddr, logger)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildClassifier picks the triage strategy from config. The LLM variant
// needs an enabled AI backend; otherwise the rule classifier is used.
func buildClassifier(cfg *config.Config, redis *persistence.Redis, logger *zap.Logger) triage.Classifier {
	if cfg.Triage.Variant == config.TriageVariantLLM && cfg.AI.Enabled {
		cache := triage.NewResultCache(redis.Client, cfg.Triage.CacheTTL())
		return triage.NewLLMClassifier(ai.NewClient(cfg.AI, logger), cache, logger)
	}
	if cfg.Triage.Variant == config.TriageVariantLLM {
		logger.Warn("TRIAGE_VARIANT=llm requires AI_ENABLED=true, falling back to rules")
	}
	return triage.NewRuleClassifier()
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener stopped", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
