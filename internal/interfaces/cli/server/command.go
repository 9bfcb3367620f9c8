package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	invoiceUC "github.com/fieldserv-inc/fieldserv/internal/application/invoice/usecases"
	ratingUC "github.com/fieldserv-inc/fieldserv/internal/application/rating/usecases"
	settlementUC "github.com/fieldserv-inc/fieldserv/internal/application/settlement/usecases"
	ticketUC "github.com/fieldserv-inc/fieldserv/internal/application/ticket/usecases"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/auth"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/cache"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/config"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/database"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/notification"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/migrations"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/repository"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/scheduler"
	httpRouter "github.com/fieldserv-inc/fieldserv/internal/interfaces/http"
	"github.com/fieldserv-inc/fieldserv/internal/interfaces/http/handlers"
	"github.com/fieldserv-inc/fieldserv/internal/interfaces/http/middleware"
	"github.com/fieldserv-inc/fieldserv/internal/shared/biztime"
	"github.com/fieldserv-inc/fieldserv/internal/shared/db"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
	"github.com/fieldserv-inc/fieldserv/internal/shared/utils"
)

var (
	env         string
	configPath  string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the FieldServ HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run schema auto-migration on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	if err := biztime.Init(cfg.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			logger.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}
		if err := migrations.AutoMigrateAll(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		logger.Info("auto-migration completed")
	}

	slaPolicy, err := config.BuildSLAPolicy(&cfg.SLA)
	if err != nil {
		return fmt.Errorf("failed to build SLA policy: %w", err)
	}

	log := logger.NewLogger()
	md := markdown.NewService()

	eventDispatcher := events.NewInMemoryEventDispatcher(100)
	if err := eventDispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	defer func() {
		if err := eventDispatcher.Stop(); err != nil {
			logger.Error("failed to stop event dispatcher", "error", err)
		}
	}()

	notifier := notification.NewNotifier(md, log)
	if err := notifier.Register(eventDispatcher); err != nil {
		return fmt.Errorf("failed to register notifier: %w", err)
	}

	gormDB := database.Get()
	txManager := db.NewTransactionManager(gormDB)

	ticketRepo := repository.NewTicketRepository(gormDB)
	invoiceRepo := repository.NewInvoiceRepository(gormDB)
	batchRepo := repository.NewPaymentBatchRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)
	reputationRepo := repository.NewReputationRepository(gormDB)

	redisClient := cache.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()
	reputationCache := cache.NewRedisReputationCache(redisClient)

	numberGen := ticket.NewDefaultNumberGenerator()
	formatMoney := utils.FormatCents

	ticketHandler := handlers.NewTicketHandler(
		ticketUC.NewCreateTicketUseCase(ticketRepo, numberGen, slaPolicy, md, eventDispatcher, log),
		ticketUC.NewUpdateTicketUseCase(ticketRepo, md, log),
		ticketUC.NewGetTicketUseCase(ticketRepo, log),
		ticketUC.NewListTicketsUseCase(ticketRepo, log),
		ticketUC.NewAssignTicketUseCase(ticketRepo, slaPolicy, eventDispatcher, log),
		ticketUC.NewAcceptTicketUseCase(ticketRepo, eventDispatcher, log),
		ticketUC.NewRejectAssignmentUseCase(ticketRepo, md, eventDispatcher, log),
		ticketUC.NewConfirmOnSiteUseCase(ticketRepo, log),
		ticketUC.NewStartWorkUseCase(ticketRepo, log),
		ticketUC.NewRequestWorkDescriptionUseCase(ticketRepo, log),
		ticketUC.NewSubmitWorkDescriptionUseCase(ticketRepo, md, eventDispatcher, log),
		ticketUC.NewApproveWorkUseCase(ticketRepo, eventDispatcher, log),
		ticketUC.NewRejectWorkUseCase(ticketRepo, md, eventDispatcher, log),
		ticketUC.NewCloseTicketUseCase(ticketRepo, ratingRepo, eventDispatcher, log),
		ticketUC.NewCancelTicketUseCase(ticketRepo, md, eventDispatcher, log),
		log,
	)

	markOverdueUC := invoiceUC.NewMarkOverdueInvoicesUseCase(invoiceRepo, eventDispatcher, log)

	invoiceHandler := handlers.NewInvoiceHandler(
		invoiceUC.NewSubmitInvoiceUseCase(invoiceRepo, ticketRepo, txManager, md, cfg.Settlement.PaymentDueDays, eventDispatcher, log),
		invoiceUC.NewGetInvoiceUseCase(invoiceRepo, formatMoney, log),
		invoiceUC.NewListInvoicesUseCase(invoiceRepo, formatMoney, log),
		invoiceUC.NewApproveInvoiceUseCase(invoiceRepo, eventDispatcher, log),
		invoiceUC.NewRejectInvoiceUseCase(invoiceRepo, md, eventDispatcher, log),
		invoiceUC.NewRequestClarificationUseCase(invoiceRepo, md, log),
		invoiceUC.NewRespondClarificationUseCase(invoiceRepo, md, log),
		invoiceUC.NewRecordPaymentUseCase(invoiceRepo, eventDispatcher, log),
		invoiceUC.NewCancelInvoiceUseCase(invoiceRepo, md, log),
		log,
	)

	settlementHandler := handlers.NewSettlementHandler(
		settlementUC.NewCreatePaymentBatchUseCase(batchRepo, invoiceRepo, txManager, md, eventDispatcher, log),
		settlementUC.NewGetPaymentBatchUseCase(batchRepo, formatMoney, log),
		settlementUC.NewListPaymentBatchesUseCase(batchRepo, formatMoney, log),
		log,
	)

	ratingHandler := handlers.NewRatingHandler(
		ratingUC.NewSubmitRatingUseCase(ratingRepo, reputationRepo, ticketRepo, txManager, reputationCache, md, eventDispatcher, log),
		ratingUC.NewGetTicketRatingUseCase(ratingRepo, log),
		ratingUC.NewListContractorRatingsUseCase(ratingRepo, log),
		ratingUC.NewGetContractorReputationUseCase(reputationRepo, reputationCache, log),
		log,
	)

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, 60)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	router := httpRouter.NewRouter(ticketHandler, invoiceHandler, settlementHandler, ratingHandler, authMiddleware, cfg, log)
	router.SetupRoutes()

	jobs, err := scheduler.New(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	scanInterval := time.Duration(cfg.Settlement.OverdueScanMins) * time.Minute
	if err := jobs.RegisterOverdueScan(markOverdueUC, scanInterval); err != nil {
		return fmt.Errorf("failed to register overdue scan: %w", err)
	}
	jobs.Start()
	defer func() {
		if err := jobs.Stop(); err != nil {
			logger.Error("failed to stop scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
