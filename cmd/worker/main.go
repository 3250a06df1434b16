package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	billingusecases "atrium/internal/application/billing/usecases"
	licenseusecases "atrium/internal/application/license/usecases"
	"atrium/internal/infrastructure/config"
	"atrium/internal/infrastructure/database"
	"atrium/internal/infrastructure/email"
	"atrium/internal/infrastructure/pubsub"
	"atrium/internal/infrastructure/repository"
	"atrium/internal/infrastructure/scheduler"
	"atrium/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting license worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	db := database.Get()
	companyRepo := repository.NewCompanyRepository(db, log)
	settingsRepo := repository.NewCompanySettingsRepository(db, log)
	licenseRepo := repository.NewLicenseRepository(db, log)
	planRepo := repository.NewPlanRepository(db, log)
	snapshotRepo := repository.NewPartnerBillingSnapshotRepository(db, log)

	emailService := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	})

	eventBus := pubsub.NewRedisLicenseEventBus(redisClient, log)

	markOverdueUC := licenseusecases.NewMarkOverdueLicensesUseCase(licenseRepo, log)
	warnExpiringUC := licenseusecases.NewWarnExpiringLicensesUseCase(
		licenseRepo,
		companyRepo,
		settingsRepo,
		emailService,
		eventBus,
		cfg.License.WarningDays,
		log,
	)
	recomputeBillingUC := billingusecases.NewRecomputePartnerBillingUseCase(
		companyRepo,
		licenseRepo,
		planRepo,
		snapshotRepo,
		cfg.Platform.CompanyID,
		log,
	)

	manager := scheduler.NewManager(log)
	manager.Register(scheduler.NewLicenseOverdueScheduler(markOverdueUC, log))
	manager.Register(scheduler.NewLicenseWarningScheduler(warnExpiringUC, log))
	manager.Register(scheduler.NewPartnerBillingScheduler(recomputeBillingUC, cfg.Platform.CompanyID, log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager.Start(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Infow("received signal, shutting down", "signal", sig)

	cancel()
	manager.Stop()

	log.Infow("license worker stopped")
}
