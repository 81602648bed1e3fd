package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appattendance "github.com/investkaro/backend/internal/application/attendance"
	appcollection "github.com/investkaro/backend/internal/application/collection"
	appcrm "github.com/investkaro/backend/internal/application/crm"
	appdocument "github.com/investkaro/backend/internal/application/document"
	appidentity "github.com/investkaro/backend/internal/application/identity"
	"github.com/investkaro/backend/internal/application/importer"
	appreport "github.com/investkaro/backend/internal/application/report"
	appstrategy "github.com/investkaro/backend/internal/application/strategy"
	"github.com/investkaro/backend/internal/infrastructure/auth"
	"github.com/investkaro/backend/internal/infrastructure/config"
	"github.com/investkaro/backend/internal/infrastructure/logger"
	"github.com/investkaro/backend/internal/infrastructure/persistence"
	"github.com/investkaro/backend/internal/interfaces/http/handler"
	"github.com/investkaro/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	jwtService := auth.NewJWTService(cfg.JWT)
	hasher := auth.NewBcryptHasher(0)

	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		// Token revocation degrades to in-process scope without Redis
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer redisBlacklist.Close()
	}

	profileRepo := persistence.NewGormProfileRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	engagementRepo := persistence.NewGormEngagementRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	splitRepo := persistence.NewGormSplitRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)
	strategyRepo := persistence.NewGormStrategyRepository(db.DB)

	directory := appidentity.NewTeamDirectory(profileRepo)

	authService := appidentity.NewAuthService(profileRepo, jwtService, blacklist, hasher, log)
	userService := appidentity.NewUserService(profileRepo, hasher, log)
	clientService := appcrm.NewClientService(clientRepo, engagementRepo, profileRepo, log)
	engagementService := appcrm.NewEngagementService(engagementRepo, clientRepo, profileRepo, directory, log)
	paymentService := appcollection.NewPaymentService(paymentRepo, splitRepo, profileRepo, clientRepo, directory, log)
	incomeService := appreport.NewIncomeService(paymentRepo, splitRepo, profileRepo, directory, cfg.Report.TrailingMonths, log)
	slipService := appdocument.NewSlipService(paymentRepo, splitRepo, profileRepo, clientRepo, directory, log)
	receiptService := appdocument.NewReceiptService(paymentRepo, splitRepo, profileRepo, clientRepo, log)
	importService := importer.NewClientImportService(clientRepo, log)
	attendanceService := appattendance.NewService(attendanceRepo, directory, log)
	strategyService := appstrategy.NewService(strategyRepo, profileRepo, log)

	engine := router.New(
		router.Config{
			JWTService: jwtService,
			Blacklist:  blacklist,
			HTTP:       cfg.HTTP,
			Logger:     log,
		},
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewClientHandler(clientService, importService),
		handler.NewEngagementHandler(engagementService),
		handler.NewPaymentHandler(paymentService),
		handler.NewReportHandler(incomeService),
		handler.NewDocumentHandler(slipService, receiptService),
		handler.NewAttendanceHandler(attendanceService),
		handler.NewStrategyHandler(strategyService),
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
