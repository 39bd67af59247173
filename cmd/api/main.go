package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/referral-service/internal/api/http"
	"github.com/spec-kit/referral-service/internal/api/http/handlers"
	"github.com/spec-kit/referral-service/internal/auth"
	"github.com/spec-kit/referral-service/internal/config"
	"github.com/spec-kit/referral-service/internal/observability"
	"github.com/spec-kit/referral-service/internal/persistence"
	"github.com/spec-kit/referral-service/internal/repository"
	"github.com/spec-kit/referral-service/internal/service"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	adminRepo := repository.NewAdminRepository(pool)
	subadminRepo := repository.NewSubadminRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	if err := persistence.SeedAdmin(ctx, adminRepo, *cfg, logger); err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AdminRepo:    adminRepo,
		SubadminRepo: subadminRepo,
		EmployeeRepo: employeeRepo,
	})
	referralChecker := service.NewReferralChecker(employeeRepo)
	employeeService := service.NewEmployeeService(employeeRepo, cfg.Auth.BcryptCost)
	userService := service.NewUserService(userRepo, employeeRepo, referralChecker, cfg.Auth.BcryptCost)
	subadminService := service.NewSubadminService(subadminRepo)

	// Resolution policies: admin and employee tokens resolve against their
	// single canonical store; the shared guard walks all four stores in order.
	tokens := authService.TokenManager()
	guards := httptransport.Guards{
		Any: auth.NewGuard(tokens,
			auth.UserResolver(userRepo),
			auth.EmployeeResolver(employeeRepo),
			auth.SubadminResolver(subadminRepo),
			auth.AdminResolver(adminRepo),
		),
		Admin:    auth.NewGuard(tokens, auth.AdminResolver(adminRepo)),
		Employee: auth.NewGuard(tokens, auth.EmployeeResolver(employeeRepo)),
	}

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, cfg, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService),
		Admin:     handlers.NewAdminHandler(authService),
		Subadmin:  handlers.NewSubadminHandler(authService, subadminService),
		Employees: handlers.NewEmployeesHandler(employeeService),
		Users:     handlers.NewUsersHandler(userService),
		Guards:    guards,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
