package app

import (
	"context"
	"time"

	"go-personnel/internal/auth"
	"go-personnel/internal/company"
	"go-personnel/internal/config"
	"go-personnel/internal/department"
	"go-personnel/internal/employee"
	"go-personnel/internal/leave"
	"go-personnel/internal/messaging/kafka"
	"go-personnel/internal/middleware"
	"go-personnel/internal/mutation"
	"go-personnel/internal/personnel"
	"go-personnel/internal/rbac"
	"go-personnel/internal/rbac/infra"
	"go-personnel/internal/report"
	"go-personnel/internal/retirement"
	"go-personnel/internal/shared/clock"
	"go-personnel/internal/shared/counter"
	"go-personnel/internal/summary"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const decreeIssuer = "Personnel Administration"

type services struct {
	rbac       rbac.Service
	auth       auth.Service
	company    company.Service
	department department.Service
	employee   employee.Service
	leave      leave.Service
	mutation   mutation.Service
	retirement retirement.Service
	report     report.Service
	reconciler personnel.Reconciler

	employeeRepo employee.Repository
	leaveRepo    leave.Repository
	mutationRepo mutation.Repository
	outboxRepo   kafka.OutboxRepository

	clock           clock.Clock
	outboxRetention time.Duration
}

// buildServices wires repositories and services shared by the api, worker and consumer.
func buildServices(cfg *config.Config, in *resources, logger *zap.Logger) (*services, error) {
	clk := clock.System{}

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(in.gormDB)
	authRepo := auth.NewRepository(in.gormDB)
	counterRepo := counter.NewRepository(in.gormDB)
	companyRepo := company.NewRepository(in.gormDB)
	departmentRepo := department.NewRepository(in.gormDB)
	employeeRepo := employee.NewRepository(in.gormDB)
	leaveRepo := leave.NewRepository(in.gormDB)
	mutationRepo := mutation.NewRepository(in.gormDB)
	personnelRepo := personnel.NewRepository(in.gormDB)
	retirementRepo := retirement.NewRepository(in.gormDB)
	outboxRepo := kafka.NewOutboxRepository(in.db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBAC.ModelPath)
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	reconciler := personnel.NewReconciler(in.db, personnelRepo, outboxRepo, clk, logger)
	employeeService := employee.NewService(in.db, employeeRepo, counterRepo, outboxRepo, in.rdb, clk, logger)
	leaveService := leave.NewService(in.db, leaveRepo, reconciler, clk, logger)
	retirementService := retirement.NewService(
		in.db, retirementRepo, employeeRepo, counterRepo, outboxRepo, reconciler,
		report.NewDecreeRenderer(decreeIssuer), clk, logger,
	)

	// Onboarding is the only path that grants ADMIN; it shares one transaction across these repositories.
	companyService := company.NewService(
		in.db, companyRepo, employeeRepo, counterRepo, authRepo, rbacService, outboxRepo, clk, logger,
	)

	return &services{
		rbac: rbacService,
		auth: auth.NewService(authRepo, rbacService, employeeRepo, auth.TokenConfig{
			Secret:     cfg.Auth.JWTSecret,
			AccessTTL:  cfg.Auth.AccessTokenTTL,
			RefreshTTL: cfg.Auth.RefreshTokenTTL,
		}, clk, logger),
		company:    companyService,
		department: department.NewService(in.db, departmentRepo, in.rdb, logger),
		employee:   employeeService,
		leave:      leaveService,
		mutation:   mutation.NewService(in.db, mutationRepo, employeeRepo, clk, logger),
		retirement: retirementService,
		report:     report.NewService(employeeService, leaveService, retirementService, clk, logger),
		reconciler: reconciler,

		employeeRepo: employeeRepo,
		leaveRepo:    leaveRepo,
		mutationRepo: mutationRepo,
		outboxRepo:   outboxRepo,

		clock:           clk,
		outboxRetention: cfg.Worker.OutboxRetention,
	}, nil
}

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	in *resources,
	logger *zap.Logger,
) error {
	svc, err := buildServices(cfg, in, logger)
	if err != nil {
		return err
	}

	// AI summaries are optional.
	var generator summary.Generator
	if cfg.GenAI.APIKey != "" {
		g, err := summary.NewGenAIGenerator(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model)
		if err != nil {
			return err
		}
		generator = g
	} else {
		logger.Warn("genai api key not configured, summaries disabled")
	}
	summaryService := summary.NewService(generator, svc.leaveRepo, svc.employeeRepo, svc.mutationRepo, in.rdb, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(svc.auth, cfg.Auth.SecureCookie, logger)
	companyHandler := company.NewHandler(svc.company, logger)
	departmentHandler := department.NewHandler(svc.department, logger)
	employeeHandler := employee.NewHandler(svc.employee, logger)
	leaveHandler := leave.NewHandler(svc.leave, logger)
	mutationHandler := mutation.NewHandler(svc.mutation, logger)
	rbacHandler := rbac.NewHandler(svc.rbac, logger)
	reportHandler := report.NewHandler(svc.report, logger)
	retirementHandler := retirement.NewHandler(svc.retirement, logger)
	summaryHandler := summary.NewHandler(summaryService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, authHandler, cfg.Auth.JWTSecret, svc.rbac)
	company.RegisterPublicRoutes(api, companyHandler)

	protected := api.Group("",
		middleware.AuthMiddleware(cfg.Auth.JWTSecret),
		middleware.ContextLogger(logger),
	)
	{
		company.RegisterRoutes(protected, companyHandler, svc.rbac)
		department.RegisterRoutes(protected, departmentHandler, svc.rbac)
		employee.RegisterRoutes(protected, employeeHandler, svc.rbac, in.rdb, logger)
		leave.RegisterRoutes(protected, leaveHandler, svc.rbac)
		mutation.RegisterRoutes(protected, mutationHandler, svc.rbac)
		retirement.RegisterRoutes(protected, retirementHandler, svc.rbac, in.rdb, logger)
		report.RegisterRoutes(protected, reportHandler, svc.rbac)
		summary.RegisterRoutes(protected, summaryHandler, svc.rbac)
		rbac.RegisterRoutes(protected, rbacHandler, svc.rbac)
	}

	return nil
}
