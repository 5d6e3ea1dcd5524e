package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"stratsim/internal/audit"
	"stratsim/internal/compound"
	"stratsim/internal/config"
	cronrunner "stratsim/internal/cron"
	"stratsim/internal/db"
	"stratsim/internal/handler"
	"stratsim/internal/logger"
	gormrepository "stratsim/internal/repository/gorm"
	"stratsim/internal/service"

	_ "stratsim/docs"
)

func main() {
	cfgPath := os.Getenv("SIM_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("SIM_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	limits := compound.Limits{
		MaxOpportunitiesPerPeriod: cfg.Simulation.MaxOpportunitiesPerPeriod,
		MaxPeriodsPerCycle:        cfg.Simulation.MaxPeriodsPerCycle,
		MaxCycles:                 cfg.Simulation.MaxCycles,
		MaxRecords:                cfg.Simulation.MaxRecords,
	}
	projectionSvc := &service.ProjectionService{Repo: store, Logger: logger, Limits: limits}
	strategySvc := &service.StrategyService{Repo: store, Projections: projectionSvc}
	recorder := &audit.Recorder{Repo: store, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(authMiddleware(cfg.Server.AuthToken))
	engine.Use(audit.InjectRecorderMiddleware(recorder))
	engine.Use(audit.WriteAuditMiddleware(recorder, logger))

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	statsHandler := &handler.StatsHandler{}
	statsHandler.Register(engine)
	projectionHandler := &handler.ProjectionHandler{Repo: store, Service: projectionSvc}
	projectionHandler.Register(engine)
	strategyHandler := &handler.StrategyHandler{Repo: store, Service: strategySvc}
	strategyHandler.Register(engine)
	streamHandler := &handler.StreamHandler{Service: projectionSvc, Logger: logger}
	streamHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		retention := &service.RetentionService{
			Repo:        store,
			Logger:      logger,
			RunMaxAge:   cfg.Retention.RunMaxAge,
			AuditMaxAge: cfg.Retention.AuditMaxAge,
		}
		if _, err := cronRunner.Add(cfg.Cron.RetentionSweep, func(ctx context.Context) {
			if err := retention.SweepOnce(ctx); err != nil {
				logger.Warn("retention sweep failed", zap.Error(err))
			}
		}); err != nil {
			logger.Warn("cron register retention sweep failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	updater := &service.StatsUpdater{
		Repo:     store,
		Logger:   logger,
		Interval: cfg.Simulation.StatsRefreshInterval,
	}
	go func() {
		if err := updater.Run(ctx); err != nil && err != context.Canceled {
			logger.Warn("stats updater stopped", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// authMiddleware protects /api and /swagger with a static bearer token when
// one is configured. Health endpoints stay open.
func authMiddleware(token string) gin.HandlerFunc {
	token = strings.TrimSpace(token)
	if token == "" {
		return func(c *gin.Context) { c.Next() }
	}
	want := "Bearer " + token
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/healthz" || p == "/readyz" {
			c.Next()
			return
		}
		if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/swagger") {
			if strings.TrimSpace(c.GetHeader("Authorization")) != want {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
				return
			}
		}
		c.Next()
	}
}
