package app

import (
	"context"
	"database/sql"
	"net/http"

	"go-personnel/internal/config"
	"go-personnel/internal/metrics"
	"go-personnel/internal/middleware"
	"go-personnel/internal/shared/connection"
	"go-personnel/internal/shared/migration"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const redisRetries = 5

type resources struct {
	gormDB *gorm.DB
	db     *sql.DB
	rdb    *redis.Client
}

func (i *resources) Close() {
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

func connect(cfg *config.Config, logger *zap.Logger, withRedis bool) (*resources, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	in := &resources{gormDB: gormDB, db: sqlDB}

	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, redisRetries, logger)
		if err != nil {
			in.Close()
			return nil, err
		}
		in.rdb = rdb
	}
	return in, nil
}

// BuildApp connects the infrastructure, applies migrations when enabled and returns the
// router with every module registered. The returned func releases the connections.
func BuildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	in, err := connect(cfg, logger, true)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Migrate.Auto {
		if err := migration.Run(in.db, logger); err != nil {
			in.Close()
			return nil, nil, err
		}
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Metrics(),
	)

	router.GET("/healthz", func(c *gin.Context) {
		if err := in.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "database": err.Error()})
			return
		}
		_ = metrics.UpdateDatabaseConnections(in.db)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	if err := registerModules(ctx, router, cfg, in, logger); err != nil {
		in.Close()
		return nil, nil, err
	}

	return router, in.Close, nil
}
