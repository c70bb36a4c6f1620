package main

import (
	"context"
	"flag"

	"go-personnel/internal/app"
	"go-personnel/internal/bootstrap"
	"go-personnel/internal/config"
	"go-personnel/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	gin.SetMode(gin.ReleaseMode)

	router, cleanup, err := app.BuildApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	if err := bootstrap.StartHTTPServer(router, cfg.Server, bootstrap.NewStdoutAuditLogger(logger), logger); err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
