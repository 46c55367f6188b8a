package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dunamismax/pngwebp/internal/batch"
	"github.com/dunamismax/pngwebp/internal/config"
	"github.com/dunamismax/pngwebp/internal/pipeline"
	"github.com/dunamismax/pngwebp/internal/telemetry"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		bootstrap, _ := zap.NewDevelopment()
		bootstrap.Error("load config failed", zap.Error(err))
		_ = bootstrap.Sync()
		return 1
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("build logger: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.Trace, os.Stderr, logger)
	if err != nil {
		logger.Error("tracing setup failed", zap.Error(err))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	if err := pipeline.Startup(); err != nil {
		logger.Error("image runtime startup failed", zap.Error(err))
		return 1
	}
	defer pipeline.Shutdown()

	logger.Info("starting",
		zap.String("source_dir", cfg.Paths.SourceDir),
		zap.String("dest_dir", cfg.Paths.DestDir),
		zap.Int("max_width", cfg.Encode.MaxWidth),
		zap.Int("quality", cfg.Encode.Quality),
		zap.Int("method", cfg.Encode.Method),
		zap.String("backend", pipeline.Backend()),
	)

	runner, err := batch.NewRunner(logger, cfg, os.Stdout)
	if err != nil {
		logger.Error("initialize runner failed", zap.Error(err))
		return 1
	}

	if _, err := runner.Run(ctx); err != nil {
		logger.Error("optimize failed", zap.Error(err))
		return 1
	}
	return 0
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named("optimize"), nil
}
