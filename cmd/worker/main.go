// Package main runs the outbound email worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/momo-deepdive/backend/config"
	"github.com/momo-deepdive/backend/internal/worker"
	"github.com/momo-deepdive/backend/pkg/queue"
	"github.com/momo-deepdive/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if cfg.Email.SMTPHost == "" {
		logger.Fatal("SMTP_HOST not configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	sender := worker.NewSMTPSender(worker.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUser,
		Password: cfg.Email.SMTPPass,
		From:     cfg.Email.FromAddress,
	})
	processor := worker.NewEmailProcessor(sender, queue.NewQueue(rdb.Client, logger), logger)

	go processor.Run(ctx)
	logger.Info("email worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	logger.Info("email worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
