// cmd/dining-dispatcher/main.go
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/queue"
	dispatchintent "dining-concierge/internal/workers/conversation/dispatch-intent"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if err := cfg.ValidateFor(config.ComponentDispatcher); err != nil {
		zapLog.Fatal("invalid configuration", zap.Error(err))
	}

	if cfg.AWS.Tracing {
		if err := aws.EnableTracing("", cfg.App.Version); err != nil {
			zapLog.Warn("x-ray tracing disabled", zap.Error(err))
		}
	}

	awsCfg, err := aws.LoadConfig(context.Background(), cfg.AWS)
	if err != nil {
		zapLog.Fatal("aws config failed", zap.Error(err))
	}

	handlerCfg := dispatchintent.LoadConfig(cfg)
	if err := handlerCfg.Validate(); err != nil {
		zapLog.Fatal("invalid dispatch-intent configuration", zap.Error(err))
	}

	q := queue.NewClient(aws.NewSQSClient(awsCfg), cfg.Queue, log)
	handler := dispatchintent.NewHandler(handlerCfg, q, log)

	zapLog.Info("dining dispatcher ready", zap.String("queue", cfg.Queue.URL))
	lambda.Start(handler.Handle)
}
