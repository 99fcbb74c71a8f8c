// cmd/chat-frontend/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/lex"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/repository"
	chatfrontend "dining-concierge/internal/workers/conversation/chat-frontend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if err := cfg.ValidateFor(config.ComponentFrontend); err != nil {
		zapLog.Fatal("invalid configuration", zap.Error(err))
	}

	if cfg.AWS.Tracing {
		if err := aws.EnableTracing("", cfg.App.Version); err != nil {
			zapLog.Warn("x-ray tracing disabled", zap.Error(err))
		}
	}

	ctx := context.Background()
	awsCfg, err := aws.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		zapLog.Fatal("aws config failed", zap.Error(err))
	}

	states, closeStates, err := repository.NewUserStateStore(ctx, cfg, aws.NewDynamoDBClient(awsCfg))
	if err != nil {
		zapLog.Fatal("user state store failed", zap.Error(err))
	}
	defer closeStates()

	handlerCfg := chatfrontend.LoadConfig(cfg)
	if err := handlerCfg.Validate(); err != nil {
		zapLog.Fatal("invalid chat-frontend configuration", zap.Error(err))
	}
	handler := chatfrontend.NewHandler(handlerCfg, lex.NewClient(awsCfg, cfg.Lex), states, log)

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(handler.HandleAPIGateway)
		return
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              handlerCfg.ListenAddress,
		Handler:           chatfrontend.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("chat front-end listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}
	zapLog.Info("chat front-end stopped")
}
