// cmd/recommendation-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/observability"
	"dining-concierge/internal/common/queue"
	"dining-concierge/internal/repository"
	fr "dining-concierge/internal/workers/recommendation/fetch-recommendations"
	pdr "dining-concierge/internal/workers/recommendation/process-dining-request"
	sr "dining-concierge/internal/workers/recommendation/send-recommendation"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if err := cfg.ValidateFor(config.ComponentWorker); err != nil {
		zapLog.Fatal("invalid configuration", zap.Error(err))
	}

	lambdaMode := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	if cfg.AWS.Tracing {
		if err := aws.EnableTracing("", cfg.App.Version); err != nil {
			zapLog.Warn("x-ray tracing disabled", zap.Error(err))
		}
	}

	obs := observability.NewNoop()
	if cfg.Metrics.Enabled && !lambdaMode {
		obs = observability.New("recommendation-worker")
	}
	defer obs.Shutdown()

	ctx := context.Background()
	awsCfg, err := aws.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		zapLog.Fatal("aws config failed", zap.Error(err))
	}
	dynamo := aws.NewDynamoDBClient(awsCfg)

	// --- Init Elasticsearch with retry ---
	var es *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return es.Ping()
	}, 5, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}

	// --- Init stores with retry ---
	var restaurants repository.RestaurantRepository
	var closeRestaurants repository.CloseFunc
	err = retryWithBackoff(func() error {
		var err error
		restaurants, closeRestaurants, err = repository.NewRestaurantStore(ctx, cfg, dynamo)
		return err
	}, 5, 2*time.Second, zapLog, "Restaurant store connection")
	if err != nil {
		zapLog.Fatal("restaurant store failed after retries", zap.Error(err))
	}
	defer closeRestaurants()

	var states repository.UserStateRepository
	var closeStates repository.CloseFunc
	err = retryWithBackoff(func() error {
		var err error
		states, closeStates, err = repository.NewUserStateStore(ctx, cfg, dynamo)
		return err
	}, 5, 2*time.Second, zapLog, "User state store connection")
	if err != nil {
		zapLog.Fatal("user state store failed after retries", zap.Error(err))
	}
	defer closeStates()

	// --- Wire the pipeline ---
	fetchCfg := fr.LoadConfig(cfg)
	sendCfg := sr.LoadConfig(cfg)
	pipelineCfg := pdr.LoadConfig(cfg)
	for name, v := range map[string]interface{ Validate() error }{
		fr.TaskType:  fetchCfg,
		sr.TaskType:  sendCfg,
		pdr.TaskType: pipelineCfg,
	} {
		if err := v.Validate(); err != nil {
			zapLog.Fatal("invalid handler configuration", zap.String("taskType", name), zap.Error(err))
		}
	}

	fetcher := fr.NewHandler(fetchCfg, es.Client, restaurants, log)
	notifier := sr.NewHandler(sendCfg, aws.NewSESClient(awsCfg), states, log)
	q := queue.NewClient(aws.NewSQSClient(awsCfg), cfg.Queue, log)
	pipeline := pdr.NewHandler(pipelineCfg, q, fetcher, notifier, obs, log)

	if lambdaMode {
		lambda.Start(pipeline.Handle)
		return
	}

	if !pipelineCfg.Enabled {
		zapLog.Info("worker disabled", zap.String("taskType", pdr.TaskType))
		return
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := startHealthServer(cfg.Metrics.ListenAddress, zapLog)

	zapLog.Info("recommendation worker polling",
		zap.String("queue", cfg.Queue.URL),
		zap.Duration("pollInterval", pipelineCfg.PollInterval),
	)
	poll(runCtx, pipeline, pipelineCfg.PollInterval)

	zapLog.Info("Shutdown signal received, stopping worker...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("health server shutdown failed", zap.Error(err))
	}
	zapLog.Info("recommendation worker stopped")
}

// poll runs one pipeline pass at a time. It goes straight to the next message after a
// processed or discarded one and waits interval otherwise.
func poll(ctx context.Context, pipeline *pdr.Handler, interval time.Duration) {
	for {
		if ctx.Err() != nil {
			return
		}

		out, _ := pipeline.Execute(ctx)
		if out.Status == pdr.StatusProcessed || out.Status == pdr.StatusDiscarded {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

func startHealthServer(addr string, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info("Health/Metrics server listening", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
