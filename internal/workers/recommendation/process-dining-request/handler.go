// internal/workers/recommendation/process-dining-request/handler.go
package processdiningrequest

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	commonaws "dining-concierge/internal/common/aws"
	apperrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/common/observability"
	"dining-concierge/internal/common/queue"
	"dining-concierge/internal/common/validation"
	"dining-concierge/internal/models"
	fetchrecommendations "dining-concierge/internal/workers/recommendation/fetch-recommendations"
	sendrecommendation "dining-concierge/internal/workers/recommendation/send-recommendation"
)

const (
	TaskType = "process-dining-request"
)

// Queue is the consuming side of the request queue.
type Queue interface {
	Dequeue(ctx context.Context) (*queue.Message, error)
	Delete(ctx context.Context, receiptHandle string) error
}

type Fetcher interface {
	Execute(ctx context.Context, input *fetchrecommendations.Input) (*fetchrecommendations.Output, error)
}

type Notifier interface {
	Execute(ctx context.Context, input *sendrecommendation.Input) (*sendrecommendation.Output, error)
}

type Handler struct {
	config     *Config
	queue      Queue
	fetcher    Fetcher
	notifier   Notifier
	validator  *validation.Validator
	errHandler *apperrors.ErrorHandler
	obs        *observability.Observability
	logger     logger.Logger
}

func NewHandler(config *Config, q Queue, fetcher Fetcher, notifier Notifier, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		queue:      q,
		fetcher:    fetcher,
		notifier:   notifier,
		validator:  validation.MustDiningRequestValidator(),
		errHandler: apperrors.NewErrorHandler(log),
		obs:        obs,
		logger:     log,
	}
}

// Handle is the Lambda entry point for scheduled invocations. Failures are reported in the
// output, never as an invocation error.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) (*Output, error) {
	out, _ := h.Execute(ctx)
	return out, nil
}

// Execute processes at most one queued dining request. The returned error is set only for
// the failed status and is already logged.
func (h *Handler) Execute(ctx context.Context) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	ctx, done := commonaws.BeginSegment(ctx, TaskType)
	start := time.Now()

	out, err := h.execute(ctx)
	done(err)

	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType, out.Status).Inc()
	h.obs.RecordJobProcessed(ctx, out.Status)
	h.obs.RecordJobDuration(ctx, time.Since(start), out.Status)

	if err != nil {
		stdErr := h.errHandler.Handle(TaskType, out.MessageID, err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		out.ErrorCode = string(stdErr.Code)
		return out, stdErr
	}
	return out, nil
}

func (h *Handler) execute(ctx context.Context) (*Output, error) {
	msg, err := h.queue.Dequeue(ctx)
	if err != nil {
		return &Output{Status: StatusFailed}, err
	}
	if msg == nil {
		h.logger.Debug("request queue is empty", nil)
		return &Output{Status: StatusNoWork}, nil
	}

	log := h.logger.WithFields(map[string]interface{}{"messageId": msg.ID})
	out := &Output{MessageID: msg.ID}

	request, invalid := h.parse(msg.Body)
	if invalid != nil {
		log.Warn("discarding malformed dining request", map[string]interface{}{
			"reason": invalid.Details,
		})
		if err := h.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
			out.Status = StatusFailed
			return out, err
		}
		out.Status = StatusDiscarded
		return out, nil
	}

	log.Info("processing dining request", map[string]interface{}{
		"cuisine":  request.Cuisine,
		"location": request.Location,
		"userId":   request.UserID,
	})

	fetched, err := h.fetcher.Execute(ctx, &fetchrecommendations.Input{Cuisine: request.Cuisine})
	if err != nil {
		out.Status = StatusFailed
		return out, err
	}
	if len(fetched.Recommendations) == 0 {
		log.Info("no recommendations found, leaving message for redelivery", map[string]interface{}{
			"cuisine": request.Cuisine,
		})
		out.Status = StatusNoRecommendations
		return out, nil
	}
	out.Recommendations = fetched.Recommendations

	if _, err := h.notifier.Execute(ctx, &sendrecommendation.Input{
		UserID:          request.UserID,
		Recommendations: fetched.Recommendations,
	}); err != nil {
		out.Status = StatusFailed
		return out, err
	}

	if err := h.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
		out.Status = StatusFailed
		return out, err
	}

	log.Info("dining request processed", map[string]interface{}{
		"recommendations": len(fetched.Recommendations),
	})
	out.Status = StatusProcessed
	return out, nil
}

// parse decodes and schema-checks a queue body.
func (h *Handler) parse(body string) (*models.DiningRequest, *apperrors.StandardError) {
	result, err := h.validator.ValidateJSON([]byte(body))
	if err != nil {
		return nil, apperrors.NewMessageInvalidError(err.Error())
	}
	if !result.Valid {
		return nil, apperrors.NewMessageInvalidError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var request models.DiningRequest
	if err := json.Unmarshal([]byte(body), &request); err != nil {
		return nil, apperrors.NewMessageInvalidError(err.Error())
	}
	return &request, nil
}
