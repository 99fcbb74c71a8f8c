// internal/workers/recommendation/send-recommendation/handler.go
package sendrecommendation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	commonaws "dining-concierge/internal/common/aws"
	apperrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
	"dining-concierge/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	TaskType = "send-recommendation"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
	ErrNoRecommendations      = errors.New("no recommendations to send")
)

// SESService is the subset of *ses.Client used here.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

var labelPattern = regexp.MustCompile(`-+|Option \d+:\s*`)

type Handler struct {
	config    *Config
	sesClient SESService
	states    repository.UserStateRepository
	logger    logger.Logger
	pick      func(n int) int
}

func NewHandler(config *Config, sesClient SESService, states repository.UserStateRepository, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		sesClient: sesClient,
		states:    states,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		pick:      rand.IntN,
	}
}

// Execute records one randomly chosen recommendation as the user's latest and mails the full
// list. A failed state write is logged and does not stop the email. A failed send is returned
// and is not retried here.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if len(input.Recommendations) == 0 {
		return nil, ErrNoRecommendations
	}

	out := &Output{
		Selected: StripLabels(input.Recommendations[h.pick(len(input.Recommendations))]),
	}
	out.StateUpdated = h.updateState(ctx, input.UserID, out.Selected)

	if !h.config.EmailEnabled {
		h.logger.Info("email disabled, skipping send", nil)
		return out, nil
	}

	messageID, err := h.sendEmail(ctx, strings.Join(input.Recommendations, "\n"))
	if err != nil {
		return out, apperrors.NewNotificationSendFailedError("email", fmt.Errorf("%w: %v", ErrNotificationSendFailed, err))
	}
	out.EmailSent = true
	out.MessageID = messageID

	h.logger.Info("recommendation email sent", map[string]interface{}{
		"messageId": messageID,
		"count":     len(input.Recommendations),
	})
	return out, nil
}

func (h *Handler) updateState(ctx context.Context, userID, recommendation string) bool {
	if userID == "" {
		h.logger.Warn("request has no userId, skipping user state update", nil)
		return false
	}

	ctx, done := commonaws.BeginSubsegment(ctx, "SendRecommendation.UpdateUserState")
	err := h.states.Upsert(ctx, models.UserState{UserID: userID, RecentRecommendation: recommendation})
	done(err)
	if err != nil {
		h.logger.Error("user state update failed", map[string]interface{}{
			"userId": userID,
			"error":  err,
		})
		return false
	}
	return true
}

func (h *Handler) sendEmail(ctx context.Context, body string) (string, error) {
	subject := h.config.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	ctx, done := commonaws.BeginSubsegment(ctx, "SendRecommendation.SendEmail")
	resp, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{h.config.ToEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	done(err)
	if err != nil {
		return "", err
	}
	return aws.ToString(resp.MessageId), nil
}

// StripLabels removes separator runs and "Option N:" labels from a recommendation block.
func StripLabels(block string) string {
	return strings.TrimSpace(labelPattern.ReplaceAllString(block, ""))
}
