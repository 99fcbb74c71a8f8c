// internal/workers/conversation/chat-frontend/handler.go
package chatfrontend

import (
	"context"
	"errors"
	"time"

	"dining-concierge/internal/common/lex"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/repository"

	"github.com/google/uuid"
)

const (
	TaskType = "chat-frontend"
)

var (
	ErrNoMessage = errors.New(NoMessageError)
)

// Recognizer sends one user utterance to the intent service.
type Recognizer interface {
	RecognizeText(ctx context.Context, sessionID, text string) (*lex.RecognizeTextOutput, error)
}

type Handler struct {
	config     *Config
	recognizer Recognizer
	states     repository.UserStateRepository
	logger     logger.Logger
	now        func() time.Time
}

func NewHandler(config *Config, recognizer Recognizer, states repository.UserStateRepository, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		recognizer: recognizer,
		states:     states,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:        time.Now,
	}
}

// Execute relays the first message to the intent service and shapes its reply. Only a
// request without messages is an error; intent service and state store failures turn into
// reply text.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || len(input.Messages) == 0 {
		return nil, ErrNoMessage
	}
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()
	return h.execute(ctx, input.Messages[0].Unstructured), nil
}

func (h *Handler) execute(ctx context.Context, msg InboundUnstructured) *Output {
	sessionID := msg.UserID
	if sessionID == "" {
		sessionID = uuid.New().String()
		h.logger.Warn("request has no userId, using a one-off session", map[string]interface{}{
			"sessionId": sessionID,
		})
	}

	text, intent := h.recognize(ctx, sessionID, msg.Text)

	if intent == GreetingIntent && msg.UserID != "" {
		if rec := h.recentRecommendation(ctx, msg.UserID); rec != "" {
			text += LastSearchAddendum + rec
		}
	}

	return &Output{
		Messages: []OutboundMessage{{
			Type: MessageTypeUnstructured,
			Unstructured: OutboundUnstructured{
				ID:        msg.UserID,
				Text:      text,
				Timestamp: h.now().Format(time.RFC3339),
			},
		}},
	}
}

func (h *Handler) recognize(ctx context.Context, sessionID, text string) (string, string) {
	resp, err := h.recognizer.RecognizeText(ctx, sessionID, text)
	if err != nil {
		h.logger.Error("intent service call failed", map[string]interface{}{
			"sessionId": sessionID,
			"error":     err,
		})
		return ServiceTroubleMessage, ""
	}
	if len(resp.Messages) == 0 {
		return NotCaughtMessage, ""
	}
	return resp.Messages[0].Content, resp.IntentName()
}

// recentRecommendation returns "" when the user has no state or the lookup fails.
func (h *Handler) recentRecommendation(ctx context.Context, userID string) string {
	state, err := h.states.Get(ctx, userID)
	if err != nil {
		h.logger.Error("user state lookup failed", map[string]interface{}{
			"userId": userID,
			"error":  err,
		})
		return ""
	}
	if state == nil {
		return ""
	}
	return state.RecentRecommendation
}
