package dispatchintent

import (
	"context"
	"fmt"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
)

const (
	TaskType = "dispatch-intent"
)

// Enqueuer accepts a dining request for asynchronous processing.
type Enqueuer interface {
	Enqueue(ctx context.Context, body any) (string, error)
}

type Handler struct {
	config *Config
	queue  Enqueuer
	logger logger.Logger
}

func NewHandler(config *Config, queue Enqueuer, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		queue:  queue,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Handle is the Lambda entry point. It never returns an error: every failure is folded into
// a dialog response.
func (h *Handler) Handle(ctx context.Context, event Event) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()
	return h.Execute(ctx, &event)
}

// Execute routes the event by intent name.
func (h *Handler) Execute(ctx context.Context, event *Event) (*Response, error) {
	sessionID := event.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	intent := h.currentIntent(event)
	h.logger.Info("dispatching intent", map[string]interface{}{
		"sessionId": sessionID,
		"intent":    intent.Name,
	})

	var resp *Response
	switch intent.Name {
	case IntentGreeting:
		resp = closeResponse(intent, StateFulfilled, GreetingMessage)
	case IntentThankYou:
		resp = closeResponse(intent, StateFulfilled, ThankYouMessage)
	case IntentDiningSuggestions:
		resp = h.handleDiningSuggestions(ctx, event, intent, sessionID)
	default:
		resp = closeResponse(intent, StateFailed, FallbackMessage)
	}

	metrics.DialogActions.WithLabelValues(intentLabel(intent.Name), resp.SessionState.DialogAction.Type).Inc()
	return resp, nil
}

// currentIntent prefers the top interpretation and falls back to the session intent.
func (h *Handler) currentIntent(event *Event) Intent {
	if len(event.Interpretations) > 0 && event.Interpretations[0].Intent.Name != "" {
		return event.Interpretations[0].Intent
	}
	if event.SessionState.Intent != nil {
		return *event.SessionState.Intent
	}
	return Intent{}
}

func (h *Handler) handleDiningSuggestions(ctx context.Context, event *Event, intent Intent, sessionID string) *Response {
	intent.Name = IntentDiningSuggestions
	attrs := event.SessionState.SessionAttributes

	values := make(map[string]string, len(RequiredSlots))
	for _, slot := range RequiredSlots {
		value, ok := slotValue(intent.Slots, slot.Name)
		if !ok {
			return elicitSlot(attrs, intent, slot.Name, slot.Prompt)
		}
		if valid, msg := ValidateSlot(slot.Name, value); !valid {
			h.logger.Info("slot rejected", map[string]interface{}{
				"slot":  slot.Name,
				"value": value,
			})
			return elicitSlot(attrs, intent, slot.Name, msg)
		}
		values[slot.Name] = value
	}

	request := models.DiningRequest{
		Location:   values[SlotLocation],
		Cuisine:    Capitalize(values[SlotCuisine]),
		DiningTime: values[SlotDiningTime],
		NumPeople:  values[SlotNumPeople],
		Email:      values[SlotEmail],
		UserID:     sessionID,
	}

	messageID, err := h.queue.Enqueue(ctx, request)
	if err != nil {
		h.logger.Error("failed to enqueue dining request", map[string]interface{}{
			"error":     err,
			"sessionId": sessionID,
		})
	} else {
		h.logger.Info("dining request enqueued", map[string]interface{}{
			"messageId": messageID,
			"sessionId": sessionID,
			"cuisine":   request.Cuisine,
		})
	}

	msg := fmt.Sprintf(
		"Got it! I've noted your request for a %s restaurant in %s for %s people at %s. You'll receive an email with my suggestions at %s soon.",
		values[SlotCuisine], values[SlotLocation], values[SlotNumPeople], values[SlotDiningTime], values[SlotEmail],
	)
	return closeResponse(intent, StateFulfilled, msg)
}

func elicitSlot(attrs map[string]string, intent Intent, slot, message string) *Response {
	return &Response{
		SessionState: SessionState{
			DialogAction:      &DialogAction{Type: ActionElicitSlot, SlotToElicit: slot},
			Intent:            &Intent{Name: intent.Name, Slots: intent.Slots},
			SessionAttributes: attrs,
		},
		Messages: []Message{{ContentType: "PlainText", Content: message}},
	}
}

func closeResponse(intent Intent, state, message string) *Response {
	return &Response{
		SessionState: SessionState{
			DialogAction: &DialogAction{Type: ActionClose},
			Intent:       &Intent{Name: intent.Name, Slots: intent.Slots, State: state},
		},
		Messages: []Message{{ContentType: "PlainText", Content: message}},
	}
}

// intentLabel bounds metric cardinality to the known intents.
func intentLabel(name string) string {
	switch name {
	case IntentGreeting, IntentThankYou, IntentDiningSuggestions:
		return name
	default:
		return "other"
	}
}
