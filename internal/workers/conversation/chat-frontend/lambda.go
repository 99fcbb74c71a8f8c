// internal/workers/conversation/chat-frontend/lambda.go
package chatfrontend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

var responseHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,X-Api-Key,Authorization",
	"Access-Control-Allow-Methods": "OPTIONS,POST",
}

// HandleAPIGateway serves the chat turn behind an API Gateway proxy integration.
func (h *Handler) HandleAPIGateway(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var input Input
	if req.Body != "" {
		if err := json.Unmarshal([]byte(req.Body), &input); err != nil {
			h.logger.Warn("invalid chat request body", map[string]interface{}{"error": err})
			return jsonResponse(http.StatusBadRequest, NoMessageError), nil
		}
	}

	out, err := h.Execute(ctx, &input)
	if errors.Is(err, ErrNoMessage) {
		return jsonResponse(http.StatusBadRequest, NoMessageError), nil
	}
	return jsonResponse(http.StatusOK, out), nil
}

func jsonResponse(status int, body interface{}) events.APIGatewayProxyResponse {
	payload, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders,
		Body:       string(payload),
	}
}
