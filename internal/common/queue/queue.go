// Package queue wraps the FIFO request queue shared by the dispatcher and the worker.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"dining-concierge/internal/common/config"
	apperrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
)

// SQSAPI is the subset of the SQS client the queue needs.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Message is one received queue message.
type Message struct {
	ID            string
	Body          string
	ReceiptHandle string
}

// Client sends, receives and deletes dining requests.
type Client struct {
	api      SQSAPI
	url      string
	groupID  string
	waitTime int32
	logger   logger.Logger
	newDedup func() string
}

func NewClient(api SQSAPI, cfg config.QueueConfig, log logger.Logger) *Client {
	groupID := cfg.MessageGroupID
	if groupID == "" {
		groupID = "DiningRequests"
	}
	wait := cfg.WaitTimeSeconds
	if wait <= 0 || wait > 20 {
		wait = 20
	}
	return &Client{
		api:      api,
		url:      cfg.URL,
		groupID:  groupID,
		waitTime: int32(wait),
		logger:   log.WithFields(map[string]interface{}{"component": "queue"}),
		newDedup: func() string { return uuid.New().String() },
	}
}

// Enqueue marshals body to JSON and sends it with the configured group id and a fresh
// deduplication token.
func (c *Client) Enqueue(ctx context.Context, body any) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", apperrors.NewQueueSendFailedError(fmt.Errorf("marshal body: %w", err))
	}

	out, err := c.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:               aws.String(c.url),
		MessageBody:            aws.String(string(payload)),
		MessageGroupId:         aws.String(c.groupID),
		MessageDeduplicationId: aws.String(c.newDedup()),
	})
	if err != nil {
		metrics.QueueMessages.WithLabelValues("send", "error").Inc()
		return "", apperrors.NewQueueSendFailedError(err)
	}

	metrics.QueueMessages.WithLabelValues("send", "ok").Inc()
	messageID := aws.ToString(out.MessageId)
	c.logger.Info("message enqueued", map[string]interface{}{"messageId": messageID})
	return messageID, nil
}

// Dequeue long-polls for at most one message. It returns (nil, nil) when the queue is empty.
func (c *Client) Dequeue(ctx context.Context) (*Message, error) {
	out, err := c.api.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.url),
		MaxNumberOfMessages: 1,
		WaitTimeSeconds:     c.waitTime,
	})
	if err != nil {
		metrics.QueueMessages.WithLabelValues("receive", "error").Inc()
		return nil, apperrors.NewQueueReceiveFailedError(err)
	}
	if len(out.Messages) == 0 {
		metrics.QueueMessages.WithLabelValues("receive", "empty").Inc()
		return nil, nil
	}

	metrics.QueueMessages.WithLabelValues("receive", "ok").Inc()
	m := out.Messages[0]
	return &Message{
		ID:            aws.ToString(m.MessageId),
		Body:          aws.ToString(m.Body),
		ReceiptHandle: aws.ToString(m.ReceiptHandle),
	}, nil
}

// Delete removes a processed message by receipt handle.
func (c *Client) Delete(ctx context.Context, receiptHandle string) error {
	_, err := c.api.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.url),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		metrics.QueueMessages.WithLabelValues("delete", "error").Inc()
		return apperrors.NewQueueDeleteFailedError(err)
	}
	metrics.QueueMessages.WithLabelValues("delete", "ok").Inc()
	return nil
}
