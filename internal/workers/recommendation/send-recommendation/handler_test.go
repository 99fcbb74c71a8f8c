// internal/workers/recommendation/send-recommendation/handler_test.go
package sendrecommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockUserStateStore struct {
	UpsertErr error
	Upserted  []models.UserState
}

func (m *MockUserStateStore) Get(context.Context, string) (*models.UserState, error) {
	return nil, nil
}

func (m *MockUserStateStore) Upsert(_ context.Context, state models.UserState) error {
	m.Upserted = append(m.Upserted, state)
	return m.UpsertErr
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		EmailEnabled: true,
		FromEmail:    "concierge@example.com",
		ToEmail:      "diner@example.com",
		Subject:      DefaultSubject,
		Timeout:      5 * time.Second,
	}
}

const (
	blockOne = "\n------------------------------------------\nOption 1:\nName: Joe's Shanghai\nCuisine: Chinese\nAddress: 46 Bowery\nRating: 4.5\n------------------------------------------\n"
	blockTwo = "\n------------------------------------------\nOption 2:\nName: Nom Wah Tea Parlor\nCuisine: Chinese\nAddress: 13 Doyers St\nRating: 4\n------------------------------------------\n"
)

func successSES(captured **ses.SendEmailInput) *MockSESService {
	return &MockSESService{
		SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			*captured = params
			return &ses.SendEmailOutput{MessageId: aws.String("ses-msg-1")}, nil
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	var sent *ses.SendEmailInput
	states := &MockUserStateStore{}
	h := NewHandler(createTestConfig(), successSES(&sent), states, logger.NewTestLogger(t))
	h.pick = func(n int) int { return n - 1 }

	out, err := h.Execute(context.Background(), &Input{
		UserID:          "user-42",
		Recommendations: []string{blockOne, blockTwo},
	})
	require.NoError(t, err)

	assert.True(t, out.EmailSent)
	assert.True(t, out.StateUpdated)
	assert.Equal(t, "ses-msg-1", out.MessageID)
	assert.Equal(t, "Name: Nom Wah Tea Parlor\nCuisine: Chinese\nAddress: 13 Doyers St\nRating: 4", out.Selected)

	require.Len(t, states.Upserted, 1)
	assert.Equal(t, models.UserState{UserID: "user-42", RecentRecommendation: out.Selected}, states.Upserted[0])

	require.NotNil(t, sent)
	assert.Equal(t, []string{"diner@example.com"}, sent.Destination.ToAddresses)
	assert.Equal(t, "concierge@example.com", aws.ToString(sent.Source))
	assert.Equal(t, "Recommended Restaurants", aws.ToString(sent.Message.Subject.Data))
	assert.Equal(t, blockOne+"\n"+blockTwo, aws.ToString(sent.Message.Body.Text.Data))
	assert.Nil(t, sent.Message.Body.Html)
}

func TestHandler_Execute_StateFailureStillSends(t *testing.T) {
	var sent *ses.SendEmailInput
	states := &MockUserStateStore{UpsertErr: errors.New("redis down")}
	h := NewHandler(createTestConfig(), successSES(&sent), states, logger.NewTestLogger(t))
	h.pick = func(int) int { return 0 }

	out, err := h.Execute(context.Background(), &Input{UserID: "user-42", Recommendations: []string{blockOne}})
	require.NoError(t, err)
	assert.False(t, out.StateUpdated)
	assert.True(t, out.EmailSent)
	assert.NotNil(t, sent)
}

func TestHandler_Execute_EmptyUserIDSkipsState(t *testing.T) {
	var sent *ses.SendEmailInput
	states := &MockUserStateStore{}
	h := NewHandler(createTestConfig(), successSES(&sent), states, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Recommendations: []string{blockOne}})
	require.NoError(t, err)
	assert.Empty(t, states.Upserted)
	assert.False(t, out.StateUpdated)
	assert.True(t, out.EmailSent)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_SendFailure(t *testing.T) {
	mockSES := &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("MessageRejected: Email address is not verified")
		},
	}
	h := NewHandler(createTestConfig(), mockSES, &MockUserStateStore{}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{UserID: "user-42", Recommendations: []string{blockOne}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotificationSendFailed)
	assert.Equal(t, apperrors.ErrCodeNotificationSendFailed, apperrors.CodeOf(err))
	require.NotNil(t, out)
	assert.False(t, out.EmailSent)
	assert.True(t, out.StateUpdated)
}

func TestHandler_Execute_NoRecommendations(t *testing.T) {
	mockSES := &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			t.Fatal("email must not be sent without recommendations")
			return nil, nil
		},
	}
	h := NewHandler(createTestConfig(), mockSES, &MockUserStateStore{}, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{UserID: "user-42"})
	assert.ErrorIs(t, err, ErrNoRecommendations)
}

func TestHandler_Execute_EmailDisabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.EmailEnabled = false
	mockSES := &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			t.Fatal("email disabled")
			return nil, nil
		},
	}
	h := NewHandler(cfg, mockSES, &MockUserStateStore{}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{UserID: "u", Recommendations: []string{blockOne}})
	require.NoError(t, err)
	assert.False(t, out.EmailSent)
	assert.True(t, out.StateUpdated)
}

// ==========================
// Formatting Tests
// ==========================

func TestStripLabels(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full block", blockOne, "Name: Joe's Shanghai\nCuisine: Chinese\nAddress: 46 Bowery\nRating: 4.5"},
		{"double digit option", "Option 12:  Name: X", "Name: X"},
		{"hyphens in names are removed", "Name: Wu-Tang Noodles", "Name: WuTang Noodles"},
		{"plain text", "  Name: Carbone  ", "Name: Carbone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripLabels(tt.input))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, createTestConfig().Validate())

	cfg := createTestConfig()
	cfg.ToEmail = ""
	assert.Error(t, cfg.Validate())

	cfg.EmailEnabled = false
	assert.NoError(t, cfg.Validate())
}
