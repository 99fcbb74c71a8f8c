package lex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dining-concierge/internal/common/config"
	apperrors "dining-concierge/internal/common/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(endpoint string) *Client {
	awsCfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
	}
	return NewClient(awsCfg, config.LexConfig{
		BotID:      "BOT1",
		BotAliasID: "ALIAS1",
		LocaleID:   "en_US",
		Endpoint:   endpoint,
		Timeout:    2000,
	})
}

func TestRecognizeText_SignsAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bots/BOT1/botAliases/ALIAS1/botLocales/en_US/sessions/user-42/text", r.URL.Path)

		auth := r.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(auth, "AWS4-HMAC-SHA256 "), auth)
		assert.Contains(t, auth, "/us-east-1/lex/aws4_request")
		assert.NotEmpty(t, r.Header.Get("X-Amz-Date"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hello", in["text"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"sessionId": "user-42",
			"messages": [{"content": "Hi there! How can I assist you with finding a restaurant today?", "contentType": "PlainText"}],
			"sessionState": {"intent": {"name": "GreetingIntent", "state": "Fulfilled"}}
		}`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).RecognizeText(context.Background(), "user-42", "hello")
	require.NoError(t, err)
	require.Len(t, out.Messages, 1)
	assert.Equal(t, "GreetingIntent", out.IntentName())
	assert.Contains(t, out.Messages[0].Content, "Hi there!")
}

func TestRecognizeText_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"denied"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).RecognizeText(context.Background(), "u", "hi")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeIntentRecognitionFailed, apperrors.CodeOf(err))
}

func TestIntentName_NoIntent(t *testing.T) {
	var out *RecognizeTextOutput
	assert.Equal(t, "", out.IntentName())
	assert.Equal(t, "", (&RecognizeTextOutput{}).IntentName())
}

func TestIntentName_PrefersTopInterpretation(t *testing.T) {
	out := &RecognizeTextOutput{
		Interpretations: []Interpretation{{Intent: Intent{Name: "GreetingIntent"}}, {Intent: Intent{Name: "FallbackIntent"}}},
		SessionState:    SessionState{Intent: &Intent{Name: "ThankYouIntent"}},
	}
	assert.Equal(t, "GreetingIntent", out.IntentName())

	out.Interpretations = nil
	assert.Equal(t, "ThankYouIntent", out.IntentName())
}
