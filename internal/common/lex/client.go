// Package lex calls the Lex V2 runtime RecognizeText operation over SigV4-signed HTTPS.
package lex

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dining-concierge/internal/common/config"
	apperrors "dining-concierge/internal/common/errors"
	apphttp "dining-concierge/internal/common/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

const signingService = "lex"

// Message is one bot reply.
type Message struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

// Intent is the intent the bot resolved for the turn.
type Intent struct {
	Name  string `json:"name"`
	State string `json:"state,omitempty"`
}

type SessionState struct {
	Intent            *Intent           `json:"intent,omitempty"`
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
}

type Interpretation struct {
	Intent Intent `json:"intent"`
}

// RecognizeTextOutput is the subset of the runtime response the front-end consumes.
type RecognizeTextOutput struct {
	Messages        []Message        `json:"messages"`
	Interpretations []Interpretation `json:"interpretations"`
	SessionState    SessionState     `json:"sessionState"`
	SessionID       string           `json:"sessionId"`
}

// IntentName returns the top interpretation's intent, then the session intent, or "".
func (o *RecognizeTextOutput) IntentName() string {
	if o == nil {
		return ""
	}
	if len(o.Interpretations) > 0 && o.Interpretations[0].Intent.Name != "" {
		return o.Interpretations[0].Intent.Name
	}
	if o.SessionState.Intent == nil {
		return ""
	}
	return o.SessionState.Intent.Name
}

type recognizeTextInput struct {
	Text string `json:"text"`
}

// Client is a RecognizeText client bound to one bot alias and locale.
type Client struct {
	http        *apphttp.Client
	credentials aws.CredentialsProvider
	signer      *v4.Signer
	region      string
	endpoint    string
	botID       string
	aliasID     string
	localeID    string
	now         func() time.Time
}

// NewClient builds a client from an AWS config (credentials and region) and the bot settings.
func NewClient(awsCfg aws.Config, cfg config.LexConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://runtime-v2-lex.%s.amazonaws.com", awsCfg.Region)
	}
	return &Client{
		http:        apphttp.NewClient(config.GetDuration(cfg.Timeout)),
		credentials: awsCfg.Credentials,
		signer:      v4.NewSigner(),
		region:      awsCfg.Region,
		endpoint:    strings.TrimRight(endpoint, "/"),
		botID:       cfg.BotID,
		aliasID:     cfg.BotAliasID,
		localeID:    cfg.LocaleID,
		now:         time.Now,
	}
}

// WithHTTPClient replaces the transport; used with httptest servers.
func (c *Client) WithHTTPClient(hc *apphttp.Client) *Client {
	c.http = hc
	return c
}

// RecognizeText sends one user utterance for sessionID and returns the bot's reply.
func (c *Client) RecognizeText(ctx context.Context, sessionID, text string) (*RecognizeTextOutput, error) {
	body, err := json.Marshal(recognizeTextInput{Text: text})
	if err != nil {
		return nil, apperrors.NewIntentRecognitionFailedError(err)
	}

	u := fmt.Sprintf("%s/bots/%s/botAliases/%s/botLocales/%s/sessions/%s/text",
		c.endpoint,
		url.PathEscape(c.botID),
		url.PathEscape(c.aliasID),
		url.PathEscape(c.localeID),
		url.PathEscape(sessionID),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewIntentRecognitionFailedError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.sign(ctx, req, body); err != nil {
		return nil, apperrors.NewIntentRecognitionFailedError(err)
	}

	var out RecognizeTextOutput
	if err := c.http.DoJSON(req, &out); err != nil {
		return nil, apperrors.NewIntentRecognitionFailedError(err)
	}
	return &out, nil
}

func (c *Client) sign(ctx context.Context, req *http.Request, body []byte) error {
	if c.credentials == nil {
		return fmt.Errorf("no aws credentials provider configured")
	}
	creds, err := c.credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("retrieve credentials: %w", err)
	}
	sum := sha256.Sum256(body)
	return c.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), signingService, c.region, c.now())
}
