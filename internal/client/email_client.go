package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"project-hub-api/internal/config"
)

// EmailClientInterface sends transactional emails
type EmailClientInterface interface {
	SendNotificationEmail(ctx context.Context, to, subject, body string) error
}

// MetricsClient records external API call outcomes
type MetricsClient interface {
	RecordExternalAPICall(service, operation string, duration time.Duration, err error)
}

type emailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailClient delivers emails through an HTTP relay. Delivery failures
// are logged and swallowed; email is best-effort and must never fail
// the operation that triggered it.
type EmailClient struct {
	cfg        config.EmailConfig
	httpClient *http.Client
	logger     *zap.Logger
	metrics    MetricsClient
}

// NewEmailClient creates an email client. Returns a no-op client when
// email delivery is disabled in configuration.
func NewEmailClient(cfg config.EmailConfig, logger *zap.Logger, metrics MetricsClient) EmailClientInterface {
	if !cfg.Enabled || cfg.RelayURL == "" {
		logger.Info("email delivery disabled, using no-op client")
		return &NoOpEmailClient{}
	}
	return &EmailClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// SendNotificationEmail posts a message to the relay
func (c *EmailClient) SendNotificationEmail(ctx context.Context, to, subject, body string) error {
	start := time.Now()
	err := c.send(ctx, to, subject, body)
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall("email_relay", "send", time.Since(start), err)
	}
	if err != nil {
		c.logger.Warn("email delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return nil
	}
	return nil
}

func (c *EmailClient) send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(emailMessage{
		From:    c.cfg.FromAddress,
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.RelayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}
	return nil
}

// NoOpEmailClient drops all emails
type NoOpEmailClient struct{}

// SendNotificationEmail does nothing
func (c *NoOpEmailClient) SendNotificationEmail(ctx context.Context, to, subject, body string) error {
	return nil
}
