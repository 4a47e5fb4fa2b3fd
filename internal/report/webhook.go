package report

import (
	"context"
	"fmt"

	"github.com/specialistvlad/impactgridgo/internal/ctxlog"
	"resty.dev/v3"
)

// WebhookSink POSTs the final report to an external collector, e.g. a CI
// status service. Failures to deliver are surfaced to the caller; they do
// not change the run verdict.
type WebhookSink struct {
	client *resty.Client
	url    string
}

// NewWebhookSink creates a sink for the given URL.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		client: resty.New(),
		url:    url,
	}
}

// Publish delivers the report as a JSON POST body.
func (s *WebhookSink) Publish(ctx context.Context, r *Report) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Publishing report to webhook.", "url", s.url)

	res, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(r).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("failed to POST report to %s: %w", s.url, err)
	}
	if res.IsError() {
		return fmt.Errorf("report webhook %s rejected the report: %s", s.url, res.Status())
	}

	logger.Info("📬 Report delivered to webhook.", "url", s.url, "status", res.StatusCode())
	return nil
}

// Close releases the underlying HTTP client.
func (s *WebhookSink) Close() error {
	return s.client.Close()
}
