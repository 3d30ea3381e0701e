// Package webhook delivers simple text notifications to a generic webhook
// endpoint. It is the announcer's fallback channel when the forum API is
// unavailable.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type message struct {
	Content string `json:"content"`
}

type Sender struct {
	httpClient *http.Client
	url        string
}

// NewSender returns a sender that posts to the given webhook URL.
func NewSender(url string) *Sender {
	return &Sender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        url,
	}
}

// Send delivers content as a single JSON POST. The response body is not
// interpreted beyond the status code; there is exactly one attempt.
func (s *Sender) Send(ctx context.Context, content string) error {
	payload, err := json.Marshal(message{Content: content})
	if err != nil {
		return fmt.Errorf("webhook: encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: send: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: send: unexpected status %s", resp.Status)
	}
	return nil
}
