package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrEventTypeNotAllowed = errors.New("event topic not allowed")
	ErrUnexpectedStatus    = errors.New("unexpected response status")
)

// HTTPClient represents an interface for the Webhook to send events with.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// EventLog is the struct that will be send to the Webhook.URL
type EventLog struct {
	Topics     []string  `json:"topics"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Webhook sends events via POST request to a specified URL.
type Webhook struct {
	ID            string
	HTTPClient    HTTPClient
	URL           string
	AllowedTopics []string
}

// Allows reports whether any of topics is one of the allowed topics.
func (webhook Webhook) Allows(topics ...string) bool {
	for _, at := range webhook.AllowedTopics {
		for _, et := range topics {
			if at == et {
				return true
			}
		}
	}
	return false
}

// DispatchEvent marshals the given EventLog into JSON and sends it in a
// POST request to the Webhook.URL. Any response outside of 2xx is an error.
func (webhook Webhook) DispatchEvent(ctx context.Context, e EventLog) error {
	if !webhook.Allows(e.Topics...) {
		return ErrEventTypeNotAllowed
	}

	bb, err := json.Marshal(e)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook.URL, bytes.NewReader(bb))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := webhook.HTTPClient.Do(request)
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	// The body has to be closed for the connection to be reused.
	if resp.Body != nil {
		_ = resp.Body.Close()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return nil
}
