package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/campfireagency/socialpress/internal/transfer"
)

const graphAPIBaseURL = "https://graph.facebook.com/v21.0"

// MediaRefs carries the resolved media locators and the declared content type
// of one publish request. At most one locator is used per request; which one
// is adapter-specific.
type MediaRefs struct {
	ImageURL    string
	VideoURL    string
	ContentType string
}

// PlatformPublisher is the capability every platform adapter implements.
// Adapters never return a Go error: every platform-level failure is converted
// into a failure PublishResult so the orchestrator reconciles one shape.
type PlatformPublisher interface {
	Publish(ctx context.Context, accountID, accessToken, caption string, media MediaRefs) transfer.PublishResult
}

func graphPost(ctx context.Context, client *http.Client, url string, payload map[string]interface{}) (*transfer.GraphResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	var result transfer.GraphResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return &result, nil
}

func graphGet(ctx context.Context, client *http.Client, endpoint string) (*transfer.GraphResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	var result transfer.GraphResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return &result, nil
}

// redactURLError strips the query string out of transport errors. The access
// token travels as a query parameter on status-poll and verification GETs,
// and *url.Error stringifies the full URL, so the raw error must never reach
// a stored error message or an HTTP response.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		u.RawQuery = ""
		urlErr.URL = u.String()
	}
	return urlErr
}
