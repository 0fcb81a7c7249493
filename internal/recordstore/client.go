// internal/recordstore/client.go
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"equipment-inventory-api-server/internal/models"
)

// Client talks to the remote record-store service: CRUD over opaque JSON
// records keyed by category. Retry/backoff and rate limiting are the remote
// service's concern, not ours.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type listResponse struct {
	Records []Record `json:"records"`
}

// ListRecords fetches all records of a category; query keys are passed
// through to the remote service as filter parameters.
func (c *Client) ListRecords(ctx context.Context, category string, query map[string]string) ([]Record, error) {
	u := fmt.Sprintf("%s/records/%s", c.baseURL, url.PathEscape(category))
	if len(query) > 0 {
		q := url.Values{}
		for k, v := range query {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// GetRecord fetches a single record by category and id.
func (c *Client) GetRecord(ctx context.Context, category, id string) (*Record, error) {
	u := fmt.Sprintf("%s/records/%s/%s", c.baseURL, url.PathEscape(category), url.PathEscape(id))
	var rec Record
	if err := c.do(ctx, http.MethodGet, u, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateRecord persists a new record. The id is caller-supplied, so a
// retried create is idempotent on the remote side.
func (c *Client) CreateRecord(ctx context.Context, rec Record) (*Record, error) {
	u := fmt.Sprintf("%s/records/%s", c.baseURL, url.PathEscape(rec.Category))
	var created Record
	if err := c.do(ctx, http.MethodPost, u, rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRecord replaces a record's payload.
func (c *Client) UpdateRecord(ctx context.Context, rec Record) (*Record, error) {
	u := fmt.Sprintf("%s/records/%s/%s", c.baseURL, url.PathEscape(rec.Category), url.PathEscape(rec.ID))
	var updated Record
	if err := c.do(ctx, http.MethodPut, u, rec, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteRecord hard-removes a record.
func (c *Client) DeleteRecord(ctx context.Context, category, id string) error {
	u := fmt.Sprintf("%s/records/%s/%s", c.baseURL, url.PathEscape(category), url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, u, nil, nil)
}

// CurrentActor reports the user the record-store session is acting as.
func (c *Client) CurrentActor(ctx context.Context) (models.Actor, error) {
	var actor models.Actor
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/session/actor", nil, &actor); err != nil {
		return models.Actor{}, err
	}
	return actor, nil
}

// StatusError carries the remote service's HTTP status for a failed call.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("record store returned %d: %s", e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, method, u string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("record store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
