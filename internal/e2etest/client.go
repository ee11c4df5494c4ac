package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/myrjola/casegen/internal/errors"
	"github.com/myrjola/casegen/internal/models"
)

// Client exercises the JSON API the way an external caller would.
type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a client for the server at url.
func NewClient(url string) *Client {
	return &Client{
		client: &http.Client{}, //nolint:exhaustruct
		url:    url,
	}
}

// WaitForReady calls the health endpoint until it gets an HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+"/api/healthy",
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// GenerateCase requests a new case and returns the finished document.
func (c *Client) GenerateCase(ctx context.Context, cfg models.CaseConfig) (*models.CaseDocument, error) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal case configuration")
	}

	var req *http.Request
	if req, err = http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.url+"/api/cases",
		bytes.NewReader(payload),
	); err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	var doc models.CaseDocument
	if err = c.doJSON(req, http.StatusOK, &doc); err != nil {
		return nil, errors.Wrap(err, "generate case")
	}
	return &doc, nil
}

// GetCase fetches a previously generated case document by identifier.
func (c *Client) GetCase(ctx context.Context, id string) (*models.CaseDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/api/cases/"+id, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	var doc models.CaseDocument
	if err = c.doJSON(req, http.StatusOK, &doc); err != nil {
		return nil, errors.Wrap(err, "get case", slog.String("id", id))
	}
	return &doc, nil
}

func (c *Client) doJSON(req *http.Request, wantStatus int, v any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response body")
	}
	if resp.StatusCode != wantStatus {
		return errors.New("unexpected status code",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
	}
	if err = json.Unmarshal(body, v); err != nil {
		return errors.Wrap(err, "unmarshal response body")
	}
	return nil
}
