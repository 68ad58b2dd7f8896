// Package client talks to the external invoice service: seller/buyer
// directories, HSN suggestions, and invoice submission/finalize.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Client is a thin REST client. The session token is an explicit value
// handed in at construction; nothing here keeps global auth state.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     *logrus.Logger
}

// New creates a Client for the service at baseURL.
func New(baseURL, token string, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// apiError is the service's {"detail": "..."} failure payload.
type apiError struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Surface the server-provided detail when present, else a generic
		// fallback the UI can show as a transient notification.
		var ae apiError
		if json.NewDecoder(resp.Body).Decode(&ae) == nil && ae.Detail != "" {
			return fmt.Errorf("%s", ae.Detail)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}
