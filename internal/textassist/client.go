// Package textassist calls an external text collaborator service for
// summaries and translations. Calls are synchronous, have no retries,
// and never change forum state.
package textassist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the text assist endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient returns a client for the given endpoint. An empty baseURL
// disables the feature; calls then return ErrDisabled.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ErrDisabled is returned when no endpoint is configured.
var ErrDisabled = fmt.Errorf("text assist is not configured")

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

type request struct {
	Task     string `json:"task"`
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

type response struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Summarize returns a short summary of the text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return c.call(ctx, request{Task: "summarize", Text: text})
}

// Translate returns the text translated into the target language.
func (c *Client) Translate(ctx context.Context, text, language string) (string, error) {
	return c.call(ctx, request{Task: "translate", Text: text, Language: language})
}

func (c *Client) call(ctx context.Context, reqBody request) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("text assist request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("text assist returned status %d", resp.StatusCode)
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("text assist returned invalid JSON: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("text assist error: %s", out.Error)
	}
	return out.Result, nil
}
