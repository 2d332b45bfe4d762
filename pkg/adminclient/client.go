package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the Firebase ID token sent as the bearer credential.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

type Client struct {
	BaseURL    string
	Tokens     TokenSource // optional
	HTTPClient *http.Client
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Tokens:     tokens,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response. Detail carries the backend's message.
type APIError struct {
	Status int
	Code   string
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Detail)
}

// Do sends body as JSON and decodes the response into out. Enveloped
// responses are unwrapped; anything else is decoded as-is. out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Tokens != nil {
		token, err := c.Tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("get token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	payload := raw
	var env struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if json.Unmarshal(raw, &env) == nil && env.Success != nil {
		if len(env.Data) == 0 {
			return nil
		}
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  any    `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Code = body.Code
		switch d := body.Detail.(type) {
		case string:
			apiErr.Detail = d
		case nil:
		default:
			b, _ := json.Marshal(d)
			apiErr.Detail = string(b)
		}
		if body.Message != "" {
			apiErr.Detail = body.Message
		}
	}
	if apiErr.Detail == "" {
		apiErr.Detail = strings.TrimSpace(string(raw))
	}
	if apiErr.Detail == "" {
		apiErr.Detail = http.StatusText(status)
	}
	return apiErr
}
