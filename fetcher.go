package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

const maxErrorBody = 512

// HTTPError represents a non-success upstream response
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	// Message is error.message from a JSON body, empty when the body had none
	Message string
	// Body is the raw response text, cut to maxErrorBody bytes
	Body string
}

func (e *HTTPError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	if detail == "" {
		return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("HTTP %d for %s: %s", e.StatusCode, e.URL, detail)
}

// newHTTPError keeps whatever the body holds. Google, the Graph API and
// OpenAI all report {"error":{"message":...}}; other bodies stay raw.
func newHTTPError(resp *http.Response, redactedURL string) *HTTPError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	httpErr := &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
		URL:        redactedURL,
	}
	if msg, err := jsonparser.GetString(body, "error", "message"); err == nil {
		httpErr.Message = msg
	} else if msg, err := jsonparser.GetString(body, "error"); err == nil {
		httpErr.Message = msg
	}

	raw := strings.TrimSpace(string(body))
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	httpErr.Body = raw
	return httpErr
}

// apiClient issues bounded JSON requests against one upstream
type apiClient struct {
	client  *http.Client
	timeout time.Duration
}

func newAPIClient(client *http.Client, timeout time.Duration) *apiClient {
	if client == nil {
		client = &http.Client{}
	}
	return &apiClient{client: client, timeout: timeout}
}

// doJSON sends req and decodes a 2xx body into out. redactedURL is used in
// errors so credentials carried in query strings never reach the logs.
func (c *apiClient) doJSON(ctx context.Context, req *http.Request, redactedURL string, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("requesting %s: %w", redactedURL, unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(resp, redactedURL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", redactedURL, err)
	}
	return nil
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the
// full request URL including any access token.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
