package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantBody    string
	}{
		{
			name:        "google style error",
			body:        `{"error":{"code":403,"message":"The request cannot be completed because you have exceeded your quota."}}`,
			wantMessage: "The request cannot be completed because you have exceeded your quota.",
		},
		{
			name:        "graph style error",
			body:        `{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`,
			wantMessage: "Invalid OAuth access token.",
		},
		{
			name:        "plain string error",
			body:        `{"error":"bad request"}`,
			wantMessage: "bad request",
		},
		{
			name:        "non JSON body",
			body:        "<html>Service Unavailable</html>",
			wantMessage: "",
			wantBody:    "<html>Service Unavailable</html>",
		},
		{
			name:        "empty body",
			body:        "",
			wantMessage: "",
			wantBody:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: http.StatusForbidden,
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}

			httpErr := newHTTPError(resp, "https://example.test/search")

			assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
			assert.Equal(t, "Forbidden", httpErr.Status)
			assert.Equal(t, tt.wantMessage, httpErr.Message)
			if tt.wantBody != "" || tt.body == "" {
				assert.Equal(t, tt.wantBody, httpErr.Body)
			} else {
				assert.Equal(t, tt.body, httpErr.Body)
			}
		})
	}
}

func TestNewHTTPErrorTruncatesBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("x", 4000))),
	}

	httpErr := newHTTPError(resp, "https://example.test")

	assert.Len(t, httpErr.Body, maxErrorBody)
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{StatusCode: 403, URL: "https://example.test/search", Message: "quota"}
	assert.Equal(t, "HTTP 403 for https://example.test/search: quota", err.Error())

	err = &HTTPError{StatusCode: 500, URL: "https://example.test", Body: "oops"}
	assert.Equal(t, "HTTP 500 for https://example.test: oops", err.Error())

	err = &HTTPError{StatusCode: 404, URL: "https://example.test"}
	assert.Equal(t, "HTTP 404 for https://example.test", err.Error())
}

func TestDoJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`{"value":"hello"}`))
		case "/broken":
			w.Write([]byte(`{"value":`))
		case "/slow":
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		default:
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte(`{"error":{"message":"short and stout"}}`))
		}
	}))
	defer server.Close()

	api := newAPIClient(server.Client(), 100*time.Millisecond)
	get := func(path string, out any) error {
		req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
		require.NoError(t, err)
		return api.doJSON(context.Background(), req, server.URL+path, out)
	}

	var out struct {
		Value string `json:"value"`
	}
	require.NoError(t, get("/ok", &out))
	assert.Equal(t, "hello", out.Value)

	err := get("/broken", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")

	err = get("/teapot", &out)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTeapot, httpErr.StatusCode)
	assert.Equal(t, "short and stout", httpErr.Message)

	err = get("/slow", &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "want deadline error, got %v", err)
}

func TestDoJSONHidesCredentialsOnTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := server.URL + "/me/media?access_token=super-secret"
	server.Close()

	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)

	err = newAPIClient(nil, time.Second).doJSON(context.Background(), req, server.URL+"/me/media", &struct{}{})

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret")
}
