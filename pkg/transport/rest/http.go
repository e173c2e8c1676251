package rest

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/saturnines/polar-sync/pkg/auth"
)

// HTTPDoer is a minimal interface for HTTP clients
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Request describes one call relative to a base URL.
type Request struct {
	Method   string
	Endpoint string
	Body     []byte
	Headers  map[string]string
}

// RequestHelper builds and sends req against baseURL. Every request is
// JSON and carries auth; req.Headers are applied last and win on conflict.
func RequestHelper(
	ctx context.Context,
	doer HTTPDoer,
	baseURL string,
	authHandler auth.Handler,
	req Request,
) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, baseURL+req.Endpoint, bodyReader)
	if err != nil {
		return nil, err
	}

	if authHandler != nil {
		if err := authHandler.ApplyAuth(httpReq); err != nil {
			return nil, err
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return doer.Do(httpReq)
}
