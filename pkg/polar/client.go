package polar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/saturnines/polar-sync/pkg/auth"
	"github.com/saturnines/polar-sync/pkg/errors"
	"github.com/saturnines/polar-sync/pkg/transport/rest"
)

// Client talks to the commerce API. It never retries and, unless
// WithTimeout is given, never times out.
type Client struct {
	httpClient rest.HTTPDoer
	baseURL    string
	auth       auth.Handler
}

// ClientOption defines config for Client
type ClientOption func(*Client)

// NewClient creates a new Client with the given options
func NewClient(baseURL string, authHandler auth.Handler, options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		auth:       authHandler,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTimeout sets a timeout on the default HTTP client. Zero keeps it unbounded.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if httpClient, ok := c.httpClient.(*http.Client); ok {
			httpClient.Timeout = timeout
		}
	}
}

// WithHTTPDoer replaces the HTTP client entirely
func WithHTTPDoer(doer rest.HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// Do sends req and decodes the JSON answer into target when target is
// non-nil. Any non-2xx status becomes an *errors.APIError.
func (c *Client) Do(ctx context.Context, req rest.Request, target any) error {
	op := fmt.Sprintf("%s %s", methodOrGet(req.Method), req.Endpoint)

	resp, err := rest.RequestHelper(ctx, c.httpClient, c.baseURL, c.auth, req)
	if err != nil {
		return errors.WrapError(err, errors.ErrHTTPRequest, op)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapError(err, errors.ErrHTTPResponse, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.WrapError(&errors.APIError{StatusCode: resp.StatusCode, Body: string(body)}, errors.ErrHTTPResponse, op)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapError(err, errors.ErrExtraction, "failed to decode response JSON")
	}
	return nil
}

// ListProducts fetches a single page of non-archived products.
func (c *Client) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	var page ListResource[Product]
	err := c.Do(ctx, rest.Request{
		Endpoint: fmt.Sprintf("/products?limit=%d&is_archived=false", limit),
	}, &page)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ListCheckoutLinks lists checkout links attached to productID.
func (c *Client) ListCheckoutLinks(ctx context.Context, productID string, limit int) ([]CheckoutLink, error) {
	var page ListResource[CheckoutLink]
	err := c.Do(ctx, rest.Request{
		Endpoint: fmt.Sprintf("/checkout-links?product_id=%s&limit=%d", url.QueryEscape(productID), limit),
	}, &page)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// CreateCheckoutLink creates a checkout link bound to one price.
func (c *Client) CreateCheckoutLink(ctx context.Context, in CheckoutLinkCreate) (*CheckoutLink, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, "failed to encode checkout link")
	}

	var link CheckoutLink
	err = c.Do(ctx, rest.Request{
		Method:   http.MethodPost,
		Endpoint: "/checkout-links",
		Body:     body,
	}, &link)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func methodOrGet(method string) string {
	if method == "" {
		return http.MethodGet
	}
	return method
}
