package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	circuitbreaker "github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/httpclient"
	"github.com/machinebox/graphql"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

const (
	authTokenHeader    = "vendure-auth-token"
	channelTokenHeader = "vendure-token"
	requestTimeout     = 10 * time.Second
)

// Client runs Shop API operations against the commerce backend.
type Client struct {
	gql     *graphql.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func CreateClient(config *config.Config) *Client {
	httpClient := httpclient.NewClient(requestTimeout)
	httpClient.Transport = NewTokenTransport(httpClient.Transport, config.CommerceConfig.ChannelToken)

	return NewClient(config.CommerceConfig.APIURL, httpClient)
}

func NewClient(endpoint string, httpClient *http.Client) *Client {
	gql := graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient))
	gql.Log = func(s string) {
		log.Debug().Str("component", "CommerceClient").Msg(s)
	}

	return &Client{
		gql:     gql,
		breaker: circuitbreaker.CreateCircuitBreaker[struct{}]("commerce-api"),
	}
}

// Run executes one operation and decodes its data into resp. Errors reported
// by the API in the GraphQL error list do not count against the breaker.
func (c *Client) Run(ctx context.Context, query string, vars map[string]interface{}, resp interface{}) error {
	req := graphql.NewRequest(query)
	for k, v := range vars {
		req.Var(k, v)
	}

	var apiErr error
	_, err := c.breaker.Execute(func() (struct{}, error) {
		runErr := c.gql.Run(ctx, req, resp)
		if isAPIError(runErr) {
			apiErr = runErr
			return struct{}{}, nil
		}
		return struct{}{}, runErr
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("commerce: %w", errs.ErrUpstreamUnavailable)
	case err != nil:
		return fmt.Errorf("commerce: %w: %v", errs.ErrUpstream, err)
	case apiErr != nil:
		return fmt.Errorf("commerce: %w: %v", errs.ErrUpstream, apiErr)
	}

	return nil
}

func isAPIError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.HasPrefix(msg, "graphql: ") && !strings.Contains(msg, "non-200 status code")
}

type tokenHolderKey struct{}

// TokenHolder carries the customer's auth token into an operation and
// collects the token the backend issues back, e.g. after login.
type TokenHolder struct {
	mu        sync.Mutex
	token     string
	refreshed bool
}

func NewTokenHolder(token string) *TokenHolder {
	return &TokenHolder{token: token}
}

func (h *TokenHolder) Token() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token
}

// Refreshed reports whether the backend issued a different token.
func (h *TokenHolder) Refreshed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refreshed
}

func (h *TokenHolder) set(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if token != h.token {
		h.token = token
		h.refreshed = true
	}
}

func WithTokenHolder(ctx context.Context, h *TokenHolder) context.Context {
	return context.WithValue(ctx, tokenHolderKey{}, h)
}

func TokenHolderFromContext(ctx context.Context) *TokenHolder {
	h, _ := ctx.Value(tokenHolderKey{}).(*TokenHolder)
	return h
}

// NewTokenTransport sends the channel token and the caller's auth token on
// every request and records auth tokens the backend hands out.
func NewTokenTransport(base http.RoundTripper, channelToken string) http.RoundTripper {
	return &tokenTransport{base: base, channelToken: channelToken}
}

type tokenTransport struct {
	base         http.RoundTripper
	channelToken string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	holder := TokenHolderFromContext(req.Context())

	out := req.Clone(req.Context())
	if t.channelToken != "" {
		out.Header.Set(channelTokenHeader, t.channelToken)
	}
	if holder != nil {
		if token := holder.Token(); token != "" {
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if holder != nil {
		if token := resp.Header.Get(authTokenHeader); token != "" {
			holder.set(token)
		}
	}

	return resp, nil
}
