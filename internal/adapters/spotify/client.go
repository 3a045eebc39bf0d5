// Package spotify is the adapter for the provider's Web API. Catalog calls use
// a client-credentials token; library calls use the caller's bearer token.
package spotify

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
)

const (
	DefaultBaseURL  = "https://api.spotify.com/v1"
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
	defaultMarket   = "US"
)

// Config configures a Client.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	Market       string
	MaxRetries   int
	RetryBackoff time.Duration
	Timeout      time.Duration
	Logger       *zap.Logger
}

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient  *http.Client // application token
	baseHTTP    *http.Client // transport for user-token calls
	baseURL     string
	market      string
	maxRetries  int
	baseBackoff time.Duration
	breaker     *gobreaker.CircuitBreaker
	log         *zap.Logger
}

// compile-time interface assertion
var _ ports.SpotifyProvider = (*Client)(nil)

// NewClient constructs a client that fetches and refreshes application tokens
// through the client-credentials flow.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	base := &http.Client{Timeout: timeout}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	appClient := cc.Client(tokenCtx)
	appClient.Timeout = timeout

	c := NewClientWithBaseURL(base, cfg.BaseURL)
	c.httpClient = appClient
	if cfg.Market != "" {
		c.market = cfg.Market
	}
	if cfg.MaxRetries > 0 {
		c.maxRetries = cfg.MaxRetries
	}
	if cfg.RetryBackoff > 0 {
		c.baseBackoff = cfg.RetryBackoff
	}
	if cfg.Logger != nil {
		c.SetLogger(cfg.Logger)
	}
	return c
}

// NewClientWithBaseURL builds a client that sends requests through httpClient
// as-is. Tests use it to point the adapter at an httptest server.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient:  httpClient,
		baseHTTP:    httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		market:      defaultMarket,
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
		log:         zap.NewNop(),
	}
	c.breaker = newBreaker(c)
	return c
}

// SetLogger replaces the adapter logger.
func (c *Client) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l.Named("spotify")
}

// userClient wraps the base transport with a static bearer token.
func (c *Client) userClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.baseHTTP)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
}
