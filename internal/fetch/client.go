// Package fetch retrieves published legislative documents over HTTP,
// politely: per-host rate limiting, robots.txt compliance, bounded
// response reads, and an in-memory cache keyed by URL.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avernik/doctrina/internal/cache"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	UserAgent         string
	Timeout           time.Duration
	MaxBytes          int64
	RequestsPerSecond float64
	Burst             int
	CacheTTL          time.Duration
	// CacheDir enables a disk layer behind the memory cache.
	CacheDir      string
	RespectRobots bool
	HTTPProxy     string
	HTTPSProxy    string
}

// DefaultOptions returns the options used when a field is unset.
func DefaultOptions() Options {
	return Options{
		UserAgent:         "doctrina/1.0",
		Timeout:           30 * time.Second,
		MaxBytes:          10 << 20,
		RequestsPerSecond: 1,
		Burst:             3,
		CacheTTL:          cache.DefaultDocumentTTL,
		RespectRobots:     true,
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.UserAgent == "" {
		o.UserAgent = defaults.UserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = defaults.Timeout
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = defaults.MaxBytes
	}
	if o.RequestsPerSecond <= 0 {
		o.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if o.Burst <= 0 {
		o.Burst = defaults.Burst
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = defaults.CacheTTL
	}
	return o
}

// Client fetches documents with caching and politeness controls.
type Client struct {
	httpClient *http.Client
	opts       Options
	limiter    *Limiter
	robots     *RobotsChecker
	cache      cache.Cache
}

// NewClient creates a fetch client from the given options.
func NewClient(opts Options) *Client {
	opts = opts.withDefaults()

	var store cache.Cache = cache.NewMemoryCache(opts.CacheTTL)
	if opts.CacheDir != "" {
		store = cache.NewLayeredCache(opts.CacheTTL, opts.CacheDir, opts.CacheTTL)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc(opts.HTTPProxy, opts.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		opts:    opts,
		limiter: NewLimiter(opts.RequestsPerSecond, opts.Burst),
		robots:  NewRobotsChecker(opts.UserAgent, opts.Timeout),
		cache:   store,
	}
}

// Fetch retrieves the document at rawURL, serving repeats from cache.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.Key(rawURL)
	if body, found := c.cache.Get(key); found {
		return body, nil
	}

	crawlDelay := time.Duration(0)
	if c.opts.RespectRobots {
		allowed, delay, err := c.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("fetch %s: disallowed by robots.txt", rawURL)
		}
		crawlDelay = delay
	}

	if err := c.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(key, body, c.opts.CacheTTL)
	return body, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
