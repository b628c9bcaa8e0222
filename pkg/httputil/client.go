package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licensefetch/pkg/cache"
	apperr "github.com/matzehuels/licensefetch/pkg/errors"
	"github.com/matzehuels/licensefetch/pkg/observability"
)

// DefaultTimeout bounds every request unless [Options.Timeout] says otherwise.
const DefaultTimeout = 5 * time.Second

// DefaultMaxBodySize caps response bodies unless [Options.MaxBodySize] says
// otherwise.
const DefaultMaxBodySize = 10 << 20

const cacheNamespace = "get:"

var (
	// ErrNotFound is returned by GetJSON when the server answers 404.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is matched by transport failures and unexpected statuses.
	ErrNetwork = errors.New("network error")

	// ErrBodyTooLarge is matched when a body exceeds the configured cap.
	// The partial body is discarded.
	ErrBodyTooLarge = errors.New("response body too large")
)

// Fetcher performs a GET and reports the outcome.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Response, error)
}

// Response is the outcome of a GET that reached the server.
type Response struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status"`
	Body       string `json:"body"`
	Cached     bool   `json:"-"`
}

// OK reports whether the status is below 400.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode > 0 && r.StatusCode < 400
}

// Options configures a [Client]. The zero value is usable.
type Options struct {
	Timeout  time.Duration     // per request; 0 means DefaultTimeout
	Headers  map[string]string // applied to every request
	Cache    cache.Cache       // nil disables caching
	Keyer    cache.Keyer       // nil means cache.DefaultKeyer
	CacheTTL time.Duration     // 0 means cache.TTLPage
	Refresh  bool              // skip cache reads, still write
	Logger   *log.Logger

	// Transport replaces http.DefaultTransport when set.
	Transport http.RoundTripper

	// MaxBodySize caps each body in bytes; 0 means DefaultMaxBodySize.
	MaxBodySize int64
}

// Client fetches pages with a uniform timeout and optional caching.
// It is safe for concurrent use.
type Client struct {
	http    *http.Client
	headers map[string]string
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	refresh bool
	maxBody int64
	logger  *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.TTLPage
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		headers: opts.Headers,
		cache:   opts.Cache,
		keyer:   opts.Keyer,
		ttl:     opts.CacheTTL,
		refresh: opts.Refresh,
		maxBody: opts.MaxBodySize,
		logger:  opts.Logger,
	}
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration { return c.http.Timeout }

// Fetch performs a GET on rawURL. Only transport failures are errors; any
// status code is returned in the Response.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	key := c.keyer.HTTPKey(cacheNamespace, rawURL)
	if resp, ok := c.fromCache(ctx, key); ok {
		return resp, nil
	}

	resp, err := c.do(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if cacheable(resp.StatusCode) {
		if data, err := json.Marshal(resp); err == nil {
			if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
				c.logger.Debug("cache write failed", "url", rawURL, "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, cacheNamespace, len(data))
			}
		}
	}
	return resp, nil
}

// GetJSON fetches rawURL and decodes a 200 response into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	resp, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := checkStatus(resp.StatusCode); err != nil {
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	if err := json.Unmarshal([]byte(resp.Body), v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

func (c *Client) fromCache(ctx context.Context, key string) (*Response, bool) {
	if c.refresh {
		return nil, false
	}
	data, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Debug("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cacheNamespace)
		return nil, false
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}
	resp.Cached = true
	observability.Cache().OnCacheHit(ctx, cacheNamespace)
	return &resp, true
}

func (c *Client) do(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeMalformedURL, err, "build request for %q", rawURL)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, transportError(rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, transportError(rawURL, err)
	}
	if int64(len(body)) > c.maxBody {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, ErrBodyTooLarge)
		return nil, apperr.Wrap(apperr.ErrCodeNetwork, ErrBodyTooLarge, "GET %s: body exceeds %d bytes", rawURL, c.maxBody)
	}
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	return &Response{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}

// cacheable reports whether a response with status may be replayed from the
// cache. Rate limits and other transient failures are always refetched.
func cacheable(status int) bool {
	return (status >= 200 && status < 300) || status == http.StatusNotFound || status == http.StatusGone
}

func transportError(rawURL string, err error) error {
	code := apperr.ErrCodeNetwork
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		code = apperr.ErrCodeTimeout
	}
	return apperr.Wrap(code, fmt.Errorf("%w: %w", ErrNetwork, err), "GET %s", rawURL)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

var _ Fetcher = (*Client)(nil)
