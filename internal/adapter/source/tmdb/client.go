package tmdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// Config configures a Client
type Config struct {
	APIKey   string
	BaseURL  string
	Language string // Sent as the language parameter when set

	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables client-side rate limiting
	Burst             int

	HTTPClient *http.Client
	Cache      cache.Cache // Optional response cache
}

// Client talks to the remote catalog API. It implements domain.CatalogRepository.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	http     *http.Client
	limiter  *rate.Limiter
	cache    cache.Cache
	logger   *slog.Logger
}

var _ domain.CatalogRepository = (*Client)(nil)

// NewClient creates a catalog client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: cfg.Language,
		http:     httpClient,
		limiter:  limiter,
		cache:    cfg.Cache,
		logger:   logger,
	}
}

// FetchPage calls a list endpoint and returns the undecorated page
func (c *Client) FetchPage(ctx context.Context, endpoint string, params domain.Params) (*RawPage, error) {
	var page RawPage
	if err := c.FetchJSON(ctx, endpoint, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FetchCatalogPage calls a list endpoint and normalizes its results
func (c *Client) FetchCatalogPage(ctx context.Context, endpoint string, params domain.Params, assumed domain.MediaKind) (*domain.Page, error) {
	raw, err := c.FetchPage(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return NormalizePage(raw, assumed), nil
}

// FetchSuggestions runs a multi search and keeps movie, tv and person entries in
// response order
func (c *Client) FetchSuggestions(ctx context.Context, query string) ([]domain.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Suggestion{}, nil
	}

	raw, err := c.FetchPage(ctx, PathSearchMulti, domain.Params{"query": query, "page": 1})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Suggestion, 0, len(raw.Results))
	for _, r := range raw.Results {
		if s, ok := NormalizeSuggestion(r); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// FetchJSON performs an authenticated GET and decodes the body into dest.
// There are no retries at this layer.
func (c *Client) FetchJSON(ctx context.Context, endpoint string, params domain.Params, dest any) error {
	if c.apiKey == "" {
		return domain.ErrNotConfigured
	}

	query := encodeParams(params)
	if c.language != "" && query.Get("language") == "" {
		query.Set("language", c.language)
	}
	cacheKey := endpoint + "?" + query.Encode()
	group := endpointGroup(endpoint)

	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, cacheKey); ok {
			if err := json.Unmarshal(body, dest); err == nil {
				metrics.CatalogRequestsTotal.WithLabelValues(group, "cached").Inc()
				return nil
			}
		}
	}

	body, err := c.doRequest(ctx, endpoint, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(group, "decode_error").Inc()
		c.logger.Error("failed to decode catalog response", "endpoint", endpoint, "error", err)
		return &domain.DecodeError{Endpoint: endpoint, Err: err}
	}

	metrics.CatalogRequestsTotal.WithLabelValues(group, "ok").Inc()
	if c.cache != nil {
		c.cache.Set(ctx, cacheKey, body)
	}
	return nil
}

// doRequest sends the GET with the access key attached and returns the raw body
func (c *Client) doRequest(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	group := endpointGroup(endpoint)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.CatalogRequestsTotal.WithLabelValues(group, "network_error").Inc()
			return nil, &domain.NetworkError{Endpoint: endpoint, Err: err}
		}
	}

	signed := url.Values{}
	for k, v := range query {
		signed[k] = v
	}
	signed.Set("api_key", c.apiKey)
	reqURL := c.baseURL + endpoint + "?" + signed.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("catalog request", "endpoint", endpoint, "query", query.Encode())

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.CatalogRequestDuration.WithLabelValues(group).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(group, "network_error").Inc()
		if ctx.Err() == nil {
			c.logger.Error("catalog request failed", "endpoint", endpoint, "error", err)
		}
		return nil, &domain.NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.CatalogRequestsTotal.WithLabelValues(group, "api_error").Inc()
		c.logger.Error("catalog request error", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, &domain.APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(group, "network_error").Inc()
		return nil, &domain.NetworkError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return body, nil
}

// statusText returns the reason phrase of the response ("Not Found")
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// encodeParams drops nil, nil-pointer and empty-string values and formats the rest
func encodeParams(params domain.Params) url.Values {
	q := url.Values{}
	for k, v := range params {
		if s, ok := paramString(v); ok {
			q.Set(k, s)
		}
	}
	return q
}

func paramString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}

	var s string
	switch rv.Kind() {
	case reflect.String:
		s = rv.String()
	case reflect.Float32:
		s = strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		s = strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	default:
		s = fmt.Sprint(rv.Interface())
	}
	if s == "" {
		return "", false
	}
	return s, true
}
