// Package api is the typed client of the Flicksy backend's JSON endpoints.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"golang.org/x/net/publicsuffix"

	"flicksy/internal/logging"
	"flicksy/pkg/models"
)

const RequestIDHeader = "X-Request-ID"

type Options struct {
	BaseURL string
	Timeout time.Duration
	// Jar holds the session cookie. A public-suffix aware jar is created
	// when nil.
	Jar http.CookieJar
	// HTTPClient overrides the transport; its Jar is replaced by Jar.
	HTTPClient *http.Client
}

type Client struct {
	base     *url.URL
	http     *http.Client
	validate *validator.Validate
}

func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	jar := opts.Jar
	if jar == nil {
		jar, err = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		cp := *opts.HTTPClient
		hc = &cp
	}
	hc.Jar = jar
	if opts.Timeout > 0 {
		hc.Timeout = opts.Timeout
	}

	return &Client{base: base, http: hc, validate: validator.New()}, nil
}

func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) Jar() http.CookieJar { return c.http.Jar }

func (c *Client) Watchlist(ctx context.Context) ([]models.WatchlistEntry, error) {
	var items []models.WatchlistEntry
	if err := c.doJSON(ctx, http.MethodGet, "/api/watchlist", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToWatchlist returns the decoded body even when err is a StatusError.
func (c *Client) AddToWatchlist(ctx context.Context, key models.MediaKey) (models.WatchlistMutation, error) {
	return c.mutate(ctx, "/api/watchlist/add", key)
}

func (c *Client) RemoveFromWatchlist(ctx context.Context, key models.MediaKey) (models.WatchlistMutation, error) {
	return c.mutate(ctx, "/api/watchlist/remove", key)
}

func (c *Client) mutate(ctx context.Context, path string, key models.MediaKey) (models.WatchlistMutation, error) {
	var out models.WatchlistMutation
	if err := c.validate.Struct(key); err != nil {
		return out, fmt.Errorf("invalid media key %s: %w", key, err)
	}
	err := c.doJSON(ctx, http.MethodPost, path, key, &out)
	return out, err
}

// Search queries titles and people. q is sent as given, percent-encoded.
func (c *Client) Search(ctx context.Context, q string) (models.SearchResultSet, error) {
	var out models.SearchResultSet
	path := "/search?q=" + strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Cast accepts both shapes the backend serves: {"cast": [...]} for movies
// and a bare array for shows.
func (c *Client) Cast(ctx context.Context, key models.MediaKey) ([]models.CastMember, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, apiPath(key, "cast"), nil, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var cast []models.CastMember
		if err := json.Unmarshal(raw, &cast); err != nil {
			return nil, fmt.Errorf("decode cast: %w", err)
		}
		return cast, nil
	}
	var credits models.Credits
	if err := json.Unmarshal(raw, &credits); err != nil {
		return nil, fmt.Errorf("decode credits: %w", err)
	}
	return credits.Cast, nil
}

func (c *Client) Platforms(ctx context.Context, key models.MediaKey) (models.ProviderOffers, error) {
	var out models.ProviderOffers
	err := c.doJSON(ctx, http.MethodGet, apiPath(key, "platforms"), nil, &out)
	return out, err
}

// SubmitReview posts a review. Like the watchlist mutations, the body is
// returned alongside a StatusError.
func (c *Client) SubmitReview(ctx context.Context, key models.MediaKey, sub models.ReviewSubmission) (models.ReviewResult, error) {
	var out models.ReviewResult
	if err := c.validate.Struct(key); err != nil {
		return out, fmt.Errorf("invalid media key %s: %w", key, err)
	}
	err := c.doJSON(ctx, http.MethodPost, key.Path()+"/review", sub, &out)
	return out, err
}

func apiPath(key models.MediaKey, leaf string) string {
	return "/api/" + string(key.MediaType) + "/" + strconv.Itoa(key.TMDBID) + "/" + leaf
}

func (c *Client) resolve(path string) string {
	return c.base.String() + path
}

// doJSON sends payload as JSON and decodes the response into out. Non-2xx
// responses yield a *StatusError; their body is still decoded into out
// when it is JSON.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	if logging.RequestID(ctx) == "" {
		ctx = logging.WithRequestID(ctx, "")
	}
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, logging.RequestID(ctx))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	logging.Ctx(ctx).Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{Method: method, Path: path, Status: resp.StatusCode}
		var eb struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &eb) == nil {
			se.Message = eb.Error
		}
		if out != nil {
			_ = json.Unmarshal(data, out)
		}
		return se
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
