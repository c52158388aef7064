// Package epcapi is a client for the domestic certificate search of the
// Open Data Communities EPC API.
package epcapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/klauspost/compress/gzip"
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API request failed: %s", e.Status)
	}
	return fmt.Sprintf("API request failed: %s: %s", e.Status, e.Body)
}

// maxErrorBody bounds how much of an error response is kept in StatusError.
const maxErrorBody = 512

// Client fetches certificate data as CSV.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a client. The configuration is validated first so missing
// credentials are reported before any request is made.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// AuthHeader returns the Basic authorization header value.
func (c *Client) AuthHeader() string {
	credentials := c.cfg.Email + ":" + c.cfg.APIKey
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

// Search runs one query and parses the CSV response. The size parameter
// is always set from the configured page size.
func (c *Client) Search(ctx context.Context, q Query) (*dataset.Dataset, error) {
	q.Size = c.cfg.PageSize()
	params, err := q.Values()
	if err != nil {
		return nil, err
	}

	reqURL := strings.TrimRight(c.cfg.BaseURL, "/") + "/domestic/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", c.AuthHeader())
	req.Header.Set("Accept", "text/csv")
	req.Header.Set("Accept-Encoding", "gzip")

	slog.Debug("Fetching data", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", reqURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decoding gzip response: %w", err)
		}
		defer zr.Close() //nolint:errcheck
		body = zr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	ds, err := dataset.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return ds, nil
}

// Fetch is Search with failures logged and turned into an empty Dataset.
// Callers treat an empty result as the only failure signal.
func (c *Client) Fetch(ctx context.Context, q Query) *dataset.Dataset {
	slog.Info("Fetching data", "local-authority", q.LocalAuthority, "property-type", q.PropertyType, "size", c.cfg.PageSize())

	ds, err := c.Search(ctx, q)
	if err != nil {
		slog.Error("Error fetching data", "error", err)
		return &dataset.Dataset{}
	}

	slog.Info("Retrieved records", "count", ds.Len())
	return ds
}
