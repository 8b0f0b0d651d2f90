package products

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dcastellanos/mobilecart/pkg/config"
	pkgerrors "github.com/dcastellanos/mobilecart/pkg/errors"
	"github.com/sethvargo/go-retry"
)

const apiKeyHeader = "x-api-key"

// Client fetches read-only product data from the external catalog API.
// 5xx responses are retried with exponential backoff; 4xx are not.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries uint64
	retryBase  time.Duration
	http       *http.Client
}

// NewClient builds a catalog client from configuration.
func NewClient(cfg config.CatalogConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		maxRetries: uint64(maxRetries),
		retryBase:  cfg.RetryBase(),
		http:       &http.Client{Timeout: timeout},
	}, nil
}

// List returns the full catalog listing.
func (c *Client) List(ctx context.Context) ([]ProductListItem, error) {
	var items []ProductListItem
	if err := c.getJSON(ctx, "/products", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Search returns listings matching the query.
func (c *Client) Search(ctx context.Context, query string) ([]ProductListItem, error) {
	endpoint := "/products?search=" + url.QueryEscape(strings.TrimSpace(query))
	var items []ProductListItem
	if err := c.getJSON(ctx, endpoint, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID returns the product detail, including color and storage options.
func (c *Client) GetByID(ctx context.Context, id string) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var product Product
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building catalog request")
		}
		req.Header.Set(apiKeyHeader, c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling catalog"))
		}
		defer func() {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		case resp.StatusCode >= 500:
			return retry.RetryableError(pkgerrors.New(pkgerrors.CodeDependency,
				fmt.Sprintf("catalog returned %d", resp.StatusCode)))
		case resp.StatusCode >= 400:
			return pkgerrors.New(pkgerrors.CodeDependency,
				fmt.Sprintf("catalog returned %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding catalog response")
		}
		return nil
	})
}
