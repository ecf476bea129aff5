// Package catalogapi talks to the remote storefront REST service that owns
// the product catalog and stock levels.
package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rocketshoes/internal/domain"
)

// StatusError reports a non-2xx response from the remote service.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog api: %s %s: status %d", e.Method, e.Path, e.Code)
}

// Unwrap lets callers match 404 responses with errors.Is(err, domain.ErrNotFound).
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

// Client is a JSON client for GET /products, GET /products/:id and GET /stock/:id.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New builds a Client. A zero timeout leaves requests unbounded; callers can
// still cancel through the context.
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	c.logger.Printf("catalog api: list products count=%d", len(products))
	return products, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, "/products/"+strconv.Itoa(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetStock fetches the available quantity for a product. The value is never cached.
func (c *Client) GetStock(ctx context.Context, id int) (*domain.Stock, error) {
	var s domain.Stock
	if err := c.get(ctx, "/stock/"+strconv.Itoa(id), &s); err != nil {
		return nil, err
	}
	c.logger.Printf("catalog api: stock id=%d amount=%d", id, s.Amount)
	return &s, nil
}

// Ping checks that the remote service answers.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/products", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return &StatusError{Method: http.MethodHead, Path: "/products", Code: resp.StatusCode}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("catalog api: build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("catalog api: GET %s error=%v", path, err)
		return fmt.Errorf("catalog api: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Printf("catalog api: GET %s status=%d", path, resp.StatusCode)
		return &StatusError{Method: http.MethodGet, Path: path, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Printf("catalog api: GET %s decode error=%v", path, err)
		return fmt.Errorf("catalog api: decode %s: %w", path, err)
	}
	return nil
}
