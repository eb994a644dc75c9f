package gtapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "http://127.0.0.1:8000/api/v1"
	defaultTimeout = 10 * time.Second

	// La API del back-office no documenta límites; 20 req/s es holgado para el
	// fan-out de dashboards y relaciones de KYC.
	defaultRatePerSec = 20
	defaultBurst      = 10

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// ErrNotFound se devuelve cuando la API responde 404.
var ErrNotFound = errors.New("resource not found")

// APIError es una respuesta 4xx de la API. No se reintenta.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client error %d: %s", e.StatusCode, e.Detail)
}

// Unwrap permite errors.Is(err, ErrNotFound) para los 404.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client es el HTTP client de la API REST de GT Funds con rate limiting y retries.
type Client struct {
	http      *http.Client
	baseURL   string
	limiter   *rate.Limiter
	retryWait time.Duration
}

// Option configura un Client.
type Option func(*Client)

// WithTimeout fija el timeout de cada request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRate fija el ritmo máximo de requests por segundo.
func WithRate(perSec float64) Option {
	return func(c *Client) {
		if perSec > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSec), defaultBurst)
		}
	}
}

// WithRetryWait fija la espera base del backoff exponencial.
func WithRetryWait(d time.Duration) Option {
	return func(c *Client) {
		c.retryWait = d
	}
}

// NewClient crea un Client contra baseURL. Si baseURL está vacío usa la API local.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		limiter:   rate.NewLimiter(defaultRatePerSec, defaultBurst),
		retryWait: baseRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// url construye la URL absoluta de un path de la API.
func (c *Client) url(format string, args ...any) string {
	return c.baseURL + fmt.Sprintf(format, args...)
}

// get hace un GET con rate limiting y retries.
func (c *Client) get(ctx context.Context, url string, out any) error {
	return c.doWithRetry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return c.http.Do(req)
	}, out)
}

// doWithRetry ejecuta la función con backoff exponencial.
// Reintenta errores de transporte, 429 y 5xx; los 4xx se devuelven como *APIError.
func (c *Client) doWithRetry(ctx context.Context, fn func() (*http.Response, error), out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := fn()
		if err != nil {
			if ctx.Err() != nil || attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", attempt, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("rate limited (429) after %d retries", maxRetries)
			}
			slog.Warn("rate limited by API", "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			slog.Debug("server error, retrying", "status", resp.StatusCode, "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
		}

		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * c.retryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}

// errorDetail extrae el campo "detail" de los errores de la API; si no existe
// devuelve el body tal cual.
func errorDetail(body []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &e) == nil && e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(string(body))
}
