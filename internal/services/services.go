package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"portfolio-bff/internal/config"
	"portfolio-bff/internal/resilience"
	"portfolio-bff/internal/telemetry"
)

var (
	ErrUnauthorized = errors.New("backend rejected credentials")
	ErrNotFound     = errors.New("backend resource not found")
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Message extracts the backend's own explanation from err, falling back to
// err.Error().
func Message(err error) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}

type tokenKey struct{}

// WithToken attaches the bearer token sent with every request made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}

type ServiceClient struct {
	baseURL  string
	client   *http.Client
	breaker  *resilience.CircuitBreaker
	attempts int
	delay    time.Duration
}

func NewServiceClient(cfg *config.Config) *ServiceClient {
	return &ServiceClient{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		breaker:  resilience.NewCircuitBreaker(cfg.BreakerThreshold, cfg.BreakerTimeout, retryable),
		attempts: cfg.RetryAttempts,
		delay:    cfg.RetryDelay,
	}
}

// retryable reports whether err says something about backend health rather
// than about the request itself.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, resilience.ErrOpen) || errors.Is(err, resilience.ErrHalfOpen) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	return true
}

// get performs an idempotent read with retries.
func (s *ServiceClient) get(ctx context.Context, path string, target any) error {
	return resilience.Retry(ctx, s.attempts, s.delay, func() error {
		err := s.breaker.Execute(func() error {
			return s.send(ctx, http.MethodGet, path, nil, target)
		})
		if err != nil && !retryable(err) {
			return resilience.Permanent(err)
		}
		return err
	})
}

// mutate sends a state-changing request exactly once.
func (s *ServiceClient) mutate(ctx context.Context, method, path string, body, target any) error {
	return s.breaker.Execute(func() error {
		return s.send(ctx, method, path, body, target)
	})
}

func (s *ServiceClient) send(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return resilience.Permanent(pkgerrors.Wrapf(err, "encode %s %s", method, path))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		telemetry.ObserveBackend(resourceOf(path), method, 0, time.Since(start))
		return pkgerrors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()
	telemetry.ObserveBackend(resourceOf(path), method, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: readMessage(resp.Body),
		}
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return pkgerrors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

func readMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}

func resourceOf(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
