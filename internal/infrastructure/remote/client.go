// Package remote implements the hosted backend's REST API: the
// account/session service and the document store. Both adapters sit
// behind the domain interfaces, so the rest of the system treats the
// backend as an opaque collaborator.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Tarun1516/yaakai/domain"
	"github.com/Tarun1516/yaakai/internal/metrics"
)

// Client is a thin HTTP client for the hosted backend. It holds the
// project header on every request and, after a sign-in, the session
// secret identifying the current user.
type Client struct {
	endpoint  string
	projectID string
	httpc     *http.Client
	limiter   *rate.Limiter
	recorder  metrics.RemoteCallRecorder

	mu            sync.RWMutex
	sessionSecret string
}

// ClientConfig configures a Client. Metrics may be nil.
type ClientConfig struct {
	Endpoint  string
	ProjectID string
	Timeout   time.Duration
	RateLimit rate.Limit
	RateBurst int
	Metrics   metrics.RemoteCallRecorder
}

// NewClient creates a client for the given backend endpoint.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = rate.Limit(10)
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = 20
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop{}
	}

	return &Client{
		endpoint:  cfg.Endpoint,
		projectID: cfg.ProjectID,
		httpc:     &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(cfg.RateLimit, cfg.RateBurst),
		recorder:  cfg.Metrics,
	}
}

// setSession stores the session secret used on subsequent requests.
func (c *Client) setSession(secret string) {
	c.mu.Lock()
	c.sessionSecret = secret
	c.mu.Unlock()
}

// clearSession drops the stored session secret.
func (c *Client) clearSession() {
	c.setSession("")
}

func (c *Client) session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionSecret
}

// errorPayload is the backend's error body shape.
type errorPayload struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// do performs one backend call. Transport failures wrap
// domain.ErrNetwork; non-2xx responses become *domain.RemoteError with
// the service's message. A nil out discards the response body.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.projectID)
	if secret := c.session(); secret != "" {
		req.Header.Set("X-Appwrite-Session", secret)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	c.recorder.RecordCallLatency(op, time.Since(start))
	if err != nil {
		c.recorder.RecordCallFailure(op, "network")
		return fmt.Errorf("%s: %w", op, domain.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := &domain.RemoteError{Code: resp.StatusCode}
		var payload errorPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
			remoteErr.Message = payload.Message
		}
		if remoteErr.Code == http.StatusUnauthorized {
			c.recorder.RecordCallFailure(op, "unauthorized")
		} else {
			c.recorder.RecordCallFailure(op, "remote")
		}
		return fmt.Errorf("%s: %w", op, remoteErr)
	}

	c.recorder.RecordCallSuccess(op)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
