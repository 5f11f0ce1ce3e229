package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-admin-frontend/internal/errors"
	"github.com/jrsteele09/go-admin-frontend/metrics"
)

// Conn is one browser request's view of the account service. Reads and writes made through
// the same Conn share a cookie jar, so the anti-forgery token fetched by a write is bound to
// the cookies the write is sent with.
type Conn struct {
	client *Client
	http   *http.Client
	jar    http.CookieJar
}

// RelayResult describes a completed write.
type RelayResult struct {
	CSRFToken string
	Body      []byte
	// Cookies holds the upstream cookies present after the write, as a Cookie header value.
	Cookies string
}

// FetchCSRF obtains a fresh anti-forgery token.
func (c *Conn) FetchCSRF(ctx context.Context) (string, error) {
	var resp CSRFResponse
	if err := c.Get(ctx, PathCSRF, &resp); err != nil {
		metrics.CSRFFetches.WithLabelValues(metrics.OutcomeError).Inc()
		if apperrors.Is(err, apperrors.ErrInvalidResponse) {
			return "", apperrors.Wrapf(apperrors.ErrMissingCSRFToken, "[Conn FetchCSRF]")
		}
		return "", err
	}
	metrics.CSRFFetches.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return resp.CSRFToken, nil
}

// Get fetches path and decodes the JSON body into out, which is then validated.
func (c *Conn) Get(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidResponse, "[Conn Get] decoding %s: %v", path, err)
	}
	if err := c.client.check(out); err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidResponse, "[Conn Get] %s: %v", path, err)
	}
	return nil
}

// GetText fetches a single textual value; both plain-text and JSON string bodies are accepted.
func (c *Conn) GetText(ctx context.Context, path string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return "", err
	}
	trimmed := bytes.TrimSpace(body)
	if json.Valid(trimmed) && len(trimmed) > 0 && trimmed[0] != '"' {
		// numbers come back as bare JSON values
		return string(trimmed), nil
	}
	return textPayload(trimmed), nil
}

// Relay performs a state-changing call: a fresh anti-forgery token is fetched first and sent
// with the write through the same cookie jar.
func (c *Conn) Relay(ctx context.Context, method, path string, payload any) (*RelayResult, error) {
	token, err := c.FetchCSRF(ctx)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, method, path, payload, token)
	if err != nil {
		return nil, err
	}

	return &RelayResult{
		CSRFToken: token,
		Body:      body,
		Cookies:   c.SessionCookie(),
	}, nil
}

// SessionCookie returns the upstream cookies held by the jar, excluding the language cookie,
// as a Cookie header value.
func (c *Conn) SessionCookie() string {
	var parts []string
	for _, ck := range c.jar.Cookies(c.client.baseURL) {
		if ck.Name == LangCookie {
			continue
		}
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}

func (c *Conn) do(ctx context.Context, method, path string, payload any, csrfToken string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("[Conn %s %s] encoding body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.client.endpoint(path), reqBody)
	if err != nil {
		return nil, fmt.Errorf("[Conn %s %s] building request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if csrfToken != "" {
		req.Header.Set(CSRFHeader, csrfToken)
	}

	label := endpointLabel(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(method, label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(method, label, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("[Conn %s %s] %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(method, label, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("[Conn %s %s] reading body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequests.WithLabelValues(method, label, metrics.OutcomeError).Inc()
		return nil, &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    textPayload(body),
		}
	}

	metrics.UpstreamRequests.WithLabelValues(method, label, metrics.OutcomeSuccess).Inc()
	return body, nil
}
