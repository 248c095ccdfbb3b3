package brawlstars

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Payload is a decoded response body: JSON when the API said so, raw text
// otherwise.
type Payload struct {
	ContentType string
	JSON        json.RawMessage
	Text        string
}

// IsJSON reports whether the payload holds a JSON document.
func (p Payload) IsJSON() bool {
	return p.JSON != nil
}

// Decode unmarshals the JSON document into v.
func (p Payload) Decode(v any) error {
	if !p.IsJSON() {
		return fmt.Errorf("%w: expected JSON, got %q", ErrUnexpectedContent, p.ContentType)
	}
	if err := json.Unmarshal(p.JSON, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// String returns the body as text.
func (p Payload) String() string {
	if p.IsJSON() {
		return string(p.JSON)
	}
	return p.Text
}

// Transport performs GET requests against the API and caches successful
// responses by URL.
type Transport struct {
	httpClient *http.Client
	token      string
	userAgent  string
	cache      *Cache
}

// NewTransport creates a transport. A nil cache disables caching.
func NewTransport(httpClient *http.Client, token, userAgent string, cache *Cache) *Transport {
	return &Transport{
		httpClient: httpClient,
		token:      token,
		userAgent:  userAgent,
		cache:      cache,
	}
}

// Request returns the decoded body for url. With useCache a live cache entry
// is returned without touching the network, and successful responses are
// stored. Non-2xx responses are returned as *HTTPError.
func (t *Transport) Request(ctx context.Context, url string, useCache bool) (Payload, error) {
	if useCache && t.cache != nil {
		if payload, ok := t.cache.Get(url); ok {
			slog.Debug("brawlstars cache hit", "url", url)
			return payload, nil
		}
		slog.Debug("brawlstars cache miss", "url", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	slog.Debug("brawlstars API request", "request_id", requestID, "url", url)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			slog.Warn("brawlstars API request timed out", "request_id", requestID, "url", url)
			return Payload{}, timeoutError(err)
		}
		return Payload{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return Payload{}, timeoutError(err)
		}
		return Payload{}, fmt.Errorf("read response: %w", err)
	}

	payload := decodeBody(resp.Header.Get("Content-Type"), body)

	if err := mapStatus(resp.StatusCode, statusReason(resp), payload.String()); err != nil {
		slog.Error("brawlstars API error",
			"request_id", requestID,
			"url", url,
			"status", resp.StatusCode,
			"reason", upstreamReason(payload))
		return Payload{}, err
	}

	if isJSONContent(payload.ContentType) && !payload.IsJSON() {
		return Payload{}, fmt.Errorf("%w: malformed JSON body", ErrUnexpectedContent)
	}

	slog.Debug("brawlstars API response",
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(body))

	if useCache && t.cache != nil {
		t.cache.Set(url, payload)
	}

	return payload, nil
}

func decodeBody(contentType string, body []byte) Payload {
	p := Payload{ContentType: contentType}
	if isJSONContent(contentType) && json.Valid(body) {
		p.JSON = json.RawMessage(body)
		return p
	}
	p.Text = string(body)
	return p
}

func isJSONContent(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "application/json")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// statusReason extracts the reason phrase from "404 Not Found".
func statusReason(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}

// upstreamReason returns the API's own "reason" field in readable form,
// e.g. "accessDenied" becomes "Access Denied".
func upstreamReason(p Payload) string {
	if !p.IsJSON() {
		return ""
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(p.JSON, &body); err != nil || body.Reason == "" {
		return ""
	}
	return HumanizeKey(body.Reason)
}
