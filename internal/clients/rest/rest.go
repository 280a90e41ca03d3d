// Package rest holds the HTTP plumbing shared by the catalog and store clients
package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/creature-seeder/internal/errors"
)

// DefaultTimeout bounds every outbound request unless a client overrides it
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is kept for the error
const maxErrorBody = 4 << 10

// NewHTTPClient returns an http.Client with the given timeout, or
// DefaultTimeout when timeout is zero.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// IsSuccess reports whether status is 2xx
func IsSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// Send executes req. Transport failures come back as upstream errors with
// status 0; a canceled or expired ctx comes back as a canceled error.
func Send(ctx context.Context, hc *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := hc.Do(req.WithContext(ctx))
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCodef(ctx.Err(), errors.CodeCanceled, "%s %s canceled", req.Method, req.URL)
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUpstream, "%s %s failed", req.Method, req.URL).
			WithMeta(errors.MetaStatus, 0).
			WithMeta(errors.MetaURL, req.URL.String())
	}
	return resp, nil
}

// ReadBody returns up to 4KiB of the response body as trimmed text
func ReadBody(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// DecodeJSON decodes the response body into v. Bodies that do not decode are
// data shape errors.
func DecodeJSON(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.WrapWithCodef(err, errors.CodeDataShape, "failed to decode response from %s", resp.Request.URL)
	}
	return nil
}

// Drain discards what is left of the body and closes it so the connection
// can be reused.
func Drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}
