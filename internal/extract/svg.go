package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
)

// SVGClient downloads exported SVG documents.
type SVGClient struct {
	http  *resty.Client
	Stats *FetchStats
}

func NewSVGClient(timeout time.Duration) *SVGClient {
	return &SVGClient{
		http:  resty.New().SetTimeout(timeout),
		Stats: NewFetchStats(),
	}
}

// Fetch downloads url once and returns the body as text. Timeouts and
// connection-level failures come back as *TransientError; anything else
// (bad status, bad URL, redirect loops) is returned as a plain error.
func (c *SVGClient) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(url)
	c.Stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		return "", classify(err)
	}
	if resp.IsError() {
		return "", &StatusError{StatusCode: resp.StatusCode(), Message: resp.String()}
	}
	return resp.String(), nil
}

// Close releases idle connections.
func (c *SVGClient) Close() {
	c.http.GetClient().CloseIdleConnections()
}

// TransientError indicates a timeout or connection failure worth retrying.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient error: %s", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response. It is never retried.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, truncate(e.Message, 200))
}

// IsTransient checks if an error is worth retrying.
func IsTransient(err error) bool {
	var tErr *TransientError
	return errors.As(err, &tErr)
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransientError{Err: err}
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &opErr),
		errors.As(err, &dnsErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF):
		return &TransientError{Err: err}
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
