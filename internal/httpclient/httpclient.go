package httpclient

import (
	"net/http"
	"time"
)

// HTTPClient is the seam the tracker and AI clients are tested through.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// New returns an http.Client with the bounded timeout callers inject into
// every outbound service client.
func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
