package http

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewClient returns the HTTP client used for all server exchanges.
// A zero timeout leaves exchanges unbounded so the server can hold push
// requests open.
func NewClient(timeout time.Duration, insecureSkipVerify bool) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecureSkipVerify {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for lab servers with self-signed certificates
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}
