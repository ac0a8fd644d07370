package ports

import "net/http"

// HTTPClient is what the HTTP transport needs from a client. *http.Client
// satisfies it; tests and embedders may substitute their own to intercept
// server exchanges.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
