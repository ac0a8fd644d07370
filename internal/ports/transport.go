package ports

import (
	"context"
	"net/http"
)

// FilenameHeader names the artifact carried in a download or update response.
const FilenameHeader = "Filename"

// Request is a single exchange with the orchestration server.
// Path is relative to the server base address.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Response is the server's answer. Non-2xx statuses are ordinary responses.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Filename returns the artifact name from the Filename header, or "".
func (r Response) Filename() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get(FilenameHeader)
}

// Transport performs exchanges with the orchestration server.
type Transport interface {
	// Send performs one exchange. It returns a *domain.ConnectivityError when
	// the network exchange cannot complete. It never retries.
	Send(ctx context.Context, req Request) (Response, error)
}
