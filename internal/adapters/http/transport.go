package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/openroberta/oraclient/internal/domain"
	"github.com/openroberta/oraclient/internal/ports"
)

// Transport implements ports.Transport against a base server address.
type Transport struct {
	baseURL string
	client  ports.HTTPClient
}

// NewTransport creates a transport for the server at baseURL.
func NewTransport(baseURL string, client ports.HTTPClient) *Transport {
	return &Transport{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// Send performs one exchange with the server. Failures of the network
// exchange are returned as *domain.ConnectivityError; HTTP error statuses are
// returned as ordinary responses.
func (t *Transport) Send(ctx context.Context, r ports.Request) (ports.Response, error) {
	op := r.Method + " " + r.Path

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, t.baseURL+r.Path, body)
	if err != nil {
		return ports.Response{}, fmt.Errorf("create request: %w", err)
	}
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ports.Response{}, ctx.Err()
		}
		return ports.Response{}, &domain.ConnectivityError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return ports.Response{}, ctx.Err()
		}
		return ports.Response{}, &domain.ConnectivityError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	return ports.Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   data,
	}, nil
}
