package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openroberta/oraclient/internal/domain"
	"github.com/openroberta/oraclient/internal/ports"
)

func TestTransport_PostJSON(t *testing.T) {
	var gotBody, gotType, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Filename", "prog.py")
		_, _ = w.Write([]byte(`{"cmd":"repeat"}`))
	}))
	defer srv.Close()

	tr := NewTransport(srv.URL+"/", srv.Client())
	resp, err := tr.Send(context.Background(), ports.Request{
		Method: http.MethodPost,
		Path:   "/pushcmd",
		Body:   []byte(`{"cmd":"push"}`),
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotPath != "/pushcmd" {
		t.Errorf("path = %s, want /pushcmd", gotPath)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", gotType)
	}
	if gotBody != `{"cmd":"push"}` {
		t.Errorf("body = %s", gotBody)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.Status)
	}
	if resp.Filename() != "prog.py" {
		t.Errorf("Filename() = %q, want prog.py", resp.Filename())
	}
	if string(resp.Body) != `{"cmd":"repeat"}` {
		t.Errorf("response body = %s", resp.Body)
	}
}

func TestTransport_ErrorStatusIsNotConnectivity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such robot", http.StatusNotFound)
	}))
	defer srv.Close()

	resp, err := NewTransport(srv.URL, srv.Client()).Send(context.Background(), ports.Request{
		Method: http.MethodGet,
		Path:   "/update/nao/2-8/hal/checksum",
	})
	if err != nil {
		t.Fatalf("Send() error = %v, want nil for a 404", err)
	}
	if resp.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.Status)
	}
}

func TestTransport_ConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewTransport(url, &http.Client{Timeout: time.Second}).Send(context.Background(), ports.Request{
		Method: http.MethodGet,
		Path:   "/update/nao/2-8/hal/checksum",
	})
	if !domain.IsConnectivity(err) {
		t.Fatalf("Send() error = %v, want ConnectivityError", err)
	}
}

func TestTransport_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTransport(srv.URL, srv.Client()).Send(ctx, ports.Request{Method: http.MethodGet, Path: "/"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Send() error = %v, want context.Canceled", err)
	}
	if domain.IsConnectivity(err) {
		t.Error("cancellation reported as connectivity error")
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient(5*time.Second, true)
	if c.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport is %T, want *http.Transport", c.Transport)
	}
	if tr.TLSClientConfig == nil || !tr.TLSClientConfig.InsecureSkipVerify {
		t.Error("InsecureSkipVerify not applied")
	}
}
