package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openroberta/oraclient/internal/cliconfig"
	"github.com/openroberta/oraclient/internal/observability/metrics"
	pkglog "github.com/openroberta/oraclient/pkg/log"
	"github.com/openroberta/oraclient/pkg/oraclient"
)

func TestFinish(t *testing.T) {
	logger := pkglog.NewNoopLogger()
	boom := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"success", nil, nil},
		{"no firmware exits cleanly", fmt.Errorf("sync: %w", oraclient.ErrUpdateUnavailable), nil},
		{"signal exits cleanly", context.Canceled, nil},
		{"other errors propagate", boom, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := finish(logger, tt.in); !errors.Is(got, tt.want) || (tt.want == nil && got != nil) {
				t.Errorf("finish(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	setLevel(true)
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("GlobalLevel() = %v, want debug", zerolog.GlobalLevel())
	}
	setLevel(false)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("GlobalLevel() = %v, want info", zerolog.GlobalLevel())
	}
}

func TestOpenDebugLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oraclient.debug")
	for _, line := range []string{"one\n", "two\n"} {
		f, err := openDebugLog(path)
		if err != nil {
			t.Fatalf("openDebugLog() error = %v", err)
		}
		if _, err := f.WriteString(line); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "one\ntwo\n" {
		t.Errorf("debug log = %q, want both lines", b)
	}
}

func TestServeMetrics_BindFailureIsReported(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: metricsMux(metrics.New())}
	if err := serveMetrics(srv); err == nil {
		t.Fatal("serveMetrics() error = nil for an address in use")
	}
}

func TestRun_MetricsBindFailureKeepsClient(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	var pushes atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/update/nao/2-8/hal/checksum":
			_, _ = w.Write([]byte("c0ffee"))
		case "/pushcmd":
			if pushes.Add(1) < 3 {
				_, _ = w.Write([]byte(`{"cmd":"repeat"}`))
				return
			}
			_, _ = w.Write([]byte(`{"cmd":"abort"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "firmware.hash"), []byte("c0ffee"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := cliconfig.DefaultConfig()
	cfg.ServerURL = ts.URL
	cfg.WorkDir = dir
	cfg.MetricsAddr = ln.Addr().String()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if err := run(context.Background(), cfg, ""); err != nil {
		t.Fatalf("run() error = %v, want nil when only metrics fail", err)
	}
	if n := pushes.Load(); n != 3 {
		t.Errorf("pushes = %d, want 3", n)
	}
}
