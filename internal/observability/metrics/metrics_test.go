package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openroberta/oraclient/internal/domain"
)

func scrape(t *testing.T, r *Recorder) string {
	t.Helper()
	ts := httptest.NewServer(r.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read scrape: %v", err)
	}
	return string(b)
}

func TestRecorder(t *testing.T) {
	r := New()

	r.OnFirmwareSync("updated")
	r.OnStateChange(domain.StateUnregistered, domain.StateRegistering)
	r.OnDirective(domain.DirectiveRepeat)
	r.OnStateChange(domain.StateRegistering, domain.StatePolling)
	r.OnDirective(domain.DirectiveRepeat)
	r.OnConnectivityError("/pushcmd")

	body := scrape(t, r)
	for _, want := range []string{
		`oraclient_firmware_syncs_total{result="updated"} 1`,
		`oraclient_state_transitions_total{to="Polling"} 1`,
		`oraclient_directives_total{directive="repeat"} 2`,
		`oraclient_connectivity_errors_total{endpoint="/pushcmd"} 1`,
		`oraclient_session_state{state="Polling"} 1`,
		`oraclient_session_state{state="Registering"} 0`,
		`go_goroutines`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}

func TestRecorder_InitialState(t *testing.T) {
	body := scrape(t, New())
	if !strings.Contains(body, `oraclient_session_state{state="Unregistered"} 1`) {
		t.Errorf("initial state not exported:\n%s", body)
	}
}
