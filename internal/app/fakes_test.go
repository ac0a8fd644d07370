package app

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/openroberta/oraclient/internal/domain"
	"github.com/openroberta/oraclient/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

type step struct {
	resp ports.Response
	err  error
}

func directive(cmd string) step {
	return body(`{"cmd":"` + cmd + `"}`)
}

func body(s string) step {
	return step{resp: ports.Response{Status: http.StatusOK, Header: http.Header{}, Body: []byte(s)}}
}

func file(name, contents string) step {
	h := http.Header{}
	h.Set(ports.FilenameHeader, name)
	return step{resp: ports.Response{Status: http.StatusOK, Header: h, Body: []byte(contents)}}
}

func connErr() step {
	return step{err: &domain.ConnectivityError{Op: "test", Err: context.DeadlineExceeded}}
}

type recorded struct {
	method string
	path   string
	cmd    domain.Command
	exit   string
}

// fakeTransport answers each path from its own scripted queue. Once the
// push queue is drained it answers abort so session loops terminate.
type fakeTransport struct {
	t        *testing.T
	mu       sync.Mutex
	steps    map[string][]step
	requests []recorded
}

func newFakeTransport(t *testing.T) *fakeTransport {
	return &fakeTransport{t: t, steps: map[string][]step{}}
}

func (f *fakeTransport) on(path string, steps ...step) *fakeTransport {
	f.steps[path] = append(f.steps[path], steps...)
	return f
}

func (f *fakeTransport) Send(ctx context.Context, req ports.Request) (ports.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := recorded{method: req.Method, path: req.Path}
	if req.Body != nil {
		var env domain.CommandEnvelope
		if err := json.Unmarshal(req.Body, &env); err != nil {
			f.t.Errorf("request body is not an envelope: %v", err)
		}
		rec.cmd = env.Cmd
		rec.exit = env.ExitValue
	}
	f.requests = append(f.requests, rec)

	q := f.steps[req.Path]
	if len(q) == 0 {
		if req.Path == PushEndpoint {
			return directive("abort").resp, nil
		}
		f.t.Errorf("unexpected request %s %s", req.Method, req.Path)
		return ports.Response{}, &domain.ConnectivityError{Op: req.Path, Err: context.Canceled}
	}
	s := q[0]
	f.steps[req.Path] = q[1:]
	return s.resp, s.err
}

func (f *fakeTransport) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	for i, r := range f.requests {
		out[i] = r.path
	}
	return out
}

func (f *fakeTransport) commands() []domain.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Command
	for _, r := range f.requests {
		if r.cmd != "" {
			out = append(out, r.cmd)
		}
	}
	return out
}

func (f *fakeTransport) count(path string) int {
	n := 0
	for _, p := range f.paths() {
		if p == path {
			n++
		}
	}
	return n
}

// recordingSleeper never sleeps. It records each wait and can cancel a
// context after a number of waits.
type recordingSleeper struct {
	waits       []time.Duration
	cancelAfter int
	cancel      context.CancelFunc
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	if s.cancel != nil && len(s.waits) >= s.cancelAfter {
		s.cancel()
	}
	return ctx.Err()
}

type memChecksums struct {
	sum     domain.Checksum
	saves   int
	loadErr error
}

func (m *memChecksums) Load(ctx context.Context) (domain.Checksum, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	if m.sum == "" {
		return domain.NoHash, nil
	}
	return m.sum, nil
}

func (m *memChecksums) Save(ctx context.Context, sum domain.Checksum) error {
	m.saves++
	m.sum = sum
	return nil
}

type memArtifacts struct {
	files     map[string][]byte
	unpacked  []string
	putErr    error
	unpackErr error
}

func newMemArtifacts() *memArtifacts { return &memArtifacts{files: map[string][]byte{}} }

func (m *memArtifacts) Put(ctx context.Context, name string, data []byte) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	m.files[name] = data
	return "/work/" + name, nil
}

func (m *memArtifacts) Unpack(ctx context.Context, path string) error {
	if m.unpackErr != nil {
		return m.unpackErr
	}
	m.unpacked = append(m.unpacked, path)
	return nil
}

type fakeFetcher struct {
	calls int
	codes []string
	err   error
}

func (f *fakeFetcher) DownloadAndExecute(ctx context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.codes) == 0 {
		return "0", nil
	}
	c := f.codes[0]
	f.codes = f.codes[1:]
	return c, nil
}

type recordingExecutor struct {
	paths []string
	code  string
}

func (e *recordingExecutor) Execute(ctx context.Context, path string) (string, error) {
	e.paths = append(e.paths, path)
	return e.code, nil
}

type transitionEvent struct {
	from, to domain.SessionState
}

type recordingEmitter struct {
	transitions  []transitionEvent
	directives   []domain.Directive
	connectivity int
	syncs        []string
}

func (e *recordingEmitter) OnStateChange(previous, current domain.SessionState) {
	e.transitions = append(e.transitions, transitionEvent{previous, current})
}
func (e *recordingEmitter) OnDirective(d domain.Directive)  { e.directives = append(e.directives, d) }
func (e *recordingEmitter) OnConnectivityError(op string)  { e.connectivity++ }
func (e *recordingEmitter) OnFirmwareSync(result string)   { e.syncs = append(e.syncs, result) }

func testDevice() Device {
	return Device{
		Identity: domain.DeviceIdentity{
			Token:           "AABBCCDD",
			MACAddress:      "00:00:00:00:00:00",
			BrickName:       "brick_name",
			FirmwareName:    "Nao",
			FirmwareVersion: "2-8",
			RobotName:       "nao",
			MenuVersion:     "0.0.1",
		},
		Battery: FixedBattery(0),
	}
}
