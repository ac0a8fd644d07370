package oraclient

import (
	"github.com/openroberta/oraclient/internal/app"
	"github.com/openroberta/oraclient/internal/ports"
	"github.com/openroberta/oraclient/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = log.Logger

// Executor runs a downloaded program and reports its exit code.
type Executor = ports.Executor

// BatteryGauge reports the battery level sent with every envelope.
type BatteryGauge = ports.BatteryGauge

// Option configures optional behavior of a Client.
type Option func(*options)

type options struct {
	httpClient   ports.HTTPClient
	logger       ports.Logger
	executor     ports.Executor
	battery      ports.BatteryGauge
	eventHandler EventHandler
	sleeper      ports.Sleeper
}

func defaultOptions() options {
	return options{
		logger:  log.NewNoopLogger(),
		battery: app.FixedBattery(0),
		sleeper: app.TimerSleeper{},
	}
}

// WithHTTPClient sets a custom HTTP client for server exchanges.
// If not provided, a client built from HTTPTimeout and InsecureSkipVerify is
// used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithExecutor overrides how downloaded programs are run. It takes
// precedence over Config.RunCommand.
func WithExecutor(e Executor) Option {
	return func(o *options) {
		o.executor = e
	}
}

// WithBattery sets the battery gauge. The default always reports 0.
func WithBattery(b BatteryGauge) Option {
	return func(o *options) {
		o.battery = b
	}
}

// WithEventHandler sets a handler for client events.
// Events are called synchronously from the client goroutine.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}
