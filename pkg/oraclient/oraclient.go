package oraclient

import (
	"context"
	"fmt"

	"github.com/openroberta/oraclient/internal/adapters/exec"
	"github.com/openroberta/oraclient/internal/adapters/fs"
	httpAdapter "github.com/openroberta/oraclient/internal/adapters/http"
	"github.com/openroberta/oraclient/internal/app"
	"github.com/openroberta/oraclient/internal/domain"
	"github.com/openroberta/oraclient/internal/ports"
)

// ErrUpdateUnavailable is returned by Run and SyncFirmware when the server
// offers no firmware bundle and none was installed before. The session is
// never started in that case.
var ErrUpdateUnavailable = domain.ErrUpdateUnavailable

// Client registers the device with the server, polls it for commands and
// keeps the hal firmware in sync.
type Client struct {
	config   Config
	identity domain.DeviceIdentity
	client   *app.Client
	logger   ports.Logger
}

// New creates a client. No network traffic happens until Run or
// SyncFirmware is called.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = httpAdapter.NewClient(cfg.HTTPTimeout, cfg.InsecureSkipVerify)
	}

	token := cfg.Token
	if token == "" {
		token = domain.GenerateToken(cfg.TokenLength)
	}
	identity := domain.DeviceIdentity{
		Token:           token,
		MACAddress:      cfg.MACAddress,
		BrickName:       cfg.BrickName,
		FirmwareName:    cfg.FirmwareName,
		FirmwareVersion: cfg.FirmwareVersion,
		RobotName:       cfg.Robot,
		MenuVersion:     cfg.MenuVersion,
	}

	executor := o.executor
	if executor == nil {
		if len(cfg.RunCommand) > 0 {
			runner, err := exec.NewRunner(cfg.RunCommand, cfg.RunTimeout, o.logger)
			if err != nil {
				return nil, fmt.Errorf("program runner: %w", err)
			}
			executor = runner
		} else {
			executor = exec.Noop{}
		}
	}

	transport := httpAdapter.NewTransport(cfg.ServerURL, o.httpClient)
	artifacts := fs.NewArtifactDir(cfg.WorkDir)
	device := app.Device{Identity: identity, Battery: o.battery}

	firmware := app.NewFirmwareSync(app.FirmwareConfig{
		Robot:         cfg.Robot,
		Version:       cfg.FirmwareVersion,
		RetryInterval: cfg.RetryInterval,
		Attempts:      cfg.ChecksumAttempts,
	}, transport, fs.NewChecksumFile(cfg.WorkDir), artifacts, o.sleeper, o.logger, o.eventHandler)

	fetcher := app.NewFetcher(app.FetcherConfig{
		Attempts: cfg.DownloadAttempts,
	}, device, transport, artifacts, executor, o.logger)

	session := app.NewSession(app.SessionConfig{
		RetryInterval: cfg.RetryInterval,
	}, device, transport, fetcher, o.sleeper, o.logger, o.eventHandler)

	return &Client{
		config:   cfg,
		identity: identity,
		client:   app.NewClient(firmware, session, o.logger),
		logger:   o.logger,
	}, nil
}

// Run syncs the firmware once and then registers and polls until the server
// aborts the session (nil) or ctx is cancelled (ctx.Err()).
func (c *Client) Run(ctx context.Context) error {
	c.logger.Info("starting client",
		ports.String("server", c.config.ServerURL),
		ports.String("robot", c.config.Robot),
		ports.String("work_dir", c.config.WorkDir))
	return c.client.Run(ctx)
}

// SyncFirmware runs a single firmware sync pass without starting the session.
func (c *Client) SyncFirmware(ctx context.Context) error {
	return c.client.SyncFirmware(ctx)
}

// Token returns the pairing token the user enters on the server.
func (c *Client) Token() string { return c.identity.Token }

// Status returns the current session state.
// Safe to call concurrently from any goroutine.
func (c *Client) Status() State { return c.client.Session().State() }
