package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/openroberta/oraclient/internal/domain"
	"github.com/openroberta/oraclient/internal/ports"
)

// DownloadEndpoint serves the program artifact after a download directive.
const DownloadEndpoint = "/download"

// Default download retry configuration.
const (
	DefaultDownloadAttempts   = 3
	DefaultDownloadRetryDelay = time.Second
)

// FetcherConfig configures the program fetcher.
type FetcherConfig struct {
	Attempts   uint
	RetryDelay time.Duration
}

// Fetcher downloads the program announced by a download directive, stores it
// in the working directory and hands it to the executor.
type Fetcher struct {
	cfg       FetcherConfig
	device    Device
	transport ports.Transport
	artifacts ports.ArtifactStore
	executor  ports.Executor
	logger    ports.Logger
}

// NewFetcher creates a program fetcher.
func NewFetcher(
	cfg FetcherConfig,
	device Device,
	transport ports.Transport,
	artifacts ports.ArtifactStore,
	executor ports.Executor,
	logger ports.Logger,
) *Fetcher {
	if cfg.Attempts == 0 {
		cfg.Attempts = DefaultDownloadAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultDownloadRetryDelay
	}
	return &Fetcher{
		cfg:       cfg,
		device:    device,
		transport: transport,
		artifacts: artifacts,
		executor:  executor,
		logger:    logger,
	}
}

// DownloadAndExecute fetches, stores and runs the pending program, returning
// its exit code. Connectivity failures that outlast the retry attempts are
// returned as *domain.ConnectivityError.
func (f *Fetcher) DownloadAndExecute(ctx context.Context) (string, error) {
	body, err := f.device.envelope(domain.CommandDownload, domain.DefaultExitValue)
	if err != nil {
		return "", err
	}
	req := ports.Request{Method: http.MethodPost, Path: DownloadEndpoint, Body: body}

	resp, err := retry.DoWithData(func() (ports.Response, error) {
		return f.transport.Send(ctx, req)
	},
		retry.Attempts(f.cfg.Attempts),
		retry.Delay(f.cfg.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.RetryIf(domain.IsConnectivity),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("download program: %w", err)
	}

	name := resp.Filename()
	if name == "" {
		return "", &domain.ProtocolDecodeError{
			Reason: fmt.Sprintf("download response (status %d) has no %s header", resp.Status, ports.FilenameHeader),
		}
	}
	path, err := f.artifacts.Put(ctx, name, resp.Body)
	if err != nil {
		return "", fmt.Errorf("store program: %w", err)
	}
	f.logger.Info("program downloaded",
		ports.String("filename", name),
		ports.Int("bytes", len(resp.Body)))

	code, err := f.executor.Execute(ctx, path)
	if err != nil {
		return "", fmt.Errorf("execute program: %w", err)
	}
	return code, nil
}
