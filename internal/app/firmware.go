package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/openroberta/oraclient/internal/domain"
	"github.com/openroberta/oraclient/internal/ports"
)

// FirmwareConfig configures the firmware sync engine.
type FirmwareConfig struct {
	Robot         string
	Version       string
	RetryInterval time.Duration
	// Attempts is the retry budget ceiling of the checksum fetch.
	Attempts int
}

// FirmwareSync keeps the on-device hal library in sync with the update
// server by comparing an opaque server-issued checksum with the one recorded
// at the last successful install.
type FirmwareSync struct {
	cfg       FirmwareConfig
	transport ports.Transport
	checksums ports.ChecksumStore
	artifacts ports.ArtifactStore
	sleeper   ports.Sleeper
	logger    ports.Logger
	emitter   EventEmitter
}

// NewFirmwareSync creates a firmware sync engine.
func NewFirmwareSync(
	cfg FirmwareConfig,
	transport ports.Transport,
	checksums ports.ChecksumStore,
	artifacts ports.ArtifactStore,
	sleeper ports.Sleeper,
	logger ports.Logger,
	emitter EventEmitter,
) *FirmwareSync {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	return &FirmwareSync{
		cfg:       cfg,
		transport: transport,
		checksums: checksums,
		artifacts: artifacts,
		sleeper:   sleeper,
		logger:    logger,
		emitter:   emitterOrNoop(emitter),
	}
}

func (f *FirmwareSync) bundlePath() string {
	return "/update/" + f.cfg.Robot + "/" + f.cfg.Version + "/hal"
}

func (f *FirmwareSync) checksumPath() string { return f.bundlePath() + "/checksum" }

// Sync runs one firmware sync pass. It returns nil when the installed
// firmware is usable (up to date, updated, or kept because no update was
// offered), domain.ErrUpdateUnavailable when the device has no firmware and
// none could be installed, and ctx.Err() on cancellation.
func (f *FirmwareSync) Sync(ctx context.Context) error {
	remote, err := f.fetchChecksum(ctx)
	if err != nil {
		return err
	}

	local, err := f.checksums.Load(ctx)
	if err != nil {
		f.logger.Warn("cannot read local checksum, treating firmware as absent", ports.Err(err))
		local = domain.NoHash
	}

	if remote == local {
		f.logger.Info("hal library up to date", ports.String("checksum", string(local)))
		f.emitter.OnFirmwareSync(SyncUpToDate)
		return nil
	}

	f.logger.Info("updating hal library",
		ports.String("local", string(local)),
		ports.String("remote", string(remote)))

	resp, err := f.transport.Send(ctx, ports.Request{Method: http.MethodGet, Path: f.bundlePath()})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.emitter.OnConnectivityError(f.bundlePath())
		return f.noUpdate(local, err)
	}
	name := resp.Filename()
	if name == "" {
		return f.noUpdate(local, nil)
	}

	if err := f.install(ctx, name, resp.Body); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !local.Present() {
			f.emitter.OnFirmwareSync(SyncFatal)
			return fmt.Errorf("%w: %v", domain.ErrUpdateUnavailable, err)
		}
		f.logger.Error("hal update failed, continuing with old hal", ports.Err(err))
		f.emitter.OnFirmwareSync(SyncFailed)
		return nil
	}

	if err := f.checksums.Save(ctx, remote); err != nil {
		f.logger.Error("hal installed but checksum not recorded", ports.Err(err))
		f.emitter.OnFirmwareSync(SyncFailed)
		return nil
	}
	f.logger.Info("hal library updated", ports.String("checksum", string(remote)))
	f.emitter.OnFirmwareSync(SyncUpdated)
	return nil
}

// fetchChecksum retries until the update server answers. The loop never
// gives up on its own: an exhausted budget is refilled and retrying
// continues. Only cancellation of ctx ends it.
func (f *FirmwareSync) fetchChecksum(ctx context.Context) (domain.Checksum, error) {
	req := ports.Request{Method: http.MethodGet, Path: f.checksumPath()}
	budget := domain.NewRetryBudget(f.cfg.Attempts)
	for {
		resp, err := f.transport.Send(ctx, req)
		if err == nil {
			if resp.Status/100 != 2 {
				f.logger.Warn("checksum request returned error status", ports.Int("status", resp.Status))
			}
			return domain.Checksum(resp.Body), nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		f.emitter.OnConnectivityError(req.Path)
		f.logger.Warn("update server unavailable, retrying",
			ports.Err(err),
			ports.Duration("wait", f.cfg.RetryInterval),
			ports.Int("attempts_left", budget.Left()-1))
		if budget.Spend() {
			f.logger.Warn("update server unavailable (cannot get checksum), resetting attempts and continuing",
				ports.Int("attempts", budget.Ceiling()))
		}
		if err := f.sleeper.Sleep(ctx, f.cfg.RetryInterval); err != nil {
			return "", err
		}
	}
}

func (f *FirmwareSync) install(ctx context.Context, name string, bundle []byte) error {
	path, err := f.artifacts.Put(ctx, name, bundle)
	if err != nil {
		return fmt.Errorf("store bundle: %w", err)
	}
	if err := f.artifacts.Unpack(ctx, path); err != nil {
		return fmt.Errorf("unpack bundle: %w", err)
	}
	return nil
}

// noUpdate handles a sync where the server offered no bundle.
func (f *FirmwareSync) noUpdate(local domain.Checksum, cause error) error {
	if local.Present() {
		f.logger.Warn("no update file was found on the server, continuing with old hal", ports.Err(cause))
		f.emitter.OnFirmwareSync(SyncKeptOld)
		return nil
	}
	f.logger.Error("no update file was found on the server and no hal present", ports.Err(cause))
	f.emitter.OnFirmwareSync(SyncFatal)
	return domain.ErrUpdateUnavailable
}
