package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/openroberta/oraclient/internal/cliconfig"
	"github.com/openroberta/oraclient/internal/observability/metrics"
	"github.com/openroberta/oraclient/internal/ports"
	pkglog "github.com/openroberta/oraclient/pkg/log"
	"github.com/openroberta/oraclient/pkg/oraclient"
)

const shutdownTimeout = 5 * time.Second

func run(parent context.Context, cfg cliconfig.Config, cfgFile string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var extra []io.Writer
	if cfg.Debug {
		f, err := openDebugLog(cfg.DebugLog)
		if err != nil {
			return err
		}
		defer f.Close()
		extra = append(extra, f)
	}
	setLevel(cfg.Debug)
	zl := pkglog.NewConsoleLogger(extra...)
	logger := pkglog.NewZerologAdapterWithLogger(zl)

	zl.Info().Interface("config", cfg).Msg("configuration")

	opts := []oraclient.Option{oraclient.WithLogger(logger)}
	var recorder *metrics.Recorder
	if cfg.MetricsAddr != "" {
		recorder = metrics.New()
		opts = append(opts, oraclient.WithEventHandler(recorder))
	}

	client, err := oraclient.New(cfg.ClientConfig(), opts...)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	fmt.Fprintf(os.Stdout, "robot token: %s\n", client.Token())

	if cfg.Once {
		return finish(logger, client.SyncFirmware(ctx))
	}

	g, gctx := errgroup.WithContext(ctx)
	// Auxiliary services stop once the client returns.
	auxCtx, stopAux := context.WithCancel(gctx)
	defer stopAux()

	g.Go(func() error {
		defer stopAux()
		return finish(logger, client.Run(gctx))
	})

	if recorder != nil {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux(recorder), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			logger.Info("serving metrics", ports.String("addr", cfg.MetricsAddr))
			if err := serveMetrics(srv); err != nil {
				logger.Error("metrics server stopped, client keeps running", ports.Err(err))
			}
			return nil
		})
		g.Go(func() error {
			<-auxCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if cfgFile != "" {
		// Only the level follows the file; the debug log file is opened at
		// startup and is not created by a later reload.
		w, err := cliconfig.NewWatcher(cfgFile, logger, func(fc cliconfig.FileConfig) {
			if fc.Debug != nil {
				setLevel(*fc.Debug)
				logger.Info("log level reloaded", ports.Bool("debug", *fc.Debug))
			}
		})
		if err != nil {
			logger.Warn("config watcher disabled", ports.Err(err))
		} else {
			g.Go(func() error { return w.Run(auxCtx) })
		}
	}

	notify(logger, daemon.SdNotifyReady)
	defer notify(logger, daemon.SdNotifyStopping)

	return g.Wait()
}

// finish maps the client result to the process outcome. A missing firmware
// bundle and a shutdown signal both end the process cleanly.
func finish(logger ports.Logger, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, oraclient.ErrUpdateUnavailable):
		logger.Error("no hal library installed and none offered by the server, exiting", ports.Err(err))
		return nil
	case errors.Is(err, context.Canceled):
		logger.Info("received signal, stopping")
		return nil
	default:
		return err
	}
}

// serveMetrics blocks until srv is shut down. A failure to serve is returned
// but never ends the process.
func serveMetrics(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func metricsMux(recorder *metrics.Recorder) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	return mux
}

func openDebugLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return f, nil
}

func setLevel(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func notify(logger ports.Logger, state string) {
	if _, err := daemon.SdNotify(false, state); err != nil {
		logger.Debug("sd_notify failed", ports.String("state", state), ports.Err(err))
	}
}
