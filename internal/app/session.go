package app

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/openroberta/oraclient/internal/domain"
	"github.com/openroberta/oraclient/internal/ports"
)

// PushEndpoint receives register and push envelopes.
const PushEndpoint = "/pushcmd"

// SessionConfig configures the session state machine.
type SessionConfig struct {
	RetryInterval time.Duration
}

// programFetcher is satisfied by *Fetcher.
type programFetcher interface {
	DownloadAndExecute(ctx context.Context) (string, error)
}

// Session drives the register/poll exchange with the orchestration server.
//
// States: Unregistered -> Registering -> Polling -> {Downloading -> Polling,
// Aborted}. Any connectivity loss or undecodable answer while polling sends
// the session back to Registering, since the server may have forgotten it.
// Unrecognized
// directives never change the state: registration is attempted again after
// the retry interval, polling simply continues.
//
// The only state carried from one exchange to the next is the exit value of
// the last executed program.
type Session struct {
	cfg       SessionConfig
	device    Device
	transport ports.Transport
	fetcher   programFetcher
	sleeper   ports.Sleeper
	logger    ports.Logger
	emitter   EventEmitter

	mu       sync.RWMutex
	state    domain.SessionState
	lastExit string
}

// NewSession creates a session in the Unregistered state.
func NewSession(
	cfg SessionConfig,
	device Device,
	transport ports.Transport,
	fetcher programFetcher,
	sleeper ports.Sleeper,
	logger ports.Logger,
	emitter EventEmitter,
) *Session {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	return &Session{
		cfg:       cfg,
		device:    device,
		transport: transport,
		fetcher:   fetcher,
		sleeper:   sleeper,
		logger:    logger,
		emitter:   emitterOrNoop(emitter),
		state:     domain.StateUnregistered,
		lastExit:  domain.DefaultExitValue,
	}
}

// State returns the current session state.
// Safe to call concurrently with Run.
func (s *Session) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LastExitValue returns the exit value reported with the next push.
func (s *Session) LastExitValue() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastExit
}

// Run registers and then polls until the server aborts the session, in which
// case it returns nil, or until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("robot token", ports.String("token", s.device.Identity.Token))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch s.State() {
		case domain.StateAborted:
			s.logger.Info("session aborted by server, polling stopped")
			return nil
		case domain.StatePolling:
			err = s.poll(ctx)
		default:
			err = s.register(ctx)
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) register(ctx context.Context) error {
	s.transition(domain.StateRegistering)

	d, err := s.exchange(ctx, domain.CommandRegister)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if domain.IsProtocolDecode(err) {
			s.logger.Warn("robot was not registered within timeout, reconnecting",
				ports.Err(err), ports.Duration("wait", s.cfg.RetryInterval))
		} else {
			s.logger.Warn("server unavailable, reconnecting",
				ports.Err(err), ports.Duration("wait", s.cfg.RetryInterval))
		}
		return s.wait(ctx)
	}

	switch d {
	case domain.DirectiveRepeat:
		s.transition(domain.StatePolling)
	case domain.DirectiveAbort:
		s.transition(domain.StateAborted)
	default:
		s.logger.Warn("unexpected directive during registration, retrying",
			ports.String("directive", d.String()))
		return s.wait(ctx)
	}
	return nil
}

func (s *Session) poll(ctx context.Context) error {
	s.logger.Debug("started polling")

	d, err := s.exchange(ctx, domain.CommandPush)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Connectivity loss and undecodable answers (typically a proxy
		// error page while the server restarts) both mean the server may
		// have dropped the session.
		return s.reconnect(ctx, err)
	}

	switch d {
	case domain.DirectiveRepeat:
		s.logger.Debug("received response", ports.String("directive", d.String()))
	case domain.DirectiveDownload:
		s.logger.Info("download issued")
		return s.download(ctx)
	case domain.DirectiveAbort:
		s.transition(domain.StateAborted)
	default:
		s.logger.Debug("ignoring unknown directive")
	}
	return nil
}

func (s *Session) download(ctx context.Context) error {
	s.transition(domain.StateDownloading)

	code, err := s.fetcher.DownloadAndExecute(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if domain.IsConnectivity(err) {
			return s.reconnect(ctx, err)
		}
		s.logger.Error("program download failed", ports.Err(err))
		s.transition(domain.StatePolling)
		return nil
	}

	s.mu.Lock()
	s.lastExit = code
	s.mu.Unlock()
	s.transition(domain.StatePolling)
	return nil
}

// reconnect waits out the retry interval and sends the session back to
// registration.
func (s *Session) reconnect(ctx context.Context, cause error) error {
	s.logger.Warn("server unavailable, re-registering",
		ports.Err(cause), ports.Duration("wait", s.cfg.RetryInterval))
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.transition(domain.StateRegistering)
	return nil
}

// exchange sends one envelope to the push endpoint and decodes the directive.
func (s *Session) exchange(ctx context.Context, cmd domain.Command) (domain.Directive, error) {
	body, err := s.device.envelope(cmd, s.lastExit)
	if err != nil {
		return domain.DirectiveUnknown, err
	}
	resp, err := s.transport.Send(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   PushEndpoint,
		Body:   body,
	})
	if err != nil {
		if domain.IsConnectivity(err) {
			s.emitter.OnConnectivityError(PushEndpoint)
		}
		return domain.DirectiveUnknown, err
	}
	d, err := domain.ParseDirective(resp.Body)
	if err != nil {
		return d, err
	}
	s.emitter.OnDirective(d)
	return d, nil
}

func (s *Session) wait(ctx context.Context) error {
	return s.sleeper.Sleep(ctx, s.cfg.RetryInterval)
}

func (s *Session) transition(to domain.SessionState) {
	s.mu.Lock()
	from := s.state
	if from == to {
		s.mu.Unlock()
		return
	}
	s.state = to
	s.mu.Unlock()
	s.emitter.OnStateChange(from, to)
	s.logger.Info("state transition",
		ports.String("from", from.String()),
		ports.String("to", to.String()))
}
