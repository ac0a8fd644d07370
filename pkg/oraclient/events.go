package oraclient

import (
	"github.com/openroberta/oraclient/internal/app"
	"github.com/openroberta/oraclient/internal/domain"
)

// State is the session state of a Client.
type State = domain.SessionState

// Session states.
const (
	StateUnregistered = domain.StateUnregistered
	StateRegistering  = domain.StateRegistering
	StatePolling      = domain.StatePolling
	StateDownloading  = domain.StateDownloading
	StateAborted      = domain.StateAborted
)

// Directive is a parsed server instruction.
type Directive = domain.Directive

// EventHandler receives client events. Implementations should return quickly;
// they run on the client goroutine.
type EventHandler = app.EventEmitter

// BaseEventHandler provides no-op implementations of all EventHandler
// methods. Embed it to handle only some events.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(previous, current State) {}
func (BaseEventHandler) OnDirective(d Directive)                {}
func (BaseEventHandler) OnConnectivityError(op string)          {}
func (BaseEventHandler) OnFirmwareSync(result string)           {}
