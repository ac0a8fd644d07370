package app

import "github.com/openroberta/oraclient/internal/domain"

// Firmware sync outcomes reported to the EventEmitter.
const (
	SyncUpToDate = "up_to_date"
	SyncUpdated  = "updated"
	SyncKeptOld  = "kept_old"
	SyncFatal    = "no_firmware"
	SyncFailed   = "failed"
)

// EventEmitter receives client events. Calls are made synchronously from the
// client goroutine.
type EventEmitter interface {
	OnStateChange(previous, current domain.SessionState)
	OnDirective(d domain.Directive)
	OnConnectivityError(op string)
	OnFirmwareSync(result string)
}

type noopEmitter struct{}

func (noopEmitter) OnStateChange(previous, current domain.SessionState) {}
func (noopEmitter) OnDirective(d domain.Directive)                      {}
func (noopEmitter) OnConnectivityError(op string)                       {}
func (noopEmitter) OnFirmwareSync(result string)                        {}

func emitterOrNoop(e EventEmitter) EventEmitter {
	if e == nil {
		return noopEmitter{}
	}
	return e
}
