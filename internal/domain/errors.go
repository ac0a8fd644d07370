package domain

import (
	"errors"
	"fmt"
)

// ErrUpdateUnavailable is returned by the firmware sync when the server offers
// no firmware bundle and none was ever installed on the device. It is the only
// fatal condition of the client; callers terminate cleanly on it.
var ErrUpdateUnavailable = errors.New("oraclient: no firmware installed and no update offered")

// ConnectivityError reports that a network exchange could not complete
// (DNS, TCP, TLS or timeout). Well-formed HTTP error statuses are not
// connectivity errors.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connectivity: %s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ProtocolDecodeError reports a response that could not be interpreted:
// malformed JSON, a missing cmd field or a missing Filename header.
type ProtocolDecodeError struct {
	Reason string
	Err    error
}

func (e *ProtocolDecodeError) Error() string {
	if e.Err == nil {
		return "protocol: " + e.Reason
	}
	return fmt.Sprintf("protocol: %s: %v", e.Reason, e.Err)
}

func (e *ProtocolDecodeError) Unwrap() error { return e.Err }

// IsConnectivity reports whether err wraps a *ConnectivityError.
func IsConnectivity(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}

// IsProtocolDecode reports whether err wraps a *ProtocolDecodeError.
func IsProtocolDecode(err error) bool {
	var pe *ProtocolDecodeError
	return errors.As(err, &pe)
}
