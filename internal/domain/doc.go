// Package domain contains the core domain entities and value objects for oraclient.
//
// This package represents the innermost layer of the client. It has no
// dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only the protocol vocabulary shared by the firmware sync engine
// and the session state machine.
//
// # Entities
//
//   - [DeviceIdentity]: who the device claims to be, fixed for the process lifetime
//   - [CommandEnvelope]: the JSON payload sent on every exchange with the server
//   - [Directive]: the server's answer to a register or push exchange
//   - [Checksum]: opaque firmware token compared for equality only
//   - [RetryBudget]: attempts counter for the checksum fetch loop
//   - [SessionState]: the states of the register/poll state machine
//
// Envelopes are values built fresh for every request; nothing in this package
// holds state across exchanges.
package domain
