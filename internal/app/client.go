package app

import (
	"context"

	"github.com/openroberta/oraclient/internal/ports"
)

// Client runs the firmware sync once and then the session until the server
// aborts it.
type Client struct {
	firmware *FirmwareSync
	session  *Session
	logger   ports.Logger
}

// NewClient composes a client from its engines.
func NewClient(firmware *FirmwareSync, session *Session, logger ports.Logger) *Client {
	return &Client{firmware: firmware, session: session, logger: logger}
}

// SyncFirmware runs a single firmware sync pass.
func (c *Client) SyncFirmware(ctx context.Context) error {
	return c.firmware.Sync(ctx)
}

// Run syncs the firmware and then drives the session. A firmware sync that
// leaves the device without firmware returns domain.ErrUpdateUnavailable
// before any registration is attempted.
func (c *Client) Run(ctx context.Context) error {
	if err := c.firmware.Sync(ctx); err != nil {
		return err
	}
	c.logger.Info("firmware ready, connecting to server")
	return c.session.Run(ctx)
}

// Session returns the session state machine.
func (c *Client) Session() *Session { return c.session }
