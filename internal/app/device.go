package app

import (
	"encoding/json"
	"fmt"

	"github.com/openroberta/oraclient/internal/domain"
	"github.com/openroberta/oraclient/internal/ports"
)

// Device pairs the immutable identity with the live battery gauge and builds
// envelopes for outgoing exchanges.
type Device struct {
	Identity domain.DeviceIdentity
	Battery  ports.BatteryGauge
}

// FixedBattery is a BatteryGauge that always reports the same level.
type FixedBattery int

// Level returns the fixed level.
func (b FixedBattery) Level() int { return int(b) }

func (d Device) envelope(cmd domain.Command, exitValue string) ([]byte, error) {
	level := 0
	if d.Battery != nil {
		level = d.Battery.Level()
	}
	b, err := json.Marshal(domain.NewEnvelope(d.Identity, cmd, exitValue, level))
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", cmd, err)
	}
	return b, nil
}
