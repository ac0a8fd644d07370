package domain

import (
	"strings"

	"github.com/google/uuid"
)

// MaxTokenLength bounds the generated device token.
const MaxTokenLength = 64

// DeviceIdentity describes the device to the server. It is created once at
// startup and never mutated.
type DeviceIdentity struct {
	Token           string
	MACAddress      string
	BrickName       string
	FirmwareName    string
	FirmwareVersion string
	RobotName       string
	MenuVersion     string
}

// GenerateToken returns a random uppercase alphanumeric token of length n.
// n is clamped to [1, MaxTokenLength].
func GenerateToken(n int) string {
	if n < 1 {
		n = 1
	}
	if n > MaxTokenLength {
		n = MaxTokenLength
	}
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(strings.ReplaceAll(uuid.NewString(), "-", ""))
	}
	return strings.ToUpper(b.String()[:n])
}
