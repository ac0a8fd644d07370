package oraclient

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openroberta/oraclient/internal/app"
	"github.com/openroberta/oraclient/internal/domain"
)

// Default values used by SetDefaults. They match a NAO robot talking to the
// public Open Roberta lab.
const (
	DefaultServerURL       = "https://lab.open-roberta.org"
	DefaultRobot           = "nao"
	DefaultFirmwareName    = "Nao"
	DefaultFirmwareVersion = "2-8"
	DefaultBrickName       = "brick_name"
	DefaultMACAddress      = "00:00:00:00:00:00"
	DefaultMenuVersion     = "0.0.1"
	DefaultTokenLength     = 8
)

// Config configures a Client. Use SetDefaults to fill unset fields.
type Config struct {
	// ServerURL is the base address of the orchestration server.
	ServerURL string

	// Identity reported with every envelope.
	Robot           string
	FirmwareName    string
	FirmwareVersion string
	BrickName       string
	MACAddress      string
	MenuVersion     string

	// Token is the pairing token shown to the user. Generated with
	// TokenLength characters when empty.
	Token       string
	TokenLength int

	// WorkDir holds the firmware checksum, the unpacked hal bundle and
	// downloaded programs.
	WorkDir string

	// RetryInterval is the wait after any failed exchange.
	RetryInterval time.Duration

	// ChecksumAttempts is the number of failed checksum requests after which
	// a warning is logged. The checksum request is retried forever.
	ChecksumAttempts int

	// DownloadAttempts bounds program download attempts before the session
	// re-registers.
	DownloadAttempts uint

	// HTTPTimeout bounds each exchange. Zero leaves exchanges unbounded.
	HTTPTimeout        time.Duration
	InsecureSkipVerify bool

	// RunCommand launches downloaded programs; the program path is appended
	// as the last argument. Empty means programs are stored but not run.
	RunCommand []string
	RunTimeout time.Duration
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.Robot == "" {
		c.Robot = DefaultRobot
	}
	if c.FirmwareName == "" {
		c.FirmwareName = DefaultFirmwareName
	}
	if c.FirmwareVersion == "" {
		c.FirmwareVersion = DefaultFirmwareVersion
	}
	if c.BrickName == "" {
		c.BrickName = DefaultBrickName
	}
	if c.MACAddress == "" {
		c.MACAddress = DefaultMACAddress
	}
	if c.MenuVersion == "" {
		c.MenuVersion = DefaultMenuVersion
	}
	if c.TokenLength == 0 {
		c.TokenLength = DefaultTokenLength
	}
	if c.WorkDir == "" {
		c.WorkDir = "."
	}
	if c.RetryInterval == 0 {
		c.RetryInterval = app.DefaultRetryInterval
	}
	if c.ChecksumAttempts == 0 {
		c.ChecksumAttempts = domain.DefaultChecksumAttempts
	}
	if c.DownloadAttempts == 0 {
		c.DownloadAttempts = app.DefaultDownloadAttempts
	}
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server URL is required")
	}
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("server URL %q must start with http:// or https://", c.ServerURL)
	}
	if c.Robot == "" || c.FirmwareVersion == "" {
		return errors.New("robot and firmware version are required")
	}
	if c.Token == "" && (c.TokenLength < 1 || c.TokenLength > domain.MaxTokenLength) {
		return fmt.Errorf("token length must be between 1 and %d, got %d", domain.MaxTokenLength, c.TokenLength)
	}
	if c.RetryInterval <= 0 {
		return errors.New("retry interval must be positive")
	}
	if c.ChecksumAttempts <= 0 {
		return errors.New("checksum attempts must be positive")
	}
	if c.HTTPTimeout < 0 || c.RunTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}
