package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/openroberta/oraclient/internal/app"
	"github.com/openroberta/oraclient/internal/domain"
	"github.com/openroberta/oraclient/pkg/oraclient"
)

// DebugLogName is the debug log file created in the working directory when
// debug logging is enabled and no explicit path is configured.
const DebugLogName = "oraclient.debug"

// Config holds CLI configuration for oraclient.
type Config struct {
	ServerURL string

	Robot           string
	FirmwareName    string
	FirmwareVersion string
	BrickName       string
	MACAddress      string
	MenuVersion     string
	TokenLength     int

	WorkDir string

	RetryInterval    time.Duration
	ChecksumAttempts int
	DownloadAttempts int
	HTTPTimeout      time.Duration

	InsecureSkipVerify bool

	RunCommand string
	RunTimeout time.Duration

	MetricsAddr string
	Debug       bool
	DebugLog    string
	Once        bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServerURL:        oraclient.DefaultServerURL,
		Robot:            oraclient.DefaultRobot,
		FirmwareName:     oraclient.DefaultFirmwareName,
		FirmwareVersion:  oraclient.DefaultFirmwareVersion,
		BrickName:        oraclient.DefaultBrickName,
		MACAddress:       oraclient.DefaultMACAddress,
		MenuVersion:      oraclient.DefaultMenuVersion,
		TokenLength:      oraclient.DefaultTokenLength,
		RetryInterval:    app.DefaultRetryInterval,
		ChecksumAttempts: domain.DefaultChecksumAttempts,
		DownloadAttempts: app.DefaultDownloadAttempts,
		WorkDir:          "", // Derived from the executable location during Validate
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")
	if c.ServerURL == "" {
		return fmt.Errorf("server-url is required")
	}
	if c.Robot == "" {
		return fmt.Errorf("robot is required")
	}
	if c.FirmwareVersion == "" {
		return fmt.Errorf("firmware-version is required")
	}
	if c.TokenLength < 1 || c.TokenLength > domain.MaxTokenLength {
		return fmt.Errorf("token-length must be between 1 and %d", domain.MaxTokenLength)
	}
	if c.RetryInterval <= 0 {
		return fmt.Errorf("retry interval must be positive")
	}
	if c.ChecksumAttempts <= 0 {
		return fmt.Errorf("checksum attempts must be positive")
	}
	if c.DownloadAttempts <= 0 {
		return fmt.Errorf("download attempts must be positive")
	}
	if c.HTTPTimeout < 0 || c.RunTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}

	if c.WorkDir == "" {
		c.WorkDir = executableDir()
	}
	if c.Debug && c.DebugLog == "" {
		c.DebugLog = filepath.Join(c.WorkDir, DebugLogName)
	}
	return nil
}

// ClientConfig converts the CLI configuration for oraclient.New.
func (c Config) ClientConfig() oraclient.Config {
	return oraclient.Config{
		ServerURL:          c.ServerURL,
		Robot:              c.Robot,
		FirmwareName:       c.FirmwareName,
		FirmwareVersion:    c.FirmwareVersion,
		BrickName:          c.BrickName,
		MACAddress:         c.MACAddress,
		MenuVersion:        c.MenuVersion,
		TokenLength:        c.TokenLength,
		WorkDir:            c.WorkDir,
		RetryInterval:      c.RetryInterval,
		ChecksumAttempts:   c.ChecksumAttempts,
		DownloadAttempts:   uint(c.DownloadAttempts),
		HTTPTimeout:        c.HTTPTimeout,
		InsecureSkipVerify: c.InsecureSkipVerify,
		RunCommand:         strings.Fields(c.RunCommand),
		RunTimeout:         c.RunTimeout,
	}
}

// executableDir returns the directory holding the running binary, falling
// back to the current directory.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
