package cliconfig

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations to make TOML and
// YAML friendly.
type FileConfig struct {
	ServerURL          string `toml:"server_url" yaml:"server_url"`
	Robot              string `toml:"robot" yaml:"robot"`
	FirmwareName       string `toml:"firmware_name" yaml:"firmware_name"`
	FirmwareVersion    string `toml:"firmware_version" yaml:"firmware_version"`
	BrickName          string `toml:"brick_name" yaml:"brick_name"`
	MACAddress         string `toml:"mac_address" yaml:"mac_address"`
	MenuVersion        string `toml:"menu_version" yaml:"menu_version"`
	TokenLength        int    `toml:"token_length" yaml:"token_length"`
	WorkDir            string `toml:"work_dir" yaml:"work_dir"`
	RetryInterval      string `toml:"retry_interval" yaml:"retry_interval"`
	ChecksumAttempts   int    `toml:"checksum_attempts" yaml:"checksum_attempts"`
	DownloadAttempts   int    `toml:"download_attempts" yaml:"download_attempts"`
	HTTPTimeout        string `toml:"http_timeout" yaml:"http_timeout"`
	InsecureSkipVerify *bool  `toml:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	RunCommand         string `toml:"run_command" yaml:"run_command"`
	RunTimeout         string `toml:"run_timeout" yaml:"run_timeout"`
	MetricsAddr        string `toml:"metrics_addr" yaml:"metrics_addr"`
	Debug              *bool  `toml:"debug" yaml:"debug"`
	DebugLog           string `toml:"debug_log" yaml:"debug_log"`
}

// LoadFileConfig reads and parses a config file from the given path. Files
// ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.oraclient/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".oraclient", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("server-url", fc.ServerURL, &cfg.ServerURL)
	s.setString("robot", fc.Robot, &cfg.Robot)
	s.setString("firmware-name", fc.FirmwareName, &cfg.FirmwareName)
	s.setString("firmware-version", fc.FirmwareVersion, &cfg.FirmwareVersion)
	s.setString("brick-name", fc.BrickName, &cfg.BrickName)
	s.setString("mac-address", fc.MACAddress, &cfg.MACAddress)
	s.setString("menu-version", fc.MenuVersion, &cfg.MenuVersion)
	s.setString("work-dir", fc.WorkDir, &cfg.WorkDir)
	s.setString("run-command", fc.RunCommand, &cfg.RunCommand)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setString("debug-log", fc.DebugLog, &cfg.DebugLog)

	if err := s.setDuration("retry-interval", fc.RetryInterval, &cfg.RetryInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("run-timeout", fc.RunTimeout, &cfg.RunTimeout); err != nil {
		return err
	}

	s.setInt("token-length", fc.TokenLength, &cfg.TokenLength)
	s.setInt("checksum-attempts", fc.ChecksumAttempts, &cfg.ChecksumAttempts)
	s.setInt("download-attempts", fc.DownloadAttempts, &cfg.DownloadAttempts)

	s.setBool("insecure-skip-verify", fc.InsecureSkipVerify, &cfg.InsecureSkipVerify)
	s.setBool("debug", fc.Debug, &cfg.Debug)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
