package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (ORACLIENT_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("server-url", os.Getenv("ORACLIENT_SERVER_URL"), &cfg.ServerURL)
	s.setString("robot", os.Getenv("ORACLIENT_ROBOT"), &cfg.Robot)
	s.setString("firmware-name", os.Getenv("ORACLIENT_FIRMWARE_NAME"), &cfg.FirmwareName)
	s.setString("firmware-version", os.Getenv("ORACLIENT_FIRMWARE_VERSION"), &cfg.FirmwareVersion)
	s.setString("brick-name", os.Getenv("ORACLIENT_BRICK_NAME"), &cfg.BrickName)
	s.setString("mac-address", os.Getenv("ORACLIENT_MAC_ADDRESS"), &cfg.MACAddress)
	s.setString("menu-version", os.Getenv("ORACLIENT_MENU_VERSION"), &cfg.MenuVersion)
	s.setString("work-dir", os.Getenv("ORACLIENT_WORK_DIR"), &cfg.WorkDir)
	s.setString("run-command", os.Getenv("ORACLIENT_RUN_COMMAND"), &cfg.RunCommand)
	s.setString("metrics-addr", os.Getenv("ORACLIENT_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("debug-log", os.Getenv("ORACLIENT_DEBUG_LOG"), &cfg.DebugLog)

	if err := s.setDuration("retry-interval", os.Getenv("ORACLIENT_RETRY_INTERVAL"), &cfg.RetryInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("ORACLIENT_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("run-timeout", os.Getenv("ORACLIENT_RUN_TIMEOUT"), &cfg.RunTimeout); err != nil {
		return err
	}

	if err := s.setIntFromString("token-length", os.Getenv("ORACLIENT_TOKEN_LENGTH"), &cfg.TokenLength); err != nil {
		return err
	}
	if err := s.setIntFromString("checksum-attempts", os.Getenv("ORACLIENT_CHECKSUM_ATTEMPTS"), &cfg.ChecksumAttempts); err != nil {
		return err
	}
	if err := s.setIntFromString("download-attempts", os.Getenv("ORACLIENT_DOWNLOAD_ATTEMPTS"), &cfg.DownloadAttempts); err != nil {
		return err
	}

	s.setBoolFromString("insecure-skip-verify", os.Getenv("ORACLIENT_INSECURE_SKIP_VERIFY"), &cfg.InsecureSkipVerify)
	s.setBoolFromString("debug", os.Getenv("ORACLIENT_DEBUG"), &cfg.Debug)
	s.setBoolFromString("once", os.Getenv("ORACLIENT_ONCE"), &cfg.Once)

	return nil
}
