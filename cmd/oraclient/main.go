package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/openroberta/oraclient/internal/cliconfig"
	pkglog "github.com/openroberta/oraclient/pkg/log"
)

const helpDescription = `
Connect a robot to an Open Roberta server.

The client first makes sure the hal firmware library in the working directory
matches the server's, then registers the robot and waits for programs.
Enter the token it prints on the server to pair the robot.

Configuration is read from a TOML or YAML file, ORACLIENT_* environment
variables and flags, in increasing order of precedence.
`

var exampleUsage = strings.TrimSpace(`
  oraclient --server-url https://lab.open-roberta.org
  oraclient --config $HOME/.oraclient/config.yaml --debug
  oraclient --work-dir /home/nao/robertalab --once
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := pkglog.NewConsoleLogger()

	root := &cobra.Command{
		Use:           "oraclient",
		Short:         "Connect a robot to an Open Roberta server",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			} else {
				cfgFile = ""
			}

			// Environment overrides the file; flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, cfgFile)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file, .toml or .yaml (default: $HOME/.oraclient/config.toml)")
	root.Flags().StringVar(&cfg.ServerURL, "server-url", cfg.ServerURL, "base URL of the Open Roberta server")

	root.Flags().StringVar(&cfg.Robot, "robot", cfg.Robot, "robot type used for firmware updates")
	root.Flags().StringVar(&cfg.FirmwareName, "firmware-name", cfg.FirmwareName, "firmware name reported to the server")
	root.Flags().StringVar(&cfg.FirmwareVersion, "firmware-version", cfg.FirmwareVersion, "firmware version reported to the server")
	root.Flags().StringVar(&cfg.BrickName, "brick-name", cfg.BrickName, "robot name shown on the server")
	root.Flags().StringVar(&cfg.MACAddress, "mac-address", cfg.MACAddress, "hardware address reported to the server")
	root.Flags().StringVar(&cfg.MenuVersion, "menu-version", cfg.MenuVersion, "menu version reported to the server")
	root.Flags().IntVar(&cfg.TokenLength, "token-length", cfg.TokenLength, "length of the generated pairing token")

	root.Flags().StringVar(&cfg.WorkDir, "work-dir", cfg.WorkDir, "directory for firmware and programs (default: next to the binary)")
	root.Flags().DurationVar(&cfg.RetryInterval, "retry-interval", cfg.RetryInterval, "wait after a failed exchange")
	root.Flags().IntVar(&cfg.ChecksumAttempts, "checksum-attempts", cfg.ChecksumAttempts, "failed checksum requests between warnings")
	root.Flags().IntVar(&cfg.DownloadAttempts, "download-attempts", cfg.DownloadAttempts, "program download attempts before re-registering")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout per exchange (0 waits indefinitely)")
	root.Flags().BoolVar(&cfg.InsecureSkipVerify, "insecure-skip-verify", cfg.InsecureSkipVerify, "skip TLS certificate verification")
	if err := root.Flags().MarkHidden("insecure-skip-verify"); err != nil {
		log.Info().Err(err).Msg("failed to hide insecure-skip-verify flag")
	}

	root.Flags().StringVar(&cfg.RunCommand, "run-command", cfg.RunCommand, "command that runs downloaded programs; the program path is appended")
	root.Flags().DurationVar(&cfg.RunTimeout, "run-timeout", cfg.RunTimeout, "maximum program run time (0 for no limit)")

	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address (disabled when empty)")
	root.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging and the debug log file (a config reload changes only the level)")
	root.Flags().StringVar(&cfg.DebugLog, "debug-log", cfg.DebugLog, "debug log file (default: oraclient.debug in the work dir)")
	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "sync the firmware and exit")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("oraclient")
		os.Exit(1)
	}
}
