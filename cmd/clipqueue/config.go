package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipqueue/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPQUEUE_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPQUEUE_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clipqueue")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/clipqueue/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "clipqueue"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPQUEUE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info, debug when interactive)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// setupLogging configures slog from viper. When the TUI owns the terminal,
// logs go to a file instead of stderr so they don't corrupt the view.
func setupLogging(v *viper.Viper, tui bool) {
	var w io.Writer = os.Stderr
	if tui {
		path := filepath.Join(os.TempDir(), "clipqueue.log")
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
			w = f
		}
	}
	interactive := logging.IsTTY(w)
	logging.Setup(w,
		logging.ParseFormat(v.GetString("log-format")),
		logging.ParseLevel(v.GetString("log-level"), interactive),
	)
	if w != os.Stderr {
		slog.Info("logging to file", "path", filepath.Join(os.TempDir(), "clipqueue.log"))
	}
}
