package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

// defaultConfigPaths are tried in order when --config is not given.
var defaultConfigPaths = []string{"gatrack.yaml", "gatrack.toml", "gatrack.json", "~/.config/gatrack/config.yaml"}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gatrackd",
		Short:         "Server-driven Google Analytics tracking for web UIs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a .yaml, .toml or .json config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr("GATRACK_LOG_LEVEL", ""), "Log level: trace, debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: json or console")
	root.AddCommand(newServeCmd(), newCheckCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gatrackd:", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Flags win over config values.
func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("log level: %w", err)
		}
		lvl = l
	}
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "gatrackd").Logger(), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitCSV splits a comma separated flag value, dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
