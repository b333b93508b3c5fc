// Command vizstream replays recorded batches through a chart engine and
// inspects or renders the results.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/vizstream/series"
)

type globalOptions struct {
	logLevel  string
	logFormat string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "vizstream",
		Short: "Replay, encode and render streaming chart data",
		Long: `vizstream feeds recorded batches (one JSON batch per line) through the
chart aggregation engine, prints per-batch summaries or render frames, decodes
frames and renders the final chart as PNG or SVG.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(
		newReplayCmd(opts),
		newInspectCmd(),
		newRenderCmd(opts),
	)

	return rootCmd
}

func (o *globalOptions) logger() (*series.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}

	switch strings.ToLower(o.logFormat) {
	case "text":
		return series.NewTextLogger(level), nil
	case "json":
		return series.NewJSONLogger(level), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (must be text or json)", o.logFormat)
	}
}
