package main

import (
	"context"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/robertdigital/ml4ir"
	"github.com/robertdigital/ml4ir/internal/cli"
	"github.com/robertdigital/ml4ir/internal/presentation/tui"
	"github.com/robertdigital/ml4ir/pkg/observability"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Load all signatures and reload them as they change",
	Long: `Loads every signature in the source and keeps reloading them when their
files (or Redis entries) change. A broken update is logged and the last good
version keeps serving. Stops on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, source, err := setup(cmd)
		if err != nil {
			return err
		}
		defer source.Close()

		withMetrics, _ := cmd.Flags().GetBool("metrics")
		var (
			registry *prometheus.Registry
			metrics  *observability.Metrics
		)
		if withMetrics {
			registry = prometheus.NewRegistry()
			if metrics, err = observability.NewMetrics(registry); err != nil {
				return err
			}
		}

		gate, err := cli.NewGate(cfg, source, logger, metrics)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(out, strings.TrimSpace(ml4ir.Version))
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if err := cli.RunWatch(ctx, gate, logger, out); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			cli.PrintSystemMessage(out, "Received %v, shutting down", sig)
		}

		if registry != nil {
			return observability.Dump(out, registry)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Bool("metrics", false, "Print collected metrics in Prometheus text format on exit")
}
