package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/robertdigital/ml4ir/internal/cli"
	"github.com/robertdigital/ml4ir/internal/validator"
)

var checkCmd = &cobra.Command{
	Use:   "check [model...]",
	Short: "Check signatures for consistency",
	Long: `Parses and builds the signature of every named model (or of every model in
the source) and reports those that could not be served. Exits non-zero when
any signature is broken.

With --watch (or ML4IR_WATCH=true) the check is repeated for every signature
that changes, until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, source, err := setup(cmd)
		if err != nil {
			return err
		}
		defer source.Close()

		out := cmd.OutOrStdout()
		reports, err := validator.ValidateSignatures(cmd.Context(), source, args...)
		if err != nil {
			return err
		}
		printReports(out, reports)
		if len(reports) == 0 {
			fmt.Fprintln(out, "No signatures found.")
		}

		if !cfg.Watch {
			if failed := validator.Failed(reports); failed > 0 {
				return fmt.Errorf("%d of %d signatures are invalid", failed, len(reports))
			}
			return nil
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		changes, err := source.Watch(ctx)
		if err != nil {
			return err
		}
		cli.PrintSystemMessage(out, "Watching for changes. Press Ctrl+C to stop.")
		for model := range changes {
			if len(args) > 0 && !slices.Contains(args, model) {
				continue
			}
			reports, err := validator.ValidateSignatures(ctx, source, model)
			if err != nil {
				return err
			}
			printReports(out, reports)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("watch", false, "Re-check signatures as they change (env ML4IR_WATCH)")
}

func printReports(out io.Writer, reports []validator.Report) {
	for _, r := range reports {
		if !r.OK() {
			fmt.Fprintf(out, "✘ %s: %v\n", r.Model, r.Err)
			continue
		}
		fmt.Fprintf(out, "✔ %s (%d fields, %d required)\n", r.Model, r.Fields, r.Required)
		for _, w := range r.Warnings {
			fmt.Fprintf(out, "  ⚠ %s\n", w)
		}
	}
}
