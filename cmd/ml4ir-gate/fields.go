package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robertdigital/ml4ir/internal/cli"
	"github.com/robertdigital/ml4ir/internal/presentation/tui"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields <model>",
	Short: "List the serving fields of a model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model := args[0]

		cfg, logger, source, err := setup(cmd)
		if err != nil {
			return err
		}
		defer source.Close()

		gate, err := cli.NewGate(cfg, source, logger, nil)
		if err != nil {
			return err
		}
		if err := gate.Load(cmd.Context(), model); err != nil {
			return err
		}
		snap, err := gate.Catalog().Get(model)
		if err != nil {
			return err
		}

		md := tui.FieldsMarkdown(model, snap.Registry)
		if tui.IsTerminal(os.Stdout) {
			if rendered, err := tui.NewRenderer()(md); err == nil {
				md = rendered
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
