package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robertdigital/ml4ir/pkg/ports"
	"github.com/robertdigital/ml4ir/pkg/registry"
	"github.com/robertdigital/ml4ir/pkg/signature"
)

var publishCmd = &cobra.Command{
	Use:   "publish <model> <signature-file>",
	Short: "Check a signature file and store it for a model",
	Long: `Parses and builds the signature locally, then writes it to the configured
source (directory or Redis). Running watchers pick the change up.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, path := args[0], args[1]

		_, logger, source, err := setup(cmd)
		if err != nil {
			return err
		}
		defer source.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read signature: %w", err)
		}
		format := signature.FormatFromPath(path)

		descs, err := signature.Parse(data, format)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		reg, err := registry.Build(descs)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		doc := ports.Document{Model: model, Format: format, Data: data}
		if err := source.Put(cmd.Context(), doc); err != nil {
			return err
		}

		logger.Info("signature published", "model", model, "format", format.String(), "fields", reg.Len())
		fmt.Fprintf(cmd.OutOrStdout(), "✔ published %s (%d fields, %d required)\n", model, reg.Len(), reg.RequiredCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}
