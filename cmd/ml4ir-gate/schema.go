package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/robertdigital/ml4ir/internal/cli"
	"github.com/robertdigital/ml4ir/pkg/domain"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <model>",
	Short: "Print the OpenAPI schema of a model's payload",
	Long: `Prints the payload of a model's current signature as an OpenAPI 3 schema
object. In strict mode the schema forbids additional properties.`,
	Args: cobra.ExactArgs(1),
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

		mode, err := domain.ParseMode(cfg.Mode)
		if err != nil {
			return err
		}
		schema, err := gate.Schema(model, mode)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(schema)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().String("mode", "", "Validation mode: strict or permissive (env ML4IR_MODE)")
}
