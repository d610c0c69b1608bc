package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robertdigital/ml4ir/internal/cli"
	"github.com/robertdigital/ml4ir/internal/presentation/tui"
	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/features"
	"github.com/robertdigital/ml4ir/pkg/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate <model> <payload.json|->",
	Short: "Validate a payload against a model's signature",
	Long: `Checks a JSON payload (a file, "-" for stdin, or an inline JSON object)
against the serving signature of a model and prints the result as JSON.
Exits with status 1 when the payload is rejected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, payloadArg := args[0], args[1]

		cfg, logger, source, err := setup(cmd)
		if err != nil {
			return err
		}
		defer source.Close()

		payload, err := readPayload(cmd.InOrStdin(), payloadArg)
		if err != nil {
			return err
		}

		gate, err := cli.NewGate(cfg, source, logger, nil)
		if err != nil {
			return err
		}
		if err := gate.Load(cmd.Context(), model); err != nil {
			return err
		}

		withFeatures, _ := cmd.Flags().GetBool("features")

		var (
			res  validator.Result
			cols []features.Column
		)
		if withFeatures {
			cols, res, err = gate.Features(cmd.Context(), model, payload)
		} else {
			res, err = gate.Validate(cmd.Context(), model, payload)
		}
		if err != nil {
			return err
		}

		var out any = res
		if withFeatures {
			out = struct {
				Result   validator.Result  `json:"result"`
				Features []features.Column `json:"features,omitempty"`
			}{res, cols}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}

		if tui.IsTerminal(os.Stderr) {
			tui.PrintVerdict(os.Stderr, model, res.Violations())
		}
		if !res.OK() {
			return errRejected
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("mode", "", "Validation mode: strict or permissive (env ML4IR_MODE)")
	validateCmd.Flags().Bool("features", false, "Also convert the accepted payload to typed feature columns")
}

func readPayload(stdin io.Reader, arg string) (domain.Payload, error) {
	var data []byte
	var err error

	switch trimmed := strings.TrimSpace(arg); {
	case trimmed == "-":
		data, err = io.ReadAll(stdin)
	case strings.HasPrefix(trimmed, "{"):
		data = []byte(trimmed)
	default:
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	var payload domain.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	if payload == nil {
		payload = domain.Payload{}
	}
	return payload, nil
}
