package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ticketcsv/internal/status"
)

var (
	tfPolicy string
	tfColumn string
	tfSeed   uint64
	tfPad    bool
	tfIn     string
)

// transformCmd rewrites a local CSV without touching the backend
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform a CSV from a file or stdin to stdout",
	Long: `Apply a status policy to a CSV export and print the result.

Policies:
  deterministic       first 33% PENDING, next 33% CLOSED, rest OPEN
  conditional_random  redraw PENDING rows: 30% PENDING, 30% OPEN, 40% CLOSED`,
	RunE: runTransform,
}

func init() {
	f := transformCmd.Flags()
	f.StringVarP(&tfPolicy, "policy", "p", "deterministic", "deterministic or conditional_random")
	f.StringVar(&tfColumn, "status-column", status.DefaultColumn, "name of the status column")
	f.Uint64Var(&tfSeed, "seed", 0, "seed for conditional_random (0 seeds from the clock)")
	f.BoolVar(&tfPad, "pad-short-rows", false, "pad short rows with empty cells instead of failing")
	f.StringVarP(&tfIn, "in", "i", "-", "input file, - for stdin")
}

func runTransform(cmd *cobra.Command, _ []string) error {
	policy, err := status.ParsePolicy(tfPolicy)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd, tfIn)
	if err != nil {
		return err
	}
	shape := status.ShapeReject
	if tfPad {
		shape = status.ShapePad
	}
	out, err := status.Transform(string(raw), status.Options{
		Policy: policy,
		Column: tfColumn,
		Random: status.NewRandom(tfSeed),
		Shape:  shape,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}
