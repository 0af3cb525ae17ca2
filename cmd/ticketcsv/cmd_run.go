package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"ticketcsv/internal/pipeline"
)

// runCmd executes a single automation cycle
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one automation cycle and exit",
	Long: `Fetch the export from the configured source, assign statuses and
push the result to every configured sink.`,
	RunE: runAutomation,
}

func runAutomation(cmd *cobra.Command, _ []string) error {
	job, err := loadJob()
	if err != nil {
		return err
	}
	r, err := pipeline.Compile(job)
	if err != nil {
		return err
	}
	defer r.Close()

	res, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if res.Empty {
		fmt.Fprintln(out, "nothing to process")
		return nil
	}
	fmt.Fprintf(out, "run %s: %d rows, policy %s\n", res.ID, res.Rows, res.Policy)
	keys := make([]string, 0, len(res.Counts))
	for k := range res.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %-8s %d\n", k, res.Counts[k])
	}
	for _, a := range res.Acks {
		fmt.Fprintf(out, "  -> %s %s\n", a.Sink, a.Detail)
	}
	return nil
}
