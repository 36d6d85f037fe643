package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/procuregpt/procure/pkg/validation"
)

var summaryFlags struct {
	asJSON bool
}

var summaryCmd = &cobra.Command{
	Use:   "summary <records.json>",
	Short: "Summarize validation outcomes for an annotated batch",
	Long: `Summary reads a JSON array of annotated procurement records and
prints the count of records per validation status.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryFlags.asJSON, "json", false, "Emit the summary as JSON")
}

func runSummary(cmd *cobra.Command, args []string) error {
	records, err := loadRecords(args[0])
	if err != nil {
		return err
	}

	summary := validation.Summarize(records)

	if summaryFlags.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "total:   %d\n", summary.Total)
	fmt.Fprintf(cmd.OutOrStdout(), "valid:   %d\n", summary.Valid)
	fmt.Fprintf(cmd.OutOrStdout(), "warning: %d\n", summary.Warning)
	fmt.Fprintf(cmd.OutOrStdout(), "error:   %d\n", summary.Error)
	return nil
}
