package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/procuregpt/procure/pkg/validation"
)

var validateFlags struct {
	configPath string
	outputPath string
	failOn     string
}

var validateCmd = &cobra.Command{
	Use:   "validate <records.json>",
	Short: "Validate a batch of procurement records",
	Long: `Validate reads a JSON array of procurement records, runs the full
validation pipeline (field rules, cross-field rules, batch duplicate
detection), and writes the annotated records to stdout or a file.

The exit code is nonzero when any record reaches the severity given
by --fail-on (default: error).`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.configPath, "config", "", "TOML file with a [validation] section")
	f.StringVarP(&validateFlags.outputPath, "output", "o", "", "Write annotated records to a file instead of stdout")
	f.StringVar(&validateFlags.failOn, "fail-on", "error", "Severity that causes a nonzero exit (warning|error)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	records, err := loadRecords(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadValidationConfig(validateFlags.configPath)
	if err != nil {
		return err
	}

	threshold, err := validation.ParseSeverity(validateFlags.failOn)
	if err != nil {
		return fmt.Errorf("invalid --fail-on value: %w", err)
	}

	engine := validation.New(cfg)
	validated, err := engine.ValidateBatch(context.Background(), records, nil)
	if err != nil {
		return err
	}

	if err := writeRecords(validated, validateFlags.outputPath); err != nil {
		return err
	}

	summary := validation.Summarize(validated)
	fmt.Fprintf(
		cmd.ErrOrStderr(),
		"validated %d records: %d valid, %d warning, %d error\n",
		len(validated), summary.Valid, summary.Warning, summary.Error,
	)

	if exceedsThreshold(summary, threshold) {
		return fmt.Errorf("batch contains records at or above %s severity", threshold)
	}
	return nil
}

func loadRecords(path string) ([]validation.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	var records []validation.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	return records, nil
}

func loadValidationConfig(path string) (validation.Config, error) {
	if path == "" {
		return validation.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return validation.Config{}, fmt.Errorf("read config: %w", err)
	}

	var file struct {
		Validation validation.Config `toml:"validation"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return validation.Config{}, fmt.Errorf("parse config: %w", err)
	}
	return file.Validation, nil
}

func writeRecords(records []validation.Record, path string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func exceedsThreshold(s validation.Summary, threshold validation.Severity) bool {
	switch threshold {
	case validation.Warning:
		return s.Warning > 0 || s.Error > 0
	case validation.Error:
		return s.Error > 0
	default:
		return false
	}
}
