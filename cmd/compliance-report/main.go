// Command compliance-report prints the compliance report of one assessment.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"compliance-hub/internal/compliance"
	"compliance-hub/internal/config"
	"compliance-hub/internal/database"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type options struct {
	assessmentID uint
	format       string
	output       string
}

func parseFlags(args []string) (options, error) {
	fs := pflag.NewFlagSet("compliance-report", pflag.ContinueOnError)
	id := fs.UintP("assessment", "a", 0, "Assessment ID")
	format := fs.StringP("format", "f", "table", "Output format: table, json or pdf")
	output := fs.StringP("output", "o", "", "Write to file instead of stdout (required for pdf)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{assessmentID: *id, format: *format, output: *output}
	if opts.assessmentID == 0 {
		return opts, fmt.Errorf("usage: compliance-report --assessment <id> [--format table|json|pdf] [--output file]")
	}
	switch opts.format {
	case "table", "json":
	case "pdf":
		if opts.output == "" {
			return opts, fmt.Errorf("--output is required for pdf")
		}
	default:
		return opts, fmt.Errorf("unsupported format: %s", opts.format)
	}
	return opts, nil
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)

	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}

	svc := compliance.NewService(db, logger)
	ctx := context.Background()

	assessment, err := svc.Assessment(ctx, opts.assessmentID)
	if err != nil {
		return fmt.Errorf("assessment %d: %w", opts.assessmentID, err)
	}
	report, err := svc.Aggregate(ctx, assessment.ID)
	if err != nil {
		return err
	}

	if opts.output != "" {
		return writeFile(opts.output, opts.format, assessment.Title, report)
	}
	return writeReport(stdout, opts.format, assessment.Title, report)
}

// writeFile writes the report to path. A file that could not be written completely is removed.
func writeFile(path, format, title string, report compliance.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return writeReport(f, format, title, report)
}

func writeReport(w io.Writer, format, title string, report compliance.Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "pdf":
		return compliance.WritePDF(w, title, time.Now(), report)
	case "table":
		compliance.RenderTable(w, title, report)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
