// Command exerciseseed converts the exercise catalogue JSON into a PostgreSQL
// script that creates, truncates and bulk-loads the exercises table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Rios1999/TrakingGym/internal/config"
	"github.com/Rios1999/TrakingGym/internal/converter"
	"github.com/Rios1999/TrakingGym/internal/observability"
	"github.com/Rios1999/TrakingGym/internal/sqlscript"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "[exerciseseed] ", log.LstdFlags)
	cfg := config.Load()

	fs := flag.NewFlagSet("exerciseseed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Optional YAML file overriding environment settings")
	input := fs.String("input", cfg.InputPath, "Path to the exercise catalogue JSON")
	output := fs.String("output", cfg.OutputPath, "Path of the generated SQL script")
	schema := fs.String("schema", cfg.Schema, "Schema holding the exercises table")
	table := fs.String("table", cfg.Table, "Exercises table name")
	bodyweight := fs.Bool("bodyweight", cfg.Bodyweight, "Include the peso_corporal column")
	metricsFile := fs.String("metrics-textfile", cfg.MetricsTextfile, "Write run metrics in Prometheus textfile format")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(cfg, *configPath); err != nil {
			fmt.Fprintf(stdout, "error: %v\n", err)
			return 1
		}
	}

	// Explicit flags win over the YAML overlay.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *input
		case "output":
			cfg.OutputPath = *output
		case "schema":
			cfg.Schema = *schema
		case "table":
			cfg.Table = *table
		case "bodyweight":
			cfg.Bodyweight = *bodyweight
		case "metrics-textfile":
			cfg.MetricsTextfile = *metricsFile
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stdout, "error: %v\n", err)
		return 1
	}

	conv := converter.New(converter.WithLogger(log.New(stderr, "[converter] ", log.LstdFlags)))
	summary, err := conv.Convert(ctx, converter.Options{
		InputPath:  cfg.InputPath,
		OutputPath: cfg.OutputPath,
		Schema: sqlscript.Schema{
			Namespace:  cfg.Schema,
			Table:      cfg.Table,
			Bodyweight: cfg.Bodyweight,
		},
	})

	if cfg.MetricsTextfile != "" {
		if metricsErr := observability.WriteTextfile(cfg.MetricsTextfile); metricsErr != nil {
			logger.Printf("failed to write metrics textfile %s: %v", cfg.MetricsTextfile, metricsErr)
		}
	}

	if err != nil {
		fmt.Fprintf(stdout, "error: %s\n", describe(err))
		return 1
	}

	fmt.Fprintf(stdout, "generated %s with %d exercises\n", summary.OutputPath, summary.Records)
	return 0
}

func describe(err error) string {
	switch converter.FailureReason(err) {
	case "missing_file", "read", "parse", "schema", "write":
		return err.Error()
	default:
		return fmt.Sprintf("unexpected error: %v", err)
	}
}
