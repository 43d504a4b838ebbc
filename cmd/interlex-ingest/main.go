// Package main provides the interlex-ingest binary entry point.
// It reads a tabular batch of candidate entities, validates each row
// against the InterLex registry, and submits the rows that pass.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scicrunch/interlex-ingest/internal/config"
	"github.com/scicrunch/interlex-ingest/internal/ingest"
	"github.com/scicrunch/interlex-ingest/internal/interlex"
	"github.com/scicrunch/interlex-ingest/internal/logging"
	"github.com/scicrunch/interlex-ingest/internal/pathing"
	"github.com/scicrunch/interlex-ingest/internal/tabular"
)

const (
	Version = "0.1.0"
	appName = "interlex-ingest"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		production bool
		logLevel   string
		logFormat  string
		sheet      string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Bulk-ingest entities into the InterLex registry",
		Long: `interlex-ingest reads a table of candidate entities, validates each
row against InterLex (duplicate synonyms, existing curies, missing
superclasses, duplicate labels), and submits every row that passes.

The output table is the input with three columns appended: error,
success (T/F), and InterLex Fragment (the assigned id).

Authentication uses INTERLEX_API_KEY (or SCICRUNCH_API_KEY); a .env
file in the working directory is loaded if present.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&production, "production", false, "Submit to the production registry instead of staging")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")

	cmd.AddCommand(&cobra.Command{
		Use:   "csv <in> <out>",
		Short: "Ingest a CSV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(logLevel, logFormat)
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), cfg, production, batchIO{
				inPath:  args[0],
				outPath: args[1],
				ext:     ".csv",
				open:    func(path string) (tabular.Source, error) { return tabular.OpenCSV(path) },
				create:  func(path string) (tabular.Sink, error) { return tabular.CreateCSV(path) },
			})
		},
	})

	xlsxCmd := &cobra.Command{
		Use:   "xlsx <in> <out>",
		Short: "Ingest a spreadsheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(logLevel, logFormat)
			if err != nil {
				return err
			}
			if sheet == "" {
				sheet = cfg.Ingest.SheetName
			}
			return runBatch(cmd.Context(), cfg, production, batchIO{
				inPath:  args[0],
				outPath: args[1],
				ext:     ".xlsx",
				open:    func(path string) (tabular.Source, error) { return tabular.OpenXLSX(path, sheet) },
				create:  func(path string) (tabular.Sink, error) { return tabular.CreateXLSX(path, sheet) },
			})
		},
	}
	xlsxCmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default from INGEST_SHEET_NAME)")
	cmd.AddCommand(xlsxCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// setup loads .env and configuration, then configures logging. Flags
// override the environment when set.
func setup(logLevel, logFormat string) (*config.Config, error) {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())
	return cfg, nil
}

// batchIO binds one input format's open/create functions to resolved
// paths.
type batchIO struct {
	inPath  string
	outPath string
	ext     string
	open    func(path string) (tabular.Source, error)
	create  func(path string) (tabular.Sink, error)
}

func runBatch(parent context.Context, cfg *config.Config, production bool, job batchIO) error {
	log := logging.WithFields("run_id", uuid.NewString())

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Ingest.Timeout)
	defer cancel()

	inPath, err := pathing.ResolveInput(job.inPath)
	if err != nil {
		return fmt.Errorf("input path: %w", err)
	}
	outPath, err := pathing.ResolveOutput(job.outPath, job.ext)
	if err != nil {
		return fmt.Errorf("output path: %w", err)
	}

	baseURL := cfg.Registry.BaseURL
	if baseURL == "" {
		baseURL = interlex.DefaultBaseURL
		if production {
			baseURL = interlex.ProductionBaseURL
		}
	}
	log.Info("using registry", "base_url", baseURL, "production", production)

	client, err := interlex.NewClient(baseURL, cfg.Registry.APIKey, cfg.Registry.Timeout)
	if err != nil {
		return fmt.Errorf("registry client: %w", err)
	}

	userID := cfg.Registry.UserID
	if userID == "" {
		user, err := client.UserInfo(ctx)
		if err != nil {
			return fmt.Errorf("resolve user id: %w", err)
		}
		userID = user.ID
	}

	catalog, err := client.CurieCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load curie catalog: %w", err)
	}
	prefixes := ingest.NewPrefixTable(catalog)
	log.Info("curie catalog loaded", "prefixes", len(prefixes))

	src, err := job.open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer src.Close()

	sink, err := job.create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	ing := ingest.NewIngestor(client, prefixes, userID, log)
	sum, runErr := ingest.Run(ctx, src, sink, ing, log)

	// Close flushes; annotations written so far must survive even when
	// the run aborts mid-batch.
	if err := sink.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("write output: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	log.Info("ingest finished",
		"input", inPath,
		"output", outPath,
		"rows", sum.Rows,
		"submitted", sum.Submitted,
		"rejected", sum.Rejected,
	)
	return nil
}
