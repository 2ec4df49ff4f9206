package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"attendcli/internal/batch"
	"attendcli/internal/config"
	"attendcli/internal/engine"
	"attendcli/internal/exporter"
	"attendcli/internal/files"
	"attendcli/internal/infrastructure"
	"attendcli/internal/ingest"
	"attendcli/internal/validation"
)

// runOptions holds the flags of the run command
type runOptions struct {
	configFile      string
	outDir          string
	formats         []string
	outlierFactor   float64
	clusters        int
	seed            uint64
	location        string
	metricsTextfile string
	concurrency     int
	logLevel        string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [flags] <file-or-dir>...",
		Short: "Build attendance reports from punch files",
		Long: `Reads each .csv or .xlsx punch file (directories expand to the punch files
they contain) as an independent dataset and writes its report to
<out>/<dataset>/ in the selected formats.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runReports(cmd, cfg, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "config file (.yaml, .yml or .toml)")
	flags.StringVarP(&opts.outDir, "out", "o", config.DefaultReportsDir, "output directory")
	flags.StringSliceVar(&opts.formats, "format", []string{exporter.FormatJSON, exporter.FormatCSV, exporter.FormatXLSX},
		"output formats: json, csv, xlsx")
	flags.Float64Var(&opts.outlierFactor, "outlier-factor", config.DefaultOutlierFactor, "IQR multiplier of the outlier fences")
	flags.IntVar(&opts.clusters, "clusters", config.DefaultClusters, "number of behaviour clusters per partition")
	flags.Uint64Var(&opts.seed, "seed", config.DefaultSeed, "clustering random seed")
	flags.StringVar(&opts.location, "location", "UTC", "IANA time zone used to assign punches to days")
	flags.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this textfile")
	flags.IntVar(&opts.concurrency, "concurrency", config.DefaultBatchConcurrency, "datasets processed in parallel")
	flags.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")

	return cmd
}

// loadConfig layers explicitly set flags over the file and environment
func loadConfig(cmd *cobra.Command, opts *runOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Dir = opts.outDir
	}
	if flags.Changed("format") {
		cfg.Output.Formats = opts.formats
	}
	if flags.Changed("outlier-factor") {
		cfg.Engine.OutlierFactor = opts.outlierFactor
	}
	if flags.Changed("clusters") {
		cfg.Engine.Clusters = opts.clusters
	}
	if flags.Changed("seed") {
		cfg.Engine.Seed = opts.seed
	}
	if flags.Changed("location") {
		cfg.Engine.Location = opts.location
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = opts.metricsTextfile
	}
	if flags.Changed("concurrency") {
		cfg.Batch.Concurrency = opts.concurrency
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func runReports(cmd *cobra.Command, cfg *config.Config, inputs []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	shutdown, err := infrastructure.InitTracing(ctx, cfg.Tracing, logger)
	if err != nil {
		return err
	}
	defer shutdown(context.Background())

	opts, err := engine.OptionsFromConfig(cfg.Engine)
	if err != nil {
		return err
	}

	validator := validation.NewFileValidator(logger)
	for _, input := range inputs {
		if err := validator.ValidateInput(input); err != nil {
			return err
		}
	}
	if err := validator.ValidateOutputDirectory(cfg.Output.Dir); err != nil {
		return err
	}

	found, err := files.NewDiscovery("").Resolve(inputs)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return fmt.Errorf("no punch files found in %v", inputs)
	}
	names := files.DatasetNames(found)

	metrics := infrastructure.NewRunMetrics()
	reader := ingest.NewReader(opts.Location, logger)

	var (
		datasets []batch.Dataset
		failed   int
	)
	for i, f := range found {
		punches, err := reader.ReadFile(f.Path)
		if err != nil {
			failed++
			metrics.ObserveFailure(names[i])
			logger.Error("Failed to read punch file",
				slog.String("file", f.Path),
				slog.String("error", err.Error()))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: FAILED: %v\n", names[i], err)
			continue
		}
		datasets = append(datasets, batch.Dataset{Name: names[i], Punches: punches})
	}

	runner := batch.NewRunner(engine.New(opts, logger), cfg.Batch.Concurrency, logger).WithMetrics(metrics)
	results := runner.Run(ctx, datasets)

	exp := exporter.NewReportExporter(cfg.Output, logger)
	for _, res := range results {
		if res.Failed() {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s: FAILED: %v\n", res.Dataset, res.Err)
			continue
		}
		if _, err := exp.Export(ctx, res.Dataset, res.Report); err != nil {
			failed++
			metrics.ObserveFailure(res.Dataset)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: FAILED: %v\n", res.Dataset, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d shifts, %d employees, %d warnings -> %s\n",
			res.Dataset, len(res.Report.Shifts), len(res.Report.Employees), len(res.Report.Warnings),
			exp.DatasetDir(res.Dataset))
	}

	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Error("Failed to write metrics textfile", slog.String("error", err.Error()))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d datasets failed", failed, len(found))
	}
	return nil
}
