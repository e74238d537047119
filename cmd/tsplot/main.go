// Package main provides the tsplot command, which renders a time series
// file into a chart image.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sartorproj/tsplot/config"
	"github.com/sartorproj/tsplot/logger"
	"github.com/sartorproj/tsplot/report"
)

type flags struct {
	input           string
	output          string
	yLabel          string
	thresholds      []string
	targetStartDate string
	targetGradient  float64
	targetStart     string
	logLevel        string
	logFormat       string
}

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "tsplot [job.yaml]",
		Short: "Plot a time series with thresholds and a target line",
		Long: `tsplot reads a "value;date" file, draws the observations with their
rolling weekly and running averages, optional threshold lines and an
optional straight-line target, and writes the chart as an image.

Settings come from an optional YAML job file; flags override it.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	fl := rootCmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "", "Input data file (value;date per line, or .xlsx)")
	fl.StringVarP(&f.output, "output", "o", "", "Output image (.png, .jpg or .svg)")
	fl.StringVar(&f.yLabel, "ylabel", "", "Y axis label (default \"Value\")")
	fl.StringArrayVarP(&f.thresholds, "threshold", "t", nil, "Threshold as value:name:color (repeatable)")
	fl.StringVar(&f.targetStartDate, "target-start-date", "", "Date the target line starts from")
	fl.Float64Var(&f.targetGradient, "target-gradient", 0, "Target change in value per day")
	fl.StringVar(&f.targetStart, "target-start", "", "Target start value (default: observation nearest the start date)")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fl.StringVar(&f.logFormat, "log-format", "", "Log format: console or json")

	return rootCmd
}

func run(cmd *cobra.Command, args []string, f flags) error {
	cfg := config.Default()
	if len(args) == 1 {
		loaded, err := config.Load(args[0])
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if err := applyFlags(cmd, cfg, f); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	log, closeLog, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return err
	}
	defer closeLog()

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts.Logger = &log

	return report.Work(opts)
}

func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) error {
	fl := cmd.Flags()
	if fl.Changed("input") {
		cfg.Input = f.input
	}
	if fl.Changed("output") {
		cfg.Output = f.output
	}
	if fl.Changed("ylabel") {
		cfg.YAxisLabel = f.yLabel
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = strings.ToLower(f.logLevel)
	}
	if fl.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}

	if fl.Changed("threshold") {
		cfg.Thresholds = cfg.Thresholds[:0]
		for _, raw := range f.thresholds {
			th, err := parseThreshold(raw)
			if err != nil {
				return err
			}
			cfg.Thresholds = append(cfg.Thresholds, th)
		}
	}

	if fl.Changed("target-start-date") || fl.Changed("target-gradient") || fl.Changed("target-start") {
		if cfg.Target == nil {
			cfg.Target = &config.Target{}
		}
		if fl.Changed("target-start-date") {
			cfg.Target.StartDate = f.targetStartDate
		}
		if fl.Changed("target-gradient") {
			cfg.Target.Gradient = f.targetGradient
		}
		if fl.Changed("target-start") {
			v, err := strconv.ParseFloat(f.targetStart, 64)
			if err != nil {
				return fmt.Errorf("--target-start: %w", err)
			}
			cfg.Target.Start = &v
		}
	}
	return nil
}

// parseThreshold parses "value:name:color". The colour may be omitted.
func parseThreshold(raw string) (config.Threshold, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return config.Threshold{}, fmt.Errorf("threshold %q: want value:name[:color]", raw)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return config.Threshold{}, fmt.Errorf("threshold %q: %w", raw, err)
	}
	th := config.Threshold{Value: v, Name: parts[1], Color: "red"}
	if len(parts) == 3 && parts[2] != "" {
		th.Color = parts[2]
	}
	return th, nil
}
