// Package main demonstrates tsplot on synthetic data: it writes a few
// "value;date" files, renders each with thresholds and a target line, and
// reports where the charts went.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sartorproj/tsplot/logger"
	"github.com/sartorproj/tsplot/render"
	"github.com/sartorproj/tsplot/report"
	"github.com/sartorproj/tsplot/target"
)

// Dataset defines a synthetic series and how to chart it
type Dataset struct {
	Name       string             // Display name
	File       string             // Output stem
	Days       int                // Number of daily observations
	Start      float64            // First value
	Drift      float64            // Change per day
	Noise      float64            // Uniform noise amplitude
	Weekly     float64            // Amplitude of a 7-day cycle
	YLabel     string             // Y axis label
	Thresholds []render.Threshold // Reference lines
	Gradient   float64            // Target gradient (0 = no target)
	TargetDay  int                // Day the target starts from
}

func main() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("tsplot demonstration")
	fmt.Println(strings.Repeat("=", 80))

	outDir := "demo_output"
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Printf("cannot create %s: %v\n", outDir, err)
		os.Exit(1)
	}

	log, closeLog, err := logger.New(logger.Config{Level: "info", Format: "console"})
	if err != nil {
		fmt.Printf("logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	datasets := []Dataset{
		{
			Name: "Body weight", File: "weight", Days: 120, Start: 96, Drift: -0.06, Noise: 0.8, Weekly: 0.3,
			YLabel: "Weight (kg)", Gradient: -0.1, TargetDay: 30,
			Thresholds: []render.Threshold{
				{Value: 90, Name: "Overweight", Color: "orange"},
				{Value: 80, Name: "Healthy", Color: "green"},
			},
		},
		{
			Name: "Savings", File: "savings", Days: 200, Start: 1200, Drift: 9, Noise: 60, Weekly: 25,
			YLabel: "Balance", Gradient: 12, TargetDay: 60,
			Thresholds: []render.Threshold{
				{Value: 2500, Name: "Emergency fund", Color: "#1f77b4"},
				{Value: 4000, Name: "Holiday", Color: "purple"},
			},
		},
		{
			Name: "Resting heart rate", File: "heart_rate", Days: 45, Start: 64, Drift: -0.02, Noise: 3,
			YLabel: "bpm",
			Thresholds: []render.Threshold{
				{Value: 60, Name: "Athletic", Color: "r"},
			},
		},
	}

	rng := rand.New(rand.NewSource(42))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, ds := range datasets {
		fmt.Printf("\n%s\n[%d/%d] %s\n%s\n", strings.Repeat("=", 80), i+1, len(datasets), ds.Name, strings.Repeat("=", 80))

		input := filepath.Join(outDir, ds.File+".dat")
		if err := writeSeries(input, ds, start, rng); err != nil {
			fmt.Printf("   Error writing data: %v\n", err)
			continue
		}

		opts := report.Options{
			Input:      input,
			Output:     filepath.Join(outDir, ds.File+".png"),
			Thresholds: ds.Thresholds,
			YAxisLabel: ds.YLabel,
			Logger:     &log,
		}
		if ds.Gradient != 0 {
			opts.Target = &target.Params{
				StartDate: start.AddDate(0, 0, ds.TargetDay),
				Gradient:  ds.Gradient,
			}
		}

		if err := report.Work(opts); err != nil {
			fmt.Printf("   Error plotting: %v\n", err)
			continue
		}
		fmt.Printf("   %d observations -> %s\n", ds.Days, opts.Output)
	}

	fmt.Println(strings.Repeat("=", 80))
}

// writeSeries writes ds as a value;date file
func writeSeries(path string, ds Dataset, start time.Time, rng *rand.Rand) error {
	var b strings.Builder
	for d := 0; d < ds.Days; d++ {
		v := ds.Start + ds.Drift*float64(d) +
			ds.Weekly*math.Sin(2*math.Pi*float64(d)/7) +
			ds.Noise*(2*rng.Float64()-1)
		fmt.Fprintf(&b, "%.2f;%s\n", v, start.AddDate(0, 0, d).Format(time.DateOnly))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
