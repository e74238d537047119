// Package tsplot turns a single-column time series file into a chart.
//
// A data file holds one observation per line, value first and date second,
// separated by a semicolon. tsplot draws the raw observations, a rolling
// weekly average, a running average, any number of horizontal thresholds,
// and optionally a straight-line target that heads from a chosen start point
// towards the most extreme threshold.
//
// # Quick Start
//
// Render a chart from Go:
//
//	err := report.Work(report.Options{
//	    Input:  "weight.dat",
//	    Output: "weight.png",
//	    Thresholds: []render.Threshold{
//	        {Value: 90, Name: "Overweight", Color: "orange"},
//	        {Value: 80, Name: "Healthy", Color: "green"},
//	    },
//	    YAxisLabel: "Weight (kg)",
//	    Target: &target.Params{
//	        StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
//	        Gradient:  -0.1,
//	    },
//	})
//
// Or from the command line:
//
//	tsplot -i weight.dat -o weight.png -t 90:Overweight:orange \
//	    --target-start-date 2024-01-01 --target-gradient -0.1
//
// # Packages
//
//   - timeseries: Series type, file loaders, rolling and expanding means
//   - target: straight-line target curve derivation
//   - render: chart figure, thresholds, legend and image encoding
//   - report: the load, transform and draw pipeline
//   - config: YAML job files
//   - logger: zerolog setup
package tsplot
