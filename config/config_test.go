package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const fullConfig = `
input: weight.dat
output: weight.png
y_axis_label: Weight (kg)
thresholds:
  - value: 90
    name: Overweight
    color: orange
  - value: 85
    name: Healthy
target:
  start_date: 2020-01-10
  gradient: -0.2
  start: 94.5
chart:
  width: 800
log:
  level: debug
  format: json
`

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, fullConfig))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Input != "weight.dat" || c.Output != "weight.png" {
		t.Errorf("Unexpected paths %q, %q", c.Input, c.Output)
	}
	if c.YAxisLabel != "Weight (kg)" {
		t.Errorf("Expected y label 'Weight (kg)', got %q", c.YAxisLabel)
	}
	if len(c.Thresholds) != 2 {
		t.Fatalf("Expected 2 thresholds, got %d", len(c.Thresholds))
	}
	if c.Thresholds[1].Color != "red" {
		t.Errorf("Expected default colour 'red', got %q", c.Thresholds[1].Color)
	}
	if c.Chart.Width != 800 || c.Chart.Height != 960 || c.Chart.DPI != 200 || c.Chart.RollingWindow != 7 {
		t.Errorf("Unexpected chart section %+v", c.Chart)
	}
	if c.Log.Level != "debug" || c.Log.Format != "json" || c.Log.Output != "stderr" {
		t.Errorf("Unexpected log section %+v", c.Log)
	}
}

func TestOptions(t *testing.T) {
	c, err := Load(writeConfig(t, fullConfig))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	opts, err := c.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}

	if len(opts.Thresholds) != 2 || opts.Thresholds[0].Name != "Overweight" || opts.Thresholds[0].Value != 90 {
		t.Errorf("Unexpected thresholds %+v", opts.Thresholds)
	}
	if opts.Target == nil {
		t.Fatal("Expected target params")
	}
	if want := time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC); !opts.Target.StartDate.Equal(want) {
		t.Errorf("Expected start date %s, got %s", want, opts.Target.StartDate)
	}
	if opts.Target.Gradient != -0.2 {
		t.Errorf("Expected gradient -0.2, got %f", opts.Target.Gradient)
	}
	if opts.Target.Start == nil || *opts.Target.Start != 94.5 {
		t.Errorf("Expected start value 94.5, got %v", opts.Target.Start)
	}
	if opts.Width != 800 || opts.DPI != 200 || opts.RollingWindow != 7 {
		t.Errorf("Unexpected chart options %+v", opts)
	}
}

func TestLoadWithoutTarget(t *testing.T) {
	c, err := Load(writeConfig(t, "input: a.dat\noutput: a.png\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Target != nil {
		t.Errorf("Expected no target")
	}
	if c.YAxisLabel != "Value" {
		t.Errorf("Expected default y label 'Value', got %q", c.YAxisLabel)
	}

	opts, err := c.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opts.Target != nil {
		t.Errorf("Expected nil target params")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing input", "output: a.png\n", "Input"},
		{"zero gradient", "input: a\noutput: b.png\ntarget:\n  start_date: 2020-01-01\n  gradient: 0\n", "Gradient"},
		{"missing start date", "input: a\noutput: b.png\ntarget:\n  gradient: 1\n", "StartDate"},
		{"bad start date", "input: a\noutput: b.png\ntarget:\n  start_date: someday\n  gradient: 1\n", "start_date"},
		{"bad colour", "input: a\noutput: b.png\nthresholds:\n  - {value: 1, name: x, color: blurple}\n", "blurple"},
		{"unnamed threshold", "input: a\noutput: b.png\nthresholds:\n  - {value: 1}\n", "Name"},
		{"bad log level", "input: a\noutput: b.png\nlog:\n  level: loud\n", "Level"},
		{"bad yaml", "input: [\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("TSPLOT_OUTPUT", "override.png")
	t.Setenv("TSPLOT_LOG_LEVEL", "WARN")

	c, err := LoadWithEnv(writeConfig(t, "input: a.dat\noutput: a.png\n"))
	if err != nil {
		t.Fatalf("LoadWithEnv failed: %v", err)
	}
	if c.Output != "override.png" {
		t.Errorf("Expected output override, got %q", c.Output)
	}
	if c.Log.Level != "warn" {
		t.Errorf("Expected log level override 'warn', got %q", c.Log.Level)
	}
	if c.Input != "a.dat" {
		t.Errorf("Input should be untouched, got %q", c.Input)
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Chart.DPI != 200 || c.Chart.RollingWindow != 7 || c.YAxisLabel != "Value" {
		t.Errorf("Unexpected defaults %+v", c)
	}
	if lc := c.LoggerConfig(); lc.Level != "info" || lc.Format != "console" {
		t.Errorf("Unexpected logger defaults %+v", lc)
	}
}
