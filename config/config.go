// Package config loads chart jobs from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/tsplot/logger"
	"github.com/sartorproj/tsplot/render"
	"github.com/sartorproj/tsplot/report"
	"github.com/sartorproj/tsplot/target"
	"github.com/sartorproj/tsplot/timeseries"
)

var validate = validator.New()

// Threshold is a horizontal reference line as written in a job file.
type Threshold struct {
	Value float64 `yaml:"value"`
	Name  string  `yaml:"name" validate:"required"`
	Color string  `yaml:"color" default:"red" validate:"required"`
}

// Target holds the target line settings. StartDate is any date that
// timeseries.ParseDate accepts. Start, when set, replaces the observation
// nearest StartDate.
type Target struct {
	StartDate string   `yaml:"start_date" validate:"required"`
	Gradient  float64  `yaml:"gradient" validate:"ne=0"`
	Start     *float64 `yaml:"start"`
}

// Config is one chart job as read from YAML.
type Config struct {
	Input      string      `yaml:"input" validate:"required"`
	Output     string      `yaml:"output" validate:"required"`
	YAxisLabel string      `yaml:"y_axis_label" default:"Value"`
	Thresholds []Threshold `yaml:"thresholds" validate:"dive"`
	Target     *Target     `yaml:"target"`

	Chart struct {
		Width         int     `yaml:"width" default:"1280" validate:"gt=0"`
		Height        int     `yaml:"height" default:"960" validate:"gt=0"`
		DPI           float64 `yaml:"dpi" default:"200" validate:"gt=0"`
		RollingWindow int     `yaml:"rolling_window" default:"7" validate:"gt=0"`
	} `yaml:"chart"`

	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"log"`
}

// Default returns a config holding only default values.
func Default() *Config {
	var c Config
	// Only fails for non-pointer arguments.
	_ = defaults.Set(&c)
	return &c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv()
	return c, c.Validate()
}

// ApplyEnv overrides fields from TSPLOT_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TSPLOT_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("TSPLOT_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("TSPLOT_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	for _, th := range c.Thresholds {
		if _, err := render.ParseColor(th.Color); err != nil {
			return fmt.Errorf("threshold %q: %w", th.Name, err)
		}
	}
	if c.Target != nil {
		if _, err := timeseries.ParseDate(c.Target.StartDate); err != nil {
			return fmt.Errorf("target.start_date: %w", err)
		}
	}
	return nil
}

// LoggerConfig returns the log section in the form logger.New takes.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{Level: c.Log.Level, Format: c.Log.Format, Output: c.Log.Output}
}

// Options converts the config into a report job.
func (c *Config) Options() (report.Options, error) {
	opts := report.Options{
		Input:         c.Input,
		Output:        c.Output,
		YAxisLabel:    c.YAxisLabel,
		RollingWindow: c.Chart.RollingWindow,
		Width:         c.Chart.Width,
		Height:        c.Chart.Height,
		DPI:           c.Chart.DPI,
	}
	for _, th := range c.Thresholds {
		opts.Thresholds = append(opts.Thresholds, render.Threshold{
			Value: th.Value,
			Name:  th.Name,
			Color: th.Color,
		})
	}
	if c.Target != nil {
		start, err := timeseries.ParseDate(c.Target.StartDate)
		if err != nil {
			return report.Options{}, fmt.Errorf("target.start_date: %w", err)
		}
		opts.Target = &target.Params{
			StartDate: start,
			Gradient:  c.Target.Gradient,
			Start:     c.Target.Start,
		}
	}
	return opts, nil
}
