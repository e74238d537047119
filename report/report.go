// Package report ties loading, smoothing, target derivation and rendering
// into the single call that turns a data file into a chart image.
package report

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sartorproj/tsplot/render"
	"github.com/sartorproj/tsplot/target"
	"github.com/sartorproj/tsplot/timeseries"
)

// DefaultRollingWindow is the trailing window, in samples, of the weekly
// average.
const DefaultRollingWindow = 7

const (
	seriesColor = "b"
	targetColor = "grey"
)

// Options describes one chart.
type Options struct {
	Input      string
	Output     string
	Thresholds []render.Threshold
	YAxisLabel string
	Target     *target.Params // nil draws no target curve

	RollingWindow int
	Width         int
	Height        int
	DPI           float64

	Logger *zerolog.Logger
}

// Work loads opts.Input, draws the observations with their rolling and
// running averages, the thresholds and the optional target curve, and
// writes the chart to opts.Output.
//
// An empty input file fails with timeseries.ErrIndexOutOfRange.
func Work(opts Options) error {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	window := opts.RollingWindow
	if window <= 0 {
		window = DefaultRollingWindow
	}

	ts, err := timeseries.Load(opts.Input, nil)
	if err != nil {
		log.Error().Err(err).Str("input", opts.Input).Msg("could not read data file")
		return fmt.Errorf("read %s: %w", opts.Input, err)
	}
	log.Debug().Str("input", opts.Input).Int("observations", ts.Len()).Msg("loaded series")

	weekly, err := ts.Rolling(window)
	if err != nil {
		return err
	}
	weekly.Name = "Rolling weekly average"
	running := ts.Expanding()
	running.Name = "Running average"

	var curve *timeseries.Series
	if opts.Target != nil {
		curve, err = target.Derive(*opts.Target, ts, render.Values(opts.Thresholds))
		if err != nil {
			return fmt.Errorf("derive target: %w", err)
		}
	}

	from, to, err := span(ts, curve)
	if err != nil {
		return err
	}
	log.Info().
		Int("observations", ts.Len()).
		Time("from", from).
		Time("to", to).
		Float64("min", ts.Min()).
		Float64("max", ts.Max()).
		Float64("mean", ts.Mean()).
		Msg("plotting series")

	fig := render.NewFigure(render.Options{
		Width:      opts.Width,
		Height:     opts.Height,
		DPI:        opts.DPI,
		YAxisLabel: opts.YAxisLabel,
	})
	for _, th := range opts.Thresholds {
		if err := fig.AddThreshold(th, from, to); err != nil {
			return err
		}
	}
	if err := fig.AddPoints(ts, ts.Name, seriesColor); err != nil {
		return err
	}
	if err := fig.AddLine(weekly, weekly.Name, seriesColor); err != nil {
		return err
	}
	if err := fig.AddLine(running, running.Name, seriesColor); err != nil {
		return err
	}
	if err := fig.AddDashedLine(curve, "", targetColor); err != nil {
		return err
	}

	if err := fig.Save(opts.Output); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	log.Info().Str("output", opts.Output).Msg("chart written")
	return nil
}

// span returns the date range covered by the observations and, when
// present, the target curve.
func span(ts, curve *timeseries.Series) (time.Time, time.Time, error) {
	from, _, err := ts.First()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, _, err := ts.Last()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if curve == nil || curve.Len() == 0 {
		return from, to, nil
	}

	cFrom, _, _ := curve.First()
	cTo, _, _ := curve.Last()
	if cFrom.Before(from) {
		from = cFrom
	}
	if cTo.After(to) {
		to = cTo
	}
	return from, to, nil
}
