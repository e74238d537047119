// Package render draws series, thresholds and target curves onto a single
// chart image.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/sartorproj/tsplot/timeseries"
)

var (
	// ErrUnsupportedFormat is returned for output extensions with no encoder.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrEmptyFigure is returned when saving a figure with nothing on it.
	ErrEmptyFigure = errors.New("figure has no series")
)

// strokeDisabled is a negative stroke width, which go-chart reads as
// "no line" instead of falling back to its default width.
const strokeDisabled = -1

// Threshold is a horizontal reference line.
type Threshold struct {
	Value float64
	Name  string
	Color string
}

// Values returns the threshold values in order.
func Values(thresholds []Threshold) []float64 {
	out := make([]float64, len(thresholds))
	for i, th := range thresholds {
		out[i] = th.Value
	}
	return out
}

// Options controls figure layout.
type Options struct {
	Width          int
	Height         int
	DPI            float64
	XAxisLabel     string
	YAxisLabel     string
	LegendFontSize float64
}

// DefaultOptions returns a 6.4 by 4.8 inch figure at 200 dpi.
func DefaultOptions() Options {
	return Options{
		Width:          1280,
		Height:         960,
		DPI:            200,
		XAxisLabel:     "Date",
		YAxisLabel:     "Value",
		LegendFontSize: 8,
	}
}

// Figure collects series for one chart. Series are copied when added, and a
// Figure is emptied by Save, so nothing drawn for one image carries over into
// the next.
type Figure struct {
	opts   Options
	series []chart.Series
	legend []legendEntry

	minX, maxX time.Time
	minY, maxY float64
}

// NewFigure creates an empty figure. Zero-valued options take their
// defaults.
func NewFigure(opts Options) *Figure {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.DPI <= 0 {
		opts.DPI = def.DPI
	}
	if opts.XAxisLabel == "" {
		opts.XAxisLabel = def.XAxisLabel
	}
	if opts.YAxisLabel == "" {
		opts.YAxisLabel = def.YAxisLabel
	}
	if opts.LegendFontSize <= 0 {
		opts.LegendFontSize = def.LegendFontSize
	}
	f := &Figure{opts: opts}
	f.reset()
	return f
}

// Len returns the number of series on the figure.
func (f *Figure) Len() int {
	return len(f.series)
}

// AddThreshold draws th as a dashed horizontal line from one date to another.
func (f *Figure) AddThreshold(th Threshold, from, to time.Time) error {
	col, err := ParseColor(th.Color)
	if err != nil {
		return fmt.Errorf("threshold %q: %w", th.Name, err)
	}
	line := &timeseries.Series{
		Timestamps: []time.Time{from, to},
		Values:     []float64{th.Value, th.Value},
	}
	f.add(line, th.Name, chart.Style{
		StrokeColor:     col,
		StrokeWidth:     1.5,
		StrokeDashArray: []float64{6, 4},
	}, false)
	return nil
}

// AddPoints draws s as unconnected markers.
func (f *Figure) AddPoints(s *timeseries.Series, name, color string) error {
	col, err := ParseColor(color)
	if err != nil {
		return fmt.Errorf("series %q: %w", name, err)
	}
	f.add(s, name, chart.Style{
		StrokeWidth: strokeDisabled,
		DotColor:    col,
		DotWidth:    3,
	}, true)
	return nil
}

// AddLine draws s as a solid line.
func (f *Figure) AddLine(s *timeseries.Series, name, color string) error {
	col, err := ParseColor(color)
	if err != nil {
		return fmt.Errorf("series %q: %w", name, err)
	}
	f.add(s, name, chart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5,
	}, false)
	return nil
}

// AddDashedLine draws s as a dashed line. An empty name keeps it out of the
// legend.
func (f *Figure) AddDashedLine(s *timeseries.Series, name, color string) error {
	col, err := ParseColor(color)
	if err != nil {
		return fmt.Errorf("series %q: %w", name, err)
	}
	f.add(s, name, chart.Style{
		StrokeColor:     col,
		StrokeWidth:     1.5,
		StrokeDashArray: []float64{6, 4},
	}, false)
	return nil
}

func (f *Figure) add(s *timeseries.Series, name string, style chart.Style, marker bool) {
	if s == nil || s.Len() == 0 {
		return
	}
	s = s.Copy()

	f.series = append(f.series, chart.TimeSeries{
		Name:    name,
		Style:   style,
		XValues: s.Timestamps,
		YValues: s.Values,
	})
	if name != "" {
		f.legend = append(f.legend, legendEntry{label: name, style: style, marker: marker})
	}

	for i, ts := range s.Timestamps {
		if f.minX.IsZero() || ts.Before(f.minX) {
			f.minX = ts
		}
		if f.maxX.IsZero() || ts.After(f.maxX) {
			f.maxX = ts
		}
		if v := s.Values[i]; !math.IsNaN(v) && !math.IsInf(v, 0) {
			f.minY = math.Min(f.minY, v)
			f.maxY = math.Max(f.maxY, v)
		}
	}
}

// Save renders the figure to path, choosing the encoding from the file
// extension, and empties the figure.
func (f *Figure) Save(path string) error {
	defer f.reset()

	var buf bytes.Buffer
	if err := f.Encode(&buf, filepath.Ext(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Encode renders the figure to w. ext is a file extension such as ".png",
// ".jpg" or ".svg".
func (f *Figure) Encode(w io.Writer, ext string) error {
	ext = strings.ToLower(ext)
	switch ext {
	case ".png", ".jpg", ".jpeg", ".svg":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if len(f.series) == 0 {
		return ErrEmptyFigure
	}

	ch := f.build()

	switch ext {
	case ".svg":
		return ch.Render(chart.SVG, w)
	case ".png":
		return ch.Render(chart.PNG, w)
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("decode rendered chart: %w", err)
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}

func (f *Figure) build() chart.Chart {
	minX, maxX := f.minX, f.maxX
	if !maxX.After(minX) {
		maxX = minX.Add(24 * time.Hour)
	}

	minY, maxY := f.minY, f.maxY
	if minY > maxY {
		minY, maxY = 0, 0
	}
	if span := maxY - minY; span > 0 {
		minY -= span * 0.05
		maxY += span * 0.05
	} else {
		minY -= 0.5
		maxY += 0.5
	}

	ch := chart.Chart{
		Width:      f.opts.Width,
		Height:     f.opts.Height,
		DPI:        f.opts.DPI,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           f.opts.XAxisLabel,
			ValueFormatter: chart.TimeValueFormatterWithFormat(time.DateOnly),
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(minX),
				Max: chart.TimeToFloat64(maxX),
			},
		},
		YAxis: chart.YAxis{
			Name:  f.opts.YAxisLabel,
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: f.series,
	}
	ch.Elements = []chart.Renderable{lowerLeftLegend(f.legend, f.opts.LegendFontSize)}
	return ch
}

func (f *Figure) reset() {
	f.series = nil
	f.legend = nil
	f.minX, f.maxX = time.Time{}, time.Time{}
	f.minY, f.maxY = math.Inf(1), math.Inf(-1)
}
