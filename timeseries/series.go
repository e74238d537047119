// Package timeseries provides the date-indexed series type and its transforms.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrIndexOutOfRange is returned by positional access into a series that
// has no element at the requested position, including any access into an
// empty series.
var ErrIndexOutOfRange = errors.New("index out of range")

// Series represents a time series with timestamps and values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// At returns the timestamp and value at position i.
func (s *Series) At(i int) (time.Time, float64, error) {
	if i < 0 || i >= len(s.Values) || i >= len(s.Timestamps) {
		return time.Time{}, 0, fmt.Errorf("series %q position %d of %d: %w", s.Name, i, len(s.Values), ErrIndexOutOfRange)
	}
	return s.Timestamps[i], s.Values[i], nil
}

// First returns the first observation.
func (s *Series) First() (time.Time, float64, error) {
	return s.At(0)
}

// Last returns the last observation.
func (s *Series) Last() (time.Time, float64, error) {
	return s.At(len(s.Values) - 1)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// NearestIndex returns the position whose timestamp is closest to t.
// When two positions are equally close the earlier one wins.
func (s *Series) NearestIndex(t time.Time) (int, error) {
	if len(s.Timestamps) == 0 {
		return -1, fmt.Errorf("nearest to %s in series %q: %w", t.Format(time.RFC3339), s.Name, ErrIndexOutOfRange)
	}
	best := 0
	bestDist := absDuration(s.Timestamps[0].Sub(t))
	for i := 1; i < len(s.Timestamps); i++ {
		if d := absDuration(s.Timestamps[i].Sub(t)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Rolling calculates a trailing mean over window samples. The result has the
// same length as s; the first window-1 points are averaged over the samples
// available so far.
func (s *Series) Rolling(window int) (*Series, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rolling window must be positive, got %d", window)
	}

	result := make([]float64, len(s.Values))
	sum := 0.0
	for i, v := range s.Values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= s.Values[i-window]
			n = window
		}
		result[i] = sum / float64(n)
	}

	return &Series{
		Timestamps: copyTimes(s.Timestamps),
		Values:     result,
		Name:       s.Name + "_rolling",
	}, nil
}

// Expanding calculates the mean from the start of the series up to and
// including each point.
func (s *Series) Expanding() *Series {
	result := make([]float64, len(s.Values))
	sum := 0.0
	for i, v := range s.Values {
		sum += v
		result[i] = sum / float64(i+1)
	}

	return &Series{
		Timestamps: copyTimes(s.Timestamps),
		Values:     result,
		Name:       s.Name + "_expanding",
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	return &Series{
		Timestamps: copyTimes(s.Timestamps),
		Values:     values,
		Name:       s.Name,
	}
}

func copyTimes(ts []time.Time) []time.Time {
	out := make([]time.Time, len(ts))
	copy(out, ts)
	return out
}
