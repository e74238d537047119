package timeseries

import (
	"errors"
	"math"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func daily(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = day(i)
	}
	s, _ := NewWithTimestamps(timestamps, values)
	return s
}

func TestNewWithTimestampsLengthMismatch(t *testing.T) {
	_, err := NewWithTimestamps([]time.Time{day(0)}, []float64{1, 2})
	if err == nil {
		t.Fatal("Expected error for mismatched lengths")
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := daily(tt.values)
			result := s.Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	s := daily([]float64{5, 2, 8, 1, 9, 3})

	if s.Min() != 1 {
		t.Errorf("Expected min 1, got %f", s.Min())
	}

	if s.Max() != 9 {
		t.Errorf("Expected max 9, got %f", s.Max())
	}

	empty := daily(nil)
	if !math.IsNaN(empty.Min()) || !math.IsNaN(empty.Max()) {
		t.Errorf("Expected NaN min/max for empty series")
	}
}

func TestAtOutOfRange(t *testing.T) {
	empty := daily([]float64{})

	if _, _, err := empty.First(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("First on empty series: expected ErrIndexOutOfRange, got %v", err)
	}
	if _, _, err := empty.Last(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Last on empty series: expected ErrIndexOutOfRange, got %v", err)
	}

	s := daily([]float64{1, 2, 3})
	if _, _, err := s.At(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("At(3): expected ErrIndexOutOfRange, got %v", err)
	}
	if _, _, err := s.At(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("At(-1): expected ErrIndexOutOfRange, got %v", err)
	}

	ts, v, err := s.Last()
	if err != nil {
		t.Fatalf("Last failed: %v", err)
	}
	if !ts.Equal(day(2)) || v != 3 {
		t.Errorf("Expected last (%s, 3), got (%s, %f)", day(2), ts, v)
	}
}

func TestNearestIndex(t *testing.T) {
	s := daily([]float64{10, 11, 12, 13, 14})

	tests := []struct {
		name     string
		target   time.Time
		expected int
	}{
		{"exact", day(2), 2},
		{"before start", day(-10), 0},
		{"after end", day(40), 4},
		{"closer to next", day(1).Add(13 * time.Hour), 2},
		{"closer to previous", day(1).Add(11 * time.Hour), 1},
		{"tie picks earlier", day(1).Add(12 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := s.NearestIndex(tt.target)
			if err != nil {
				t.Fatalf("NearestIndex failed: %v", err)
			}
			if idx != tt.expected {
				t.Errorf("Expected index %d, got %d", tt.expected, idx)
			}
		})
	}
}

func TestNearestIndexUnsorted(t *testing.T) {
	s, _ := NewWithTimestamps(
		[]time.Time{day(5), day(0), day(3), day(1)},
		[]float64{1, 2, 3, 4},
	)

	idx, err := s.NearestIndex(day(2))
	if err != nil {
		t.Fatalf("NearestIndex failed: %v", err)
	}
	// day(3) and day(1) are both one day away; position 2 comes first.
	if idx != 2 {
		t.Errorf("Expected index 2, got %d", idx)
	}
}

func TestNearestIndexEmpty(t *testing.T) {
	_, err := daily(nil).NearestIndex(day(0))
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRolling(t *testing.T) {
	s := daily([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	rolled, err := s.Rolling(7)
	if err != nil {
		t.Fatalf("Rolling failed: %v", err)
	}

	expected := []float64{1, 1.5, 2, 2.5, 3, 3.5, 4, 5, 6, 7}
	if rolled.Len() != s.Len() {
		t.Fatalf("Expected length %d, got %d", s.Len(), rolled.Len())
	}

	for i, v := range rolled.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
		if !rolled.Timestamps[i].Equal(s.Timestamps[i]) {
			t.Errorf("Timestamp %d changed: %s vs %s", i, rolled.Timestamps[i], s.Timestamps[i])
		}
	}
}

func TestRollingWindowLargerThanSeries(t *testing.T) {
	s := daily([]float64{2, 4, 6})
	rolled, err := s.Rolling(7)
	if err != nil {
		t.Fatalf("Rolling failed: %v", err)
	}

	expected := []float64{2, 3, 4}
	for i, v := range rolled.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestRollingInvalidWindow(t *testing.T) {
	if _, err := daily([]float64{1}).Rolling(0); err == nil {
		t.Error("Expected error for zero window")
	}
}

func TestExpanding(t *testing.T) {
	s := daily([]float64{2, 4, 6, 8})
	exp := s.Expanding()

	expected := []float64{2, 3, 4, 5}
	if exp.Len() != s.Len() {
		t.Fatalf("Expected length %d, got %d", s.Len(), exp.Len())
	}

	for i, v := range exp.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}

	if math.Abs(exp.Values[exp.Len()-1]-s.Mean()) > 1e-10 {
		t.Errorf("Last expanding value %f should equal mean %f", exp.Values[exp.Len()-1], s.Mean())
	}
}

func TestTransformsStayFinite(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = 1e6 * math.Sin(float64(i))
	}
	s := daily(values)

	rolled, _ := s.Rolling(7)
	for i, v := range rolled.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Rolling value %d is not finite: %f", i, v)
		}
	}
	for i, v := range s.Expanding().Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Expanding value %d is not finite: %f", i, v)
		}
	}
}

func TestCopy(t *testing.T) {
	s := daily([]float64{1, 2, 3})
	copied := s.Copy()

	// Modify original
	s.Values[0] = 100
	s.Timestamps[0] = day(99)

	// Copy should be unchanged
	if copied.Values[0] != 1 {
		t.Errorf("Copy was modified when original changed")
	}
	if !copied.Timestamps[0].Equal(day(0)) {
		t.Errorf("Copy timestamps were modified when original changed")
	}
}
