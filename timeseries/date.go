package timeseries

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses a calendar date or timestamp. Slashed dates are read
// month first, eight-digit numbers as yyyymmdd and ten-digit numbers as Unix
// seconds. Dates without a zone are taken as UTC and the result is in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.Trim(s, "\""))
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// excelEpoch is day zero of the 1900 date system as Excel counts it, with
// the fictitious 1900-02-29 already absorbed.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// maxExcelSerial is 9999-12-31, the last date a spreadsheet can hold.
const maxExcelSerial = 2958465

// FromExcelSerial converts a spreadsheet serial date to a time. Serials
// outside 0 to 9999-12-31 are rejected.
func FromExcelSerial(serial float64) (time.Time, error) {
	if math.IsNaN(serial) || serial < 0 || serial >= maxExcelSerial+1 {
		return time.Time{}, fmt.Errorf("serial date %g out of range", serial)
	}
	days := math.Floor(serial)
	frac := time.Duration((serial - days) * float64(24*time.Hour))
	return excelEpoch.AddDate(0, 0, int(days)).Add(frac).Round(time.Second), nil
}
