package timeseries

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX loads a time series from a worksheet laid out like the delimited
// format: one observation per row, value and date in the configured columns.
// Numeric date cells are read as spreadsheet serial dates.
func LoadXLSX(filename string, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	b := newBuilder(opts)
	for i, row := range rows {
		if i == 0 && opts.HasHeader {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		if len(row) > opts.DateColumn {
			row[opts.DateColumn] = serialToDate(row[opts.DateColumn])
		}
		if err := b.add(i+1, row); err != nil {
			return nil, err
		}
	}

	return b.series(), nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// serialToDate rewrites a numeric serial date cell as an RFC3339 timestamp.
// Textual dates and numbers outside the serial range, such as 20200101, are
// left for ParseDate.
func serialToDate(cell string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return cell
	}
	t, err := FromExcelSerial(serial)
	if err != nil {
		return cell
	}
	return t.Format(time.RFC3339)
}
