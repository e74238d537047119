// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing a date-indexed
// series, the loaders that build one from a file, and the smoothing
// transforms drawn alongside the raw observations.
//
// # Loading
//
// The default input is a semicolon-delimited text file with no header, one
// observation per line, value first and date second:
//
//	72.4;2020-01-01
//	72.1;2020-01-02
//
// Load it with the default options:
//
//	series, err := timeseries.LoadCSV("weight.dat", nil)
//
// Workbooks with the same two-column layout load through LoadXLSX, and Load
// picks between the two by file extension:
//
//	series, err := timeseries.Load("weight.xlsx", nil)
//
// An empty file loads as an empty series. Positional access into it (At,
// First, Last, NearestIndex) fails with ErrIndexOutOfRange.
//
// # Smoothing
//
//	weekly, err := series.Rolling(7) // trailing 7-sample mean
//	running := series.Expanding()    // mean of everything so far
//
// Both return a series of the same length as the input. The first points of
// a rolling mean average over the samples available so far.
//
// # Dates
//
// ParseDate accepts ISO dates and timestamps, RFC3339, month-first slashed
// dates, yyyymmdd and Unix seconds. Spreadsheet serial dates convert with
// FromExcelSerial.
package timeseries
