package chart

import "errors"

// Sentinel kinds for chart data errors.
var (
	ErrMalformedRange = errors.New("malformed date range")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidChart   = errors.New("invalid point chart")
)
