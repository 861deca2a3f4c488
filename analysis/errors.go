package analysis

import "errors"

var (
	ErrUnknownMetric = errors.New("unknown metric")
	ErrInvalidDate   = errors.New("invalid date key")
	ErrNoData        = errors.New("no data")
)
