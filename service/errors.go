package service

import (
	"errors"
)

// ErrUnknownMetric is returned when a caller requests aggregation over a
// metric name outside the recognized set
var ErrUnknownMetric = errors.New("unknown metric")

// ErrSyncInProgress is returned when a sync run is requested while a previous
// run has not finished. The caller is expected to skip, not queue
var ErrSyncInProgress = errors.New("sync already in progress")
