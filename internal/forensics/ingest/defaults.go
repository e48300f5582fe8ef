package ingest

import "time"

const (
	defaultFetchAttempts = 3
	defaultRetryDelay    = 2 * time.Second
	maxRetryDelay        = 30 * time.Second

	rebuildCommitSize = 10_000

	mirrorBatcherCapacity      = 100
	mirrorBatcherFlushInterval = 5 * time.Second
	mirrorBatcherRPS           = 10
)
