package usecase

import "time"

const (
	// DefaultReportCacheTTL is how long served report bytes stay cached.
	DefaultReportCacheTTL = 30 * time.Second

	// DefaultRunTimeout bounds one reconciliation pass.
	DefaultRunTimeout = 2 * time.Minute
)
