package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// MetricsCacheTTL is how long dashboard metrics are served from cache
	MetricsCacheTTL = 30 * time.Second

	// UnknownBaseName is the display placeholder for a missing base reference
	UnknownBaseName = "Unknown Base"

	// UnknownEquipmentName is the display placeholder for a missing equipment reference
	UnknownEquipmentName = "Unknown Equipment"
)
