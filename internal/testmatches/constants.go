package testmatches

import "time"

// HTTP status code constants.
const (
	StatusOK = 200
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	BriefSettleDelay     = 5 * time.Second
	PercentageMultiplier = 100
)
