package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz returns the polling period for a requested sample rate.
// hz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(hz uint32) time.Duration {
	if hz == 0 {
		hz = 1
	}
	return time.Second / time.Duration(hz)
}
