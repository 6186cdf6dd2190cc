package infra

import "time"

// Reconnect pacing for the stream worker. A round lasts minutes, so the
// cap stays low enough to rejoin a game in progress.
const (
	backoffBase = 1 * time.Second
	backoffCap  = 60 * time.Second

	// Shifts past this would overflow; the cap is hit long before.
	maxBackoffShift = 30
)

// CalculateBackoff returns the delay before reconnect attempt number
// retryCount: backoffBase doubled per attempt, capped at backoffCap.
// Negative counts read as the first attempt.
func CalculateBackoff(retryCount int) time.Duration {
	if retryCount < 0 {
		return backoffBase
	}
	if retryCount > maxBackoffShift {
		return backoffCap
	}

	delay := backoffBase * time.Duration(1<<retryCount)
	if delay > backoffCap {
		return backoffCap
	}
	return delay
}
