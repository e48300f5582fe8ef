package clock

import "time"

// Backoff returns base doubled retry times, capped at limit. A non-positive limit
// disables the cap.
func Backoff(base time.Duration, retry int, limit time.Duration) time.Duration {
	if base <= 0 || retry <= 0 {
		return max(base, 0)
	}
	d := base
	for range retry {
		if limit > 0 && d >= limit {
			return limit
		}
		if d > time.Duration(1<<62) {
			break
		}
		d *= 2
	}
	if limit > 0 && d > limit {
		return limit
	}
	return d
}
