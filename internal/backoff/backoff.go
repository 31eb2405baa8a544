// Package backoff encodes the retry policy for geocode jobs: a fixed,
// escalating wait table keyed by how many times a job has already missed.
package backoff

import "time"

// MaxTries is the number of misses after which a job is terminally failed.
const MaxTries = 5

// Hand-tuned schedule, indexed by tries. Not exponential: the steps are
// chosen so transient provider hiccups resolve within a day.
var schedule = [MaxTries]time.Duration{
	0,
	15 * time.Minute,
	1 * time.Hour,
	6 * time.Hour,
	24 * time.Hour,
}

// DelayFor returns the minimum wait before a job with the given number of
// tries may be attempted again. The second return value is false once the
// retry budget is exhausted (tries >= MaxTries); such a job must be failed,
// never retried.
func DelayFor(tries int) (time.Duration, bool) {
	if tries < 0 || tries >= MaxTries {
		return 0, false
	}
	return schedule[tries], true
}

// IsEligible reports whether a job with the given tries and creation time is
// due for an attempt at the instant now.
func IsEligible(tries int, createdAt, now time.Time) bool {
	delay, ok := DelayFor(tries)
	if !ok {
		return false
	}
	return now.Sub(createdAt) >= delay
}
