package awsutil

import (
	"math/rand"
	"time"
)

// JitteredExponentialBackoff returns a function that sleeps and returns true
// to make it easy to implement jittered exponential backoff in a for-loop.
// The first call returns true without sleeping to be fast on the happy path.
// After tries calls (or never, if tries isn't positive) it returns false.
// Here's how you should use it:
//
//	for jeb := JitteredExponentialBackoff(time.Second, 10*time.Second, 10); jeb(); {
//	}
func JitteredExponentialBackoff(init, max time.Duration, tries int) func() bool {
	d, i := init, 0
	return func() bool {
		if tries > 0 && i >= tries {
			return false
		}
		i++
		if i == 1 {
			return true
		}

		// Compute jitter by first getting a random jitter up to 50% of the
		// base sleep and then shifting it down so its range is -25% to +25%.
		var jitter time.Duration
		if d >= 2 {
			jitter = time.Duration(rand.Int63n(int64(d/2))) - d/4
		}
		time.Sleep(d + jitter)

		d *= 2
		if d > max {
			d = max
		}
		return true
	}
}

// StandardJitteredExponentialBackoff is JitteredExponentialBackoff with the
// parameters that suit waiting out AWS API conflicts and throttling.
func StandardJitteredExponentialBackoff() func() bool {
	return JitteredExponentialBackoff(time.Second, 10*time.Second, 10)
}
