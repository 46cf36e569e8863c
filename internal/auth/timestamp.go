// ABOUTME: Freshness window check for timestamped signature requests
// ABOUTME: Symmetric bound tolerating client clock skew in either direction

package auth

import "time"

// Fresh reports whether a claimed unix timestamp falls within window of
// now. The bound is symmetric: slightly-future timestamps are as acceptable
// as slightly-past ones, since client and server clocks drift both ways.
func Fresh(claimed, now int64, window time.Duration) bool {
	diff := now - claimed
	if diff < 0 {
		diff = -diff
	}
	return diff < int64(window/time.Second)
}
