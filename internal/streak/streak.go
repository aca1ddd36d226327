// Package streak derives consecutive-day engagement counters from activity
// dates. The same algorithm backs both the check-in streak and the
// journal-writing streak.
package streak

import "time"

// SameDay reports whether two instants fall on the same calendar day in UTC.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// Next returns the streak value after an activity on today, given the
// previous activity date and the current streak. A zero last date means no
// prior activity. Re-entry on the same day leaves the streak unchanged, so
// the function is idempotent per calendar day.
func Next(today, last time.Time, current int) int {
	if last.IsZero() {
		return 1
	}
	if SameDay(today, last) {
		if current < 1 {
			return 1
		}
		return current
	}
	if SameDay(today.UTC().AddDate(0, 0, -1), last) {
		return current + 1
	}
	return 1
}
