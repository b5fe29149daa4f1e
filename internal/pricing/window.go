package pricing

import "time"

// EditWindow is the rolling period after a price record's last change
// during which further edits are permitted. A successful edit resets the
// window; it is not a consumable quota.
const EditWindow = 6 * time.Hour

// lastChange returns the reference point the window is measured from:
// the last update when one happened, otherwise creation.
func lastChange(createdAt time.Time, updatedAt *time.Time) time.Time {
	if updatedAt != nil && updatedAt.After(createdAt) {
		return *updatedAt
	}
	return createdAt
}

// Remaining computes how much of the edit window is left at now. Never
// negative. Lock state is derived lazily from the two timestamps; there
// is no stored flag and no background timer.
func Remaining(now, last time.Time) time.Duration {
	remaining := EditWindow - now.Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Editable reports whether the record may still be mutated at now.
// Reads are never affected by the window.
func Editable(now, last time.Time) bool {
	return Remaining(now, last) > 0
}
