package common

import "time"

// WipeByteArray zeroes b in place. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Day returns the UTC calendar date of t in DateLayout.
func Day(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
