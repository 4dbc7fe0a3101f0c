package timestamp

import "time"

// IsRecent reports whether the given timestamp falls within the window before
// now. Unparsable timestamps are never recent (fail closed). Timestamps in
// the future count as recent: a small clock skew between the provider and
// this machine must not hide a message that just arrived.
func IsRecent(input any, timezone string, window time.Duration) bool {
	return isRecentAt(input, timezone, window, time.Now())
}

func isRecentAt(input any, timezone string, window time.Duration, now time.Time) bool {
	ms, err := Normalize(input, timezone)
	if err != nil {
		return false
	}
	return now.UnixMilli()-ms <= window.Milliseconds()
}

// Age returns how long ago the timestamp was, for progress reporting. The
// second return is false when the timestamp cannot be normalized.
func Age(input any, timezone string, now time.Time) (time.Duration, bool) {
	ms, err := Normalize(input, timezone)
	if err != nil {
		return 0, false
	}
	return time.Duration(now.UnixMilli()-ms) * time.Millisecond, true
}
