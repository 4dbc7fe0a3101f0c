package timestamp

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// millisBoundary separates plausible epoch-second values from epoch-millisecond
// values. Anything below it is read as seconds. Fixed on purpose: the boundary
// only becomes ambiguous for dates past the year 33658.
const millisBoundary = 1e12

// ErrUnparsable is returned when an input cannot be converted to an instant.
// Callers must treat a failed normalization as "unknown instant": never
// comparable, never recent.
var ErrUnparsable = errors.New("unparsable timestamp")

var (
	// explicit offset or Zulu suffix: +08:00, -0500, Z
	offsetSuffixRegex = regexp.MustCompile(`(?:Z|[+-]\d{2}:?\d{2})$`)
	// configured timezone: UTC, UTC+8, UTC-05:30
	timezoneSpecRegex = regexp.MustCompile(`^UTC(?:([+-])(\d{1,2})(?::(\d{2}))?)?$`)
)

var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
}

var naiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Normalize converts a heterogeneous timestamp representation into epoch
// milliseconds. Numbers (and numeric strings) below millisBoundary are epoch
// seconds, above it epoch milliseconds. Strings carrying their own offset are
// parsed as-is; naive date-time strings are interpreted in the configured
// timezone ("UTC", "UTC+HH:MM" or "UTC-HH:MM"). An explicit offset in the
// input always wins over the configured timezone.
func Normalize(input any, timezone string) (int64, error) {
	s, ok := stringify(input)
	if !ok {
		return 0, fmt.Errorf("%w: nil input", ErrUnparsable)
	}
	s = strings.TrimSpace(s)

	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		if v < millisBoundary {
			return int64(v * 1000), nil
		}
		return int64(v), nil
	}

	if offsetSuffixRegex.MatchString(s) {
		for _, layout := range offsetLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UnixMilli(), nil
			}
		}
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, s)
	}

	m := timezoneSpecRegex.FindStringSubmatch(timezone)
	if m == nil {
		// Unknown timezone spec: best effort in the process-local location.
		for _, layout := range naiveLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t.UnixMilli(), nil
			}
		}
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, s)
	}

	suffix, err := offsetSuffix(m)
	if err != nil {
		return 0, err
	}

	// "2024-01-01 10:00:00" -> "2024-01-01T10:00:00+08:00"
	aware := strings.Replace(s, " ", "T", 1) + suffix
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if t, err := time.Parse(layout, aware); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnparsable, s)
}

// ParseOffset validates a timezone spec string and returns its offset in
// minutes east of UTC. Accepts "UTC", "UTC+HH", "UTC+HH:MM", "UTC-HH:MM".
func ParseOffset(timezone string) (int, error) {
	m := timezoneSpecRegex.FindStringSubmatch(timezone)
	if m == nil {
		return 0, fmt.Errorf("invalid timezone spec %q", timezone)
	}
	if m[1] == "" {
		return 0, nil
	}
	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("invalid timezone spec %q", timezone)
	}
	offset := hours*60 + minutes
	if m[1] == "-" {
		offset = -offset
	}
	return offset, nil
}

func offsetSuffix(m []string) (string, error) {
	if m[1] == "" {
		return "Z", nil
	}
	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}
	if hours > 23 || minutes > 59 {
		return "", fmt.Errorf("%w: timezone offset out of range", ErrUnparsable)
	}
	return fmt.Sprintf("%s%02d:%02d", m[1], hours, minutes), nil
}

func stringify(input any) (string, bool) {
	switch v := input.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case time.Time:
		return v.Format(time.RFC3339Nano), true
	default:
		return fmt.Sprint(v), true
	}
}
