package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// offsetSuffixLen is the length of the trailing UTC offset, e.g. "-05:00".
const offsetSuffixLen = 6

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
}

// ParseTimestamp drops the trailing UTC offset of raw and parses the rest as
// naive wall-clock time. The offset is discarded, not applied.
// Fractional seconds are accepted after the seconds field.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < offsetSuffixLen {
		return time.Time{}, ErrTimestampTooShort
	}
	value := raw[:len(raw)-offsetSuffixLen]

	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, lastErr)
}

// ParseDuration parses "[-][D days ]H:MM:SS[.fraction]". Hours are unbounded
// so exported totals such as "37:15:00" parse; minutes and seconds must be
// below 60.
func ParseDuration(raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidDuration)
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	var total time.Duration
	if i := strings.Index(s, "day"); i >= 0 {
		days, err := parseDigits(strings.TrimSpace(s[:i]))
		if err != nil {
			return 0, fmt.Errorf("%w: bad day count in %q", ErrInvalidDuration, raw)
		}
		total += time.Duration(days) * 24 * time.Hour
		s = strings.TrimSpace(strings.TrimLeft(s[i+len("day"):], "s,"))
		if s == "" {
			return sign(total, neg), nil
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q is not H:MM:SS", ErrInvalidDuration, raw)
	}

	hours, err := parseDigits(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: bad hours in %q", ErrInvalidDuration, raw)
	}
	minutes, err := parseDigits(parts[1])
	if err != nil || minutes >= 60 {
		return 0, fmt.Errorf("%w: bad minutes in %q", ErrInvalidDuration, raw)
	}

	secPart, fracPart, hasFrac := strings.Cut(parts[2], ".")
	seconds, err := parseDigits(secPart)
	if err != nil || seconds >= 60 {
		return 0, fmt.Errorf("%w: bad seconds in %q", ErrInvalidDuration, raw)
	}

	total += time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second

	if hasFrac {
		nanos, err := parseFraction(fracPart)
		if err != nil {
			return 0, fmt.Errorf("%w: bad fraction in %q", ErrInvalidDuration, raw)
		}
		total += nanos
	}

	return sign(total, neg), nil
}

func sign(d time.Duration, neg bool) time.Duration {
	if neg {
		return -d
	}
	return d
}

// parseDigits accepts only ASCII digits; strconv alone would also take signs.
func parseDigits(s string) (int64, error) {
	if !isDigits(s) {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(s, 10, 64)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseFraction converts up to nine fractional digits to nanoseconds.
func parseFraction(s string) (time.Duration, error) {
	if !isDigits(s) {
		return 0, strconv.ErrSyntax
	}
	if len(s) > 9 {
		s = s[:9]
	}
	n, err := parseDigits(s)
	if err != nil {
		return 0, err
	}
	for i := len(s); i < 9; i++ {
		n *= 10
	}
	return time.Duration(n), nil
}
