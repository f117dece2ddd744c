package measure

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatDuration renders an ISO-8601 time such as "PT1H30M" as
// "1 hour 30 minutes". Seconds are only shown for durations under an hour.
// Strings that are not in PT form, or whose components overflow an int, are
// returned as they came.
func FormatDuration(d string) string {
	if d == "" {
		return ""
	}
	m := isoDuration.FindStringSubmatch(d)
	if m == nil {
		return d
	}
	hours, ok1 := atoi(m[1])
	minutes, ok2 := atoi(m[2])
	seconds, ok3 := atoi(m[3])
	if !ok1 || !ok2 || !ok3 {
		return d
	}

	var parts []string
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	if seconds > 0 && hours == 0 {
		parts = append(parts, plural(seconds, "second"))
	}
	if len(parts) == 0 {
		return "0 minutes"
	}
	return strings.Join(parts, " ")
}

// ISODuration is the inverse used when importing scraped recipes that only
// carry a minute count.
func ISODuration(minutes int) string {
	switch {
	case minutes <= 0:
		return ""
	case minutes < 60:
		return fmt.Sprintf("PT%dM", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("PT%dH", minutes/60)
	default:
		return fmt.Sprintf("PT%dH%dM", minutes/60, minutes%60)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
