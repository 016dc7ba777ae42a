package srtdoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeCode is a start/end timestamp pair with millisecond precision.
// Start never exceeds End for parsed values.
type TimeCode struct {
	Start time.Duration
	End   time.Duration
}

var timeCodePattern = regexp.MustCompile(
	`^(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})$`,
)

// ParseTimeCode parses a "HH:MM:SS,mmm --> HH:MM:SS,mmm" line.
func ParseTimeCode(line string) (TimeCode, error) {
	match := timeCodePattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return TimeCode{}, fmt.Errorf("invalid timecode line %q", line)
	}
	start, err := parseTimestamp(match[1])
	if err != nil {
		return TimeCode{}, err
	}
	end, err := parseTimestamp(match[2])
	if err != nil {
		return TimeCode{}, err
	}
	if start > end {
		return TimeCode{}, fmt.Errorf("timecode start %s after end %s", match[1], match[2])
	}
	return TimeCode{Start: start, End: end}, nil
}

func parseTimestamp(value string) (time.Duration, error) {
	main, millis, ok := strings.Cut(value, ",")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(main, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	ms, errMS := strconv.Atoi(millis)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if minutes > 59 || seconds > 59 || ms > 999 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(ms)*time.Millisecond
	return total, nil
}

// Seconds returns the block duration in seconds.
func (tc TimeCode) Seconds() float64 {
	return tc.End.Seconds() - tc.Start.Seconds()
}

// String renders the timecode in SRT wire format.
func (tc TimeCode) String() string {
	return formatTimestamp(tc.Start) + " --> " + formatTimestamp(tc.End)
}

func formatTimestamp(d time.Duration) string {
	ms := d.Milliseconds()
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	seconds := (ms % 60_000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
