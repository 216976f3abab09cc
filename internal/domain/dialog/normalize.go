package dialog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateSplitRe = regexp.MustCompile(`[/-]`)
	ampmRe      = regexp.MustCompile(`\s*(AM|PM)`)
)

func zfill2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}

// NormalizeDate turns today/tomorrow, MM/DD/YYYY and ISO dates into
// YYYY-MM-DD. Anything it cannot read is returned unchanged.
func NormalizeDate(s string, now time.Time) string {
	s = strings.TrimSpace(s)

	switch strings.ToLower(s) {
	case "today":
		return now.Format("2006-01-02")
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	}

	if isoDateRe.MatchString(s) {
		return s
	}

	if strings.ContainsAny(s, "/-") {
		parts := dateSplitRe.Split(s, -1)
		if len(parts) == 3 {
			if len(parts[2]) == 4 {
				month, day, year := parts[0], parts[1], parts[2]
				return fmt.Sprintf("%s-%s-%s", year, zfill2(month), zfill2(day))
			}
			day, month, year := parts[0], parts[1], parts[2]
			return fmt.Sprintf("%s-%s-%s", year, zfill2(month), zfill2(day))
		}
	}

	return s
}

// NormalizeTime converts "3pm", "3:30 PM", "15:30" and friends to 24h HH:MM.
func NormalizeTime(s string) (string, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	isPM := strings.Contains(raw, "PM")
	isAM := strings.Contains(raw, "AM")
	raw = strings.TrimSpace(ampmRe.ReplaceAllString(raw, ""))

	var hour, minute int
	var err error

	if h, m, ok := strings.Cut(raw, ":"); ok {
		if hour, err = strconv.Atoi(strings.TrimSpace(h)); err != nil {
			return "", fmt.Errorf("invalid hour %q", h)
		}
		if minute, err = strconv.Atoi(strings.TrimSpace(m)); err != nil {
			return "", fmt.Errorf("invalid minute %q", m)
		}
	} else {
		if hour, err = strconv.Atoi(raw); err != nil {
			return "", fmt.Errorf("invalid time %q", s)
		}
	}

	if isPM && hour != 12 {
		hour += 12
	} else if isAM && hour == 12 {
		hour = 0
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("time out of range %q", s)
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
