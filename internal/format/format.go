// Package format holds the display formatting shared by API responses:
// UGX prices, phone numbers and relative timestamps.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Price renders an amount in Ugandan shillings with thousands separators,
// e.g. 450000 → "UGX 450,000".
func Price(amount int64) string {
	return "UGX " + groupThousands(amount)
}

func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}

// PhoneNumber renders a full international Ugandan number for display,
// e.g. "256700123456" → "+256 700 123 456". Anything else passes through.
func PhoneNumber(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	clean := digits.String()

	if strings.HasPrefix(clean, "256") && len(clean) == 12 {
		return fmt.Sprintf("+%s %s %s %s", clean[:3], clean[3:6], clean[6:9], clean[9:])
	}
	return phone
}

// TimeAgo renders a timestamp relative to now: "Just now", "5 mins ago",
// "2 hrs ago", "3 days ago", then the date beyond a week.
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t).Seconds())

	switch {
	case seconds < 30:
		return "Just now"
	case seconds < 60:
		return fmt.Sprintf("%ds ago", seconds)
	case seconds < 3600:
		return plural(seconds/60, "min")
	case seconds < 86400:
		return plural(seconds/3600, "hr")
	case seconds < 604800:
		return plural(seconds/86400, "day")
	}

	if t.Year() != now.Year() {
		return t.Format("2 Jan 2006")
	}
	return t.Format("2 Jan")
}

func plural(n int64, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
