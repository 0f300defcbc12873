package smsparser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMoney renders an amount as a rupee string with Indian digit
// grouping ("₹12,34,567.50"). Nil and zero render as an em dash, matching
// how the capture UI shows missing amounts.
func FormatMoney(amount *float64) string {
	if amount == nil || *amount == 0 {
		return "—"
	}
	v := *amount
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	raw := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(raw, ".")
	grouped := groupIndian(intPart)
	if fracPart != "" {
		return fmt.Sprintf("%s₹%s.%s", sign, grouped, fracPart)
	}
	return fmt.Sprintf("%s₹%s", sign, grouped)
}

// groupIndian inserts en-IN style separators: the last three digits form one
// group, everything before that groups in twos.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// TimeAgo renders the age of a timestamp relative to now, in the coarse
// buckets the transaction list uses.
func TimeAgo(ts, now time.Time) string {
	seconds := int(now.Sub(ts).Seconds())
	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}
