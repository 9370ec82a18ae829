package period

import (
	"strconv"
	"strings"

	"github.com/daviddao/chronology/pkg/chronoerr"
	"github.com/daviddao/chronology/pkg/safemath"
)

// designator ranks; units must appear in increasing rank.
const (
	rankYears = iota + 1
	rankMonths
	rankWeeks
	rankDays
	rankHours
	rankMinutes
	rankSeconds
)

// Parse reads the ISO-8601 form written by String, such as
// "P1Y2M3W4DT5H6M7.008S" or "PT-1.500S". Each number may carry its own
// sign. The result has the standard type.
func Parse(s string) (*Period, error) {
	rest, ok := strings.CutPrefix(s, "P")
	if !ok || rest == "" {
		return nil, chronoerr.Invalid("period %q: want ISO-8601 form PnYnMnWnDTnHnMnS", s)
	}
	var f Fields
	inTime := false
	last := 0
	for rest != "" {
		if rest[0] == 'T' {
			if inTime || len(rest) == 1 {
				return nil, chronoerr.Invalid("period %q: misplaced T", s)
			}
			inTime = true
			rest = rest[1:]
			continue
		}
		i := 0
		if rest[0] == '-' || rest[0] == '+' {
			i++
		}
		for i < len(rest) && (rest[i] >= '0' && rest[i] <= '9' || rest[i] == '.' || rest[i] == ',') {
			i++
		}
		if i == len(rest) {
			return nil, chronoerr.Invalid("period %q: number without designator", s)
		}
		num, rank := rest[:i], designatorRank(rest[i], inTime)
		rest = rest[i+1:]
		if rank == 0 {
			return nil, chronoerr.Invalid("period %q: unexpected designator", s)
		}
		if rank <= last {
			return nil, chronoerr.Invalid("period %q: designators out of order", s)
		}
		last = rank

		if rank == rankSeconds {
			if err := parseSeconds(num, &f); err != nil {
				return nil, chronoerr.Invalid("period %q: %v", s, err)
			}
			continue
		}
		n, err := parseInt(num)
		if err != nil {
			return nil, chronoerr.Invalid("period %q: %v", s, err)
		}
		switch rank {
		case rankYears:
			f.Years = n
		case rankMonths:
			f.Months = n
		case rankWeeks:
			f.Weeks = n
		case rankDays:
			f.Days = n
		case rankHours:
			f.Hours = n
		case rankMinutes:
			f.Minutes = n
		}
	}
	return New(f), nil
}

func designatorRank(c byte, inTime bool) int {
	if inTime {
		switch c {
		case 'H':
			return rankHours
		case 'M':
			return rankMinutes
		case 'S':
			return rankSeconds
		}
		return 0
	}
	switch c {
	case 'Y':
		return rankYears
	case 'M':
		return rankMonths
	case 'W':
		return rankWeeks
	case 'D':
		return rankDays
	}
	return 0
}

func parseInt(num string) (int, error) {
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, err
	}
	return safemath.ToInt32(n)
}

// parseSeconds splits "-1.500" into -1 seconds and -500 millis. The sign
// applies to both parts, so "-0.500" is -500 millis.
func parseSeconds(num string, f *Fields) error {
	whole, frac, hasFrac := strings.Cut(strings.ReplaceAll(num, ",", "."), ".")
	secs, err := parseInt(whole)
	if err != nil {
		return err
	}
	f.Seconds = secs
	if !hasFrac {
		return nil
	}
	if frac == "" || len(frac) > 3 || strings.ContainsAny(frac, "+-.") {
		return chronoerr.Invalid("fraction %q must have one to three digits", frac)
	}
	ms, err := strconv.Atoi(frac + strings.Repeat("0", 3-len(frac)))
	if err != nil {
		return err
	}
	if strings.HasPrefix(whole, "-") {
		ms = -ms
	}
	f.Millis = ms
	return nil
}
