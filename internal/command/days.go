package command

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DaysPerMonth is the conversion used for month-based plans.
const DaysPerMonth = 30

var (
	ErrMalformed   = errors.New("malformed day count")
	ErrMissingUnit = errors.New("missing day or month unit")
)

// Unit keywords are matched as substrings, so plurals are covered.
var (
	monthUnits = []string{"mes", "mês", "month"}
	dayUnits   = []string{"dia", "day"}
)

// ParseDayCount reads inputs like "30 dias" or "3 meses" into a number of
// days. Month units are checked before day units.
func ParseDayCount(input string) (int, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return 0, ErrEmptyInput
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 0, ErrMalformed
	}

	rest := strings.Join(fields[1:], " ")

	switch {
	case containsAny(rest, monthUnits):
		if n > math.MaxInt/DaysPerMonth {
			return 0, ErrMalformed
		}
		return n * DaysPerMonth, nil
	case containsAny(rest, dayUnits):
		return n, nil
	default:
		return 0, ErrMissingUnit
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
