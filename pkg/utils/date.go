package utils

import (
	"regexp"
	"strconv"
	"time"
)

var wibLocation = time.FixedZone("WIB", 7*60*60)

var etdNumbers = regexp.MustCompile(`\d+`)

func ConvertDateTimeToHumanReadableFormat(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(wibLocation).Format("02 January 2006, 15:04 WIB")
}

// ParseEstimatedDays reads courier estimates such as "2-3 day", "1 HARI" or
// "3" into a min/max day range. Unknown formats yield 0, 0.
func ParseEstimatedDays(etd string) (minDays, maxDays int) {
	matches := etdNumbers.FindAllString(etd, 2)
	if len(matches) == 0 {
		return 0, 0
	}

	minDays, _ = strconv.Atoi(matches[0])
	maxDays = minDays
	if len(matches) > 1 {
		maxDays, _ = strconv.Atoi(matches[1])
	}
	if maxDays < minDays {
		minDays, maxDays = maxDays, minDays
	}

	return minDays, maxDays
}
