package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEstimatedDays(t *testing.T) {
	testCases := []struct {
		Etd string
		Min int
		Max int
	}{
		{Etd: "2-3 day", Min: 2, Max: 3},
		{Etd: "1 HARI", Min: 1, Max: 1},
		{Etd: "3", Min: 3, Max: 3},
		{Etd: "5 - 4", Min: 4, Max: 5},
		{Etd: "", Min: 0, Max: 0},
		{Etd: "same day", Min: 0, Max: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.Etd, func(t *testing.T) {
			minDays, maxDays := ParseEstimatedDays(tc.Etd)
			assert.Equal(t, tc.Min, minDays)
			assert.Equal(t, tc.Max, maxDays)
		})
	}
}

func TestConvertDateTimeToHumanReadableFormat(t *testing.T) {
	placed := time.Date(2024, time.March, 5, 3, 4, 0, 0, time.UTC)

	assert.Equal(t, "05 March 2024, 10:04 WIB", ConvertDateTimeToHumanReadableFormat(placed))
	assert.Equal(t, "", ConvertDateTimeToHumanReadableFormat(time.Time{}))
}
