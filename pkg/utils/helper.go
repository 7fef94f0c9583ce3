package utils

import (
	"fmt"
	"strconv"
)

// ParseID converts a path segment into a positive id.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	if id < 1 {
		return 0, fmt.Errorf("invalid id %q: must be positive", value)
	}
	return id, nil
}

// RoundRating rounds to one decimal place. Exact binary ties go to even, so 4.25 gives 4.2.
func RoundRating(value float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 1, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}
