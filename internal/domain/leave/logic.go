package leave

import (
	"errors"
	"math"
	"time"
)

var errEndBeforeStart = errors.New("end date before start date")

// CalculateDays returns the inclusive day count between start and end.
func CalculateDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, errEndBeforeStart
	}
	return int(math.Floor(end.Sub(start).Hours()/24)) + 1, nil
}

func defaultDecisionText(approve bool) string {
	if approve {
		return "Request approved"
	}
	return "Request rejected"
}
