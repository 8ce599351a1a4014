package models

import (
	"errors"
	"fmt"
	"time"
)

// ChurnWindowDays is both the span at the end of the window in which churn happens
// and the minimum gap between a policy start and the window end
const ChurnWindowDays = 90

// ErrInvalidParams is returned when generation parameters cannot produce a dataset
var ErrInvalidParams = errors.New("invalid generation parameters")

// ObservationWindow bounds every generated date
type ObservationWindow struct {
	Start time.Time
	End   time.Time
}

// ChurnStart returns the earliest possible churn date
func (w ObservationWindow) ChurnStart() time.Time {
	return w.End.AddDate(0, 0, -ChurnWindowDays)
}

// LatestPolicyStart returns the last date a policy may begin
func (w ObservationWindow) LatestPolicyStart() time.Time {
	return w.End.AddDate(0, 0, -ChurnWindowDays)
}

// Window returns the observation window of the parameters
func (p GenerationParams) Window() ObservationWindow {
	return ObservationWindow{Start: p.StartDate, End: p.EndDate}
}

// Validate rejects parameters that cannot produce a consistent dataset
func (p GenerationParams) Validate() error {
	if p.Customers <= 0 {
		return fmt.Errorf("%w: customer count must be positive, got %d", ErrInvalidParams, p.Customers)
	}
	if p.ChurnRate < 0 || p.ChurnRate > 1 {
		return fmt.Errorf("%w: churn rate must be within [0, 1], got %v", ErrInvalidParams, p.ChurnRate)
	}
	if !p.StartDate.Before(p.EndDate) {
		return fmt.Errorf("%w: start date %s must be before end date %s",
			ErrInvalidParams, p.StartDate.Format(DateLayout), p.EndDate.Format(DateLayout))
	}
	if p.Window().LatestPolicyStart().Before(p.StartDate) {
		return fmt.Errorf("%w: window must span at least %d days", ErrInvalidParams, ChurnWindowDays)
	}
	return nil
}
