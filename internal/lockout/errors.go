package lockout

import (
	"fmt"
	"time"
)

type LockedError struct {
	Until     time.Time
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked for %s", e.Remaining.Round(time.Second))
}

func NewLockedError(until time.Time, remaining time.Duration) *LockedError {
	return &LockedError{
		Until:     until,
		Remaining: remaining,
	}
}
