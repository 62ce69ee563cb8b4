package model

import (
	"fmt"
	"slices"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

func (s Status) IsValid() bool {
	_, exists := validTransitions[s]

	return exists
}

func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(validTransitions[s], target)
}

// IsTerminal reports whether no transition leaves s. Unknown statuses are terminal.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// ReleasesProperty reports whether entering s can hand the property back to the market.
func (s Status) ReleasesProperty() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}

	return status, nil
}
