package booking

import "errors"

var ErrIllegalTransition = errors.New("booking: illegal status transition")

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed" // declared by the schema, no operation enters it
	StatusAccepted  Status = "Accepted"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Transition is one permitted edge of the lifecycle.
type Transition struct {
	From Status
	To   Status
}

var (
	Accept   = Transition{From: StatusPending, To: StatusAccepted}
	Complete = Transition{From: StatusAccepted, To: StatusCompleted}
	Cancel   = Transition{From: StatusPending, To: StatusCancelled}
)

var transitions = []Transition{Accept, Complete, Cancel}

func InitialStatus() Status {
	return StatusPending
}

// CanTransition reports whether to may directly follow from.
func CanTransition(from, to Status) bool {
	for _, t := range transitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CountsAsEarning marks bookings included in an owner's earnings.
func CountsAsEarning(s Status) bool {
	return s == StatusAccepted || s == StatusCompleted
}
