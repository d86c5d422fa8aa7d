package order

import (
	"fmt"
	"strings"

	"subcontract/internal/pkg/errs"
)

// Status is the lifecycle state of a subcontract order.
//
//	DRAFT ──> ISSUED ──> IN_PROGRESS ──> COMPLETED
//	  │         │             │
//	  └─────────┴─────────────┴──────> CANCELLED
//
// COMPLETED and CANCELLED are terminal. The transitions table below is the only
// place the lifecycle is defined; labels, badges and allowed actions derive from it.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Draft
	Issued
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Draft:      "DRAFT",
		Issued:     "ISSUED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is not a valid status
	return map[Status]string{
		Draft:      "DRAFT",
		Issued:     "ISSUED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

func getStatusLabels() map[Status]string {
	//nolint:exhaustive // Unknown has no label
	return map[Status]string{
		Draft:      "Draft",
		Issued:     "Issued",
		InProgress: "In progress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// transitions maps each status to the statuses it may move to.
// Terminal statuses map to nothing.
//
//nolint:gochecknoglobals // read-only lookup table
var transitions = map[Status][]Status{
	Draft:      {Issued, Cancelled},
	Issued:     {InProgress, Cancelled},
	InProgress: {Completed, Cancelled},
	Completed:  {},
	Cancelled:  {},
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Draft, Issued, InProgress, Completed, Cancelled}
}

// ParseStatus converts the persisted / wire name (e.g. "IN_PROGRESS") into a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getValidStatusStrings() {
		if name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Label is the human readable name shown next to an order.
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// Badge is the display colour of the status.
func (s Status) Badge() string {
	switch s {
	case Draft:
		return "gray"
	case Issued:
		return "blue"
	case InProgress:
		return "yellow"
	case Completed:
		return "green"
	case Cancelled:
		return "red"
	default:
		return "gray"
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// NextStatuses returns the statuses reachable in one step. The slice is a copy.
func (s Status) NextStatuses() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether to is in NextStatuses.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo returns the new status, or an *InvalidTransitionError if the
// lifecycle does not allow the move.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransition(to) {
		return Unknown, &InvalidTransitionError{From: s, To: to}
	}
	return to, nil
}
