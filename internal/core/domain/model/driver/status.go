package driver

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents a driver's availability state.
//
//	available <──> offline        (self-service toggle, only while not busy)
//	available ──> busy            (dispatch engine, on assignment)
//	busy ──> available            (dispatch engine, on terminal transition)
//
// The busy state is owned exclusively by the dispatch engine: drivers enter
// it when assigned and leave it when their order reaches a terminal status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Available means the driver is on shift and free for assignment.
	Available

	// Busy means the driver is bound to exactly one in-flight order.
	Busy

	// Offline means the driver is off shift. Newly registered drivers
	// start offline.
	Offline
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Available: "available",
		Busy:      "busy",
		Offline:   "offline",
	}
}

// StatusFromString parses the wire representation of a driver status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid driver status", s))
}

// Validate checks that the Status is one of the defined states.
func (s Status) Validate() error {
	if s != Available && s != Busy && s != Offline {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid driver status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsSelfServiceTarget reports whether a driver may request this status for
// themselves. Busy is never a valid self-service target: it is entered and
// left only by the dispatch engine.
func (s Status) IsSelfServiceTarget() bool {
	return s == Available || s == Offline
}
