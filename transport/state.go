package transport

import "fmt"

type State int

const (
	Idle State = iota
	Connecting
	Open
	Closing
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Status is the lifecycle state of a Session.
// Code and Reason are only set once the connection is Closed.
type Status struct {
	State  State
	Code   int
	Reason string
}

func (s Status) String() string {
	if s.State != Closed {
		return s.State.String()
	}
	return fmt.Sprintf("closed(%d, %q)", s.Code, s.Reason)
}
