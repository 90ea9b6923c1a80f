package platform

import "fmt"

// ExitCode is the process outcome of a run.
type ExitCode int

const (
	// Success means the run finished cleanly.
	Success ExitCode = 0
	// UnableToRun means the grammar, parse or activation failed, or no
	// application was requested.
	UnableToRun ExitCode = 1
	// FatalError means a runtime failure escaped the loop.
	FatalError ExitCode = 2
	// HelpShown means help was requested and printed.
	HelpShown ExitCode = 3
)

func (c ExitCode) String() string {
	switch c {
	case Success:
		return "success"
	case UnableToRun:
		return "unable-to-run"
	case FatalError:
		return "fatal-error"
	case HelpShown:
		return "help-shown"
	default:
		return fmt.Sprintf("ExitCode(%d)", int(c))
	}
}

// State is the lifecycle state of the platform.
type State int

const (
	Idle State = iota
	AwaitingApp
	Running
	ErrorRecovery
	Terminating
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingApp:
		return "awaiting-app"
	case Running:
		return "running"
	case ErrorRecovery:
		return "error-recovery"
	case Terminating:
		return "terminating"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PanicError carries a panic recovered during a loop iteration.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
