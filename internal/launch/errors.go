package launch

import (
	"errors"
	"fmt"
)

// ErrCancelled means the user backed out of the WAD picker. It is not a
// failure; the caller exits cleanly without spawning anything.
var ErrCancelled = errors.New("selection cancelled")

type PathErrorReason string

const (
	ReasonBlank    PathErrorReason = "blank"
	ReasonNotFound PathErrorReason = "not found"
)

// PathError is one labeled resolution problem. All of them for an
// invocation are joined and reported together.
type PathError struct {
	Label  string
	Path   string
	Reason PathErrorReason
}

func (e *PathError) Error() string {
	if e.Reason == ReasonBlank {
		return fmt.Sprintf("%s: no path configured", e.Label)
	}
	return fmt.Sprintf("%s: %s: %s", e.Label, e.Path, e.Reason)
}

// SpawnError wraps an OS-level failure to start the engine after its
// path already validated. Kept distinct from PathError so the caller can
// exit with a different code.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
