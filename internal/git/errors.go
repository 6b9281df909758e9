package git

import "fmt"

// InvalidBranchError indicates a branch name that fails validation. It is
// returned before any subprocess is spawned.
type InvalidBranchError struct {
	Branch string
}

func (e *InvalidBranchError) Error() string {
	return fmt.Sprintf("invalid branch name %q: must be non-empty and contain no whitespace", e.Branch)
}

// BranchNotFoundError indicates the requested branch does not exist on the
// remote, or its remote-tracking ref is absent locally.
type BranchNotFoundError struct {
	Branch string
	URL    string // remote URL when known, otherwise empty
}

func (e *BranchNotFoundError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("branch %q not found at %s", e.Branch, e.URL)
	}
	return fmt.Sprintf("branch %q not found", e.Branch)
}

// CommandError indicates a git subprocess exited nonzero for a reason other
// than a missing branch. Output holds the combined stdout+stderr.
type CommandError struct {
	Cmd    string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	out := e.Output
	if len(out) > 1024 {
		out = out[:1024] + "..."
	}
	return fmt.Sprintf("%s failed: %v\noutput: %s", e.Cmd, e.Err, out)
}

func (e *CommandError) Unwrap() error { return e.Err }

// TimeoutError indicates a git subprocess was killed because its deadline
// expired.
type TimeoutError struct {
	Cmd string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Cmd, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
