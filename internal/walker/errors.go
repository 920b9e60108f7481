package walker

import "fmt"

// PreconditionError reports a root that cannot be collected at all: it is
// missing, not a directory, or cannot be listed.
type PreconditionError struct {
	Root   string
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Root, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Root, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// FilesystemAccessError reports a single entry below the root that could not
// be read. Op is "stat" or "readdir".
type FilesystemAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FilesystemAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemAccessError) Unwrap() error {
	return e.Err
}
