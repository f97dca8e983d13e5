package catalog

import "fmt"

// OpenError reports a failure to open a catalog from a location. The GUI
// displays it via the error indicator and re-raises it to the caller.
type OpenError struct {
	Location string
	Err      error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open catalog %q: %v", e.Location, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
