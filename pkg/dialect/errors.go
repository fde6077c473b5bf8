package dialect

import "fmt"

// Error reports an inconsistent dialect configuration.
type Error struct {
	Dialect string
	Message string
}

func (e *Error) Error() string {
	if e.Dialect == "" {
		return fmt.Sprintf("dialect error: %s", e.Message)
	}
	return fmt.Sprintf("dialect error in %s: %s", e.Dialect, e.Message)
}
