package btree

import "fmt"

// InvalidArgumentError reports a precondition violation raised directly
// to the caller: an invalid degree at construction, or an inverted range
// in a range lookup.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("btree: invalid argument: %s", e.Msg)
}
