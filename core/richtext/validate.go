package richtext

import (
	"fmt"
)

// RangeError describes an entity that does not fit its text.
type RangeError struct {
	Index  int
	Entity Entity
	Len    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("entities[%d] (%s) range [%d, %d) outside text of length %d",
		e.Index, e.Entity.Type, e.Entity.Offset, e.Entity.End(), e.Len)
}

// Validate reports every entity whose range is not within [0, Len()].
// No operation in this package calls it: entities are accepted as given,
// and deciding what to do with the result is left to the caller.
func (t *Text) Validate() []error {
	if t == nil {
		return nil
	}
	var errs []error
	n := t.Len()
	for i, e := range t.entities {
		if e.Offset < 0 || e.Length < 0 || e.End() > n {
			errs = append(errs, &RangeError{Index: i, Entity: e.Clone(), Len: n})
		}
	}
	return errs
}
