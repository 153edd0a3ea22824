package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened. All
// represented by it errors are directly included into the result set as if
// they were given as a direct argument of this function call.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if u, ok := e.(unpacker); ok {
			res = append(res, u.Unpack()...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiError represents a group of errors. It is an error itself, because a
// collection of errors is an error state as well.
type multiError []error

var _ unpacker = (multiError)(nil)

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return "<nil>"
	case 1:
		return errs[0].Error()
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = fmt.Sprintf("\t* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(errs), strings.Join(msgs, "\n"))
}

// Unpack implements unpacker interface.
func (errs multiError) Unpack() []error {
	return errs
}

// Cause returns the first error of the collection. A multi error is
// considered to be an instance of each error it contains, but because of the
// interface restrictions only the first one can be returned.
func (errs multiError) Cause() error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
