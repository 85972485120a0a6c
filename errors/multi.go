package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error or only nil values are provided, nil is returned.
// If only a single non nil error is provided, it is returned unchanged.
func Append(errs ...error) error {
	var res []error
	for _, e := range errs {
		if isNil(e) {
			continue
		}
		// Flatten so that nested groups are easier to inspect.
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, e)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return multiErr(res)
	}
}

// multiErr represents a group of errors. It is never empty.
type multiErr []error

// group is implemented by errors that are a collection of other errors.
type group interface {
	Unpack() []error
}

var _ group = multiErr(nil)

// Unpack returns all errors clubbed together.
func (m multiErr) Unpack() []error {
	return m
}

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}

// ABCICode returns the code of the first error, consistent with a fail fast
// approach.
func (m multiErr) ABCICode() uint32 {
	return codeOf(m[0])
}
