package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field returns err annotated as the error of the named model field, or nil
// if err is nil. Nested fields use dot notation and list elements their
// index, for example Owned.DNAs.2.
func Field(name string, err error, desc string) error {
	if isNil(err) {
		return nil
	}
	if !hasStack(err) {
		err = errors.WithStack(err)
	}
	return &fieldError{name: name, desc: desc, cause: err}
}

// AppendField adds the error of the named field, if there is one, to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	name  string
	desc  string
	cause error
}

func (f *fieldError) Error() string {
	if f.desc == "" {
		return fmt.Sprintf("field %q: %s", f.name, f.cause)
	}
	return fmt.Sprintf("field %q: %s: %s", f.name, f.desc, f.cause)
}

func (f *fieldError) Cause() error {
	return f.cause
}
