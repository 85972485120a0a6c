package errors

import (
	"fmt"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Extensions register their own kinds
// with codes outside of this range.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	ErrMsg          = Register(4, "invalid message")
	ErrHuman        = Register(7, "coding error")
	ErrImmutable    = Register(8, "cannot be modified")
	ErrEmpty        = Register(9, "value is empty")
	ErrState        = Register(10, "invalid state")
	ErrType         = Register(11, "invalid type")
	ErrInput        = Register(14, "invalid input")
	ErrOverflow     = Register(16, "value overflow")
	ErrDatabase     = Register(17, "database")

	// ErrPanic marks a recovered panic. Its message is never sent to a
	// client outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every registered kind by code. Code 1 is reserved for
// errors that carry no code at all.
var registry = map[uint32]*Error{
	internalCode: {code: internalCode, desc: "internal"},
}

// Register creates a root error kind with a unique ABCI code. It panics when
// the code is taken, so call it only in package level declarations.
func Register(code uint32, desc string) *Error {
	if e, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d is already registered as %q", code, e.desc))
	}
	e := &Error{code: code, desc: desc}
	registry[code] = e
	return e
}

// Error is a root error kind. Errors returned at runtime wrap one of them,
// so that both Is and the ABCI code survive any number of Wrap calls.
type Error struct {
	code uint32
	desc string
}

func (e *Error) Error() string {
	return e.desc
}

// ABCICode returns the registered code.
func (e *Error) ABCICode() uint32 {
	return e.code
}

// Is reports whether err is of this kind. Wrapped errors and error groups
// are inspected. A nil kind only matches a nil error, typed nil included.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNil(err)
	}
	for err != nil {
		if err == error(e) {
			return true
		}
		if g, ok := err.(group); ok {
			for _, member := range g.Unpack() {
				if e.Is(member) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap annotates err with msg. A stack trace is recorded by the innermost
// wrap only. Wrapping nil returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if !hasStack(err) {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: msg, cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrapped struct {
	msg   string
	cause error
}

func (w *wrapped) Error() string {
	return w.msg + ": " + w.cause.Error()
}

func (w *wrapped) Cause() error {
	return w.cause
}

// Format prints the stack trace of the innermost wrap for %+v.
func (w *wrapped) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", w.msg, w.cause)
		return
	}
	io.WriteString(s, w.Error())
}

// Recover converts a panic into an ErrPanic stored in *err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

func hasStack(err error) bool {
	type tracer interface {
		StackTrace() errors.StackTrace
	}
	for {
		if _, ok := err.(tracer); ok {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
}

// isNil also catches typed nil pointers stored in an error interface.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
