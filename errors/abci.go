package errors

import "fmt"

// SuccessABCICode is the code of a successful ABCI response.
const SuccessABCICode = 0

const (
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// ABCIInfo returns the code and the log of an ABCI response reporting err.
//
// Errors without a code are internal. Their message, like the one of a
// recovered panic, is replaced by a generic one unless debug is set. In debug
// mode the log carries the stack trace as well.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessABCICode, ""
	}
	code := codeOf(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalCode, ErrPanic.Is(err):
		return code, internalLog
	default:
		return code, err.Error()
	}
}

// codeOf returns the code of the first error in the chain that has one.
func codeOf(err error) uint32 {
	type coder interface {
		ABCICode() uint32
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalCode
		}
		err = c.Cause()
	}
}

// IsInternal returns true if err carries no registered code.
func IsInternal(err error) bool {
	return !isNil(err) && codeOf(err) == internalCode
}
