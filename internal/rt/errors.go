package rt

import (
	"errors"
	"fmt"
)

// Code identifies the class of a runtime failure.
type Code int

// Stable codes - do not change values.
const (
	CodeDimensionMismatch Code = 1001 // RT1001: vector operands of different size
	CodeTypeMismatch      Code = 1002 // RT1002: operand of the wrong kind
	CodeDomain            Code = 1003 // RT1003: argument outside the function's domain
	CodeOutOfRange        Code = 1004 // RT1004: index or swizzle past the end
	CodeArity             Code = 1005 // RT1005: wrong number of arguments or components
	CodeInvalidSwizzle    Code = 1006 // RT1006: malformed swizzle selection
	CodeUnknownFunction   Code = 1007 // RT1007: name not in the catalog
)

// String returns the code as "RT1001".
func (c Code) String() string {
	return fmt.Sprintf("RT%d", c)
}

// Error is a failure raised by a runtime function at shader-execution time.
type Error struct {
	Code    Code
	Func    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Code, e.Func, e.Message)
}

func errorf(code Code, fn, format string, args ...any) *Error {
	return &Error{Code: code, Func: fn, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the runtime code from err, or 0 when err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// ErrDiscard is returned by the discard function; it ends the invocation
// without producing output.
var ErrDiscard = errors.New("fragment discarded")
