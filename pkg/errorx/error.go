package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

// Is makes errors.Is match any errorx.Error having the same code.
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Code == e.Code
}

// CodeOf returns the code of err. Errors which are not errorx.Error are
// considered as Unknown.
func CodeOf(err error) Code {
	if err == nil {
		return 0
	}

	var e Error
	if errors.As(err, &e) {
		return e.Code
	}

	return Unknown.Code
}
