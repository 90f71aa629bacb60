package converter

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType   = errors.New("unsupported type")
	ErrUnresolvedTable   = errors.New("unresolved reward table")
	ErrMalformedObserved = errors.New("malformed observation target")
)

// ConversionWarning is a recoverable failure. The offending task or reward is
// left out of its quest and the message is reported to the caller.
type ConversionWarning struct {
	Message string
	Err     error
}

func (w *ConversionWarning) Error() string {
	return w.Message
}

func (w *ConversionWarning) Unwrap() error {
	return w.Err
}

func warn(err error, format string, args ...any) *ConversionWarning {
	return &ConversionWarning{Message: fmt.Sprintf(format, args...), Err: err}
}
