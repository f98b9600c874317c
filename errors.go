package symnmf

import (
	"context"
	"errors"

	"github.com/hupe1980/symnmf/errs"
)

// Error kinds, re-exported for callers that only import the root package.
var (
	ErrUsage           = errs.ErrUsage
	ErrInvalidArgument = errs.ErrInvalidArgument
	ErrIO              = errs.ErrIO
	ErrNumerical       = errs.ErrNumerical
)

// ErrorKind returns a stable label for the kind of err, suitable for log
// fields and metric labels: "usage", "invalid_argument", "io", "numerical",
// "canceled" or "internal".
func ErrorKind(err error) string {
	switch errs.KindOf(err) {
	case errs.ErrUsage:
		return "usage"
	case errs.ErrInvalidArgument:
		return "invalid_argument"
	case errs.ErrIO:
		return "io"
	case errs.ErrNumerical:
		return "numerical"
	}
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "internal"
}
