package compute

import "errors"

// Error kinds reported by the kernel entry points. All precondition checks
// run on the calling goroutine before any parallel work is issued; a non-nil
// error means no usable output was produced.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrDatasetEmpty        = errors.New("dataset empty")
	ErrColumnCountMismatch = errors.New("column count mismatch")
	ErrColumnSizeMismatch  = errors.New("column size mismatch")
	ErrUnsupportedType     = errors.New("unsupported element type")
	ErrInternal            = errors.New("internal execution failure")
)
