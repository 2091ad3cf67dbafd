package blockfile

import "github.com/pkg/errors"

// ErrShortRead is returned when the underlying stream cannot supply the
// requested number of bytes or blocks.
var ErrShortRead = errors.New("blockfile: short read")
