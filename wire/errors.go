package wire

import "errors"

var (
	ErrTruncatedInput     = errors.New("stream ended before the field was fully read")
	ErrNonCanonicalVarInt = errors.New("varint uses a longer form than the value requires")
	ErrValueTooLarge      = errors.New("declared count exceeds the supported range")
)
