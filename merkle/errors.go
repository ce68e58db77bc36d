package merkle

import "errors"

var (
	ErrBadHashEncoding   = errors.New("hash value has the wrong length or is not valid hex")
	ErrEmptyLeafSet      = errors.New("a merkle tree needs at least one leaf")
	ErrTotalTooLarge     = errors.New("leaf total exceeds the supported range")
	ErrCursorOutOfBounds = errors.New("traversal cursor would leave the tree shape")
	ErrMatchSelector     = errors.New("the matched selector must have one entry per leaf")
)

var (
	ErrInsufficientHashes = errors.New("the traversal needs more hashes than were supplied")
	ErrInsufficientFlags  = errors.New("the traversal needs more flag bits than were supplied")
	ErrUnconsumedData     = errors.New("wire data left over after the root resolved")
)
