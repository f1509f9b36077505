package hexdump

import (
	"errors"
	"fmt"
)

var ErrRead = errors.New("could not read source")
var ErrWrite = errors.New("could not write sink")

// Kind tells which side of the dump failed.
type Kind int

const (
	KindRead Kind = iota
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned by Dump when the source or the sink fails. Offset is the
// label of the line that was being produced.
type Error struct {
	Kind   Kind
	Offset uint32
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("hexdump %s failed at offset %08x: %v", e.Kind, e.Offset, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches ErrRead and ErrWrite against the error kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRead:
		return e.Kind == KindRead
	case ErrWrite:
		return e.Kind == KindWrite
	}
	return false
}
