package engine

import (
	"errors"
	"fmt"

	"typedkv/internal/types"
)

// ErrWrongType is the sentinel every WrongTypeError wraps, so callers can
// use errors.Is without caring about the offending key/tags.
var ErrWrongType = errors.New("WRONGTYPE")

// WrongTypeError reports that an operation's required tag does not match
// the tag already stored at a key (spec.md I3): the key is left untouched
// and no WAL record is written.
type WrongTypeError struct {
	Key  string
	Got  types.Tag
	Want types.Tag
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf(
		"WRONGTYPE Operation against a key holding the wrong kind of value (key=%q holds %s, expected %s)",
		e.Key, e.Got, e.Want,
	)
}

func (e *WrongTypeError) Unwrap() error { return ErrWrongType }

func wrongType(key string, got, want types.Tag) error {
	return &WrongTypeError{Key: key, Got: got, Want: want}
}
