// Package types defines the tagged value carried by every key in the
// keyspace: TypedValue pairs a Tag (the value's shape) with a payload. The
// engine's typed operations never change a stored value's Tag; only SET
// replaces a key's value, whatever its Tag, with a new STRING.
package types

import "fmt"

// Tag identifies the shape of a TypedValue's payload.
type Tag string

const (
	String Tag = "string"
	List   Tag = "list"
	Hash   Tag = "hash"
	Set    Tag = "set"
	Int    Tag = "int"
	Float  Tag = "float"
)

// TypedValue is a discriminated union over the container shapes the engine
// understands. Exactly one of the payload fields is meaningful for a given
// Tag; operations switch on Tag rather than inspecting payloads directly.
type TypedValue struct {
	Tag Tag

	Str  string
	List []string
	Hash map[string]string
	Set  map[string]struct{}
}

// NewString builds a STRING-tagged value.
func NewString(s string) TypedValue {
	return TypedValue{Tag: String, Str: s}
}

// NewList builds a LIST-tagged value from an ordered slice. The slice is
// copied so callers may keep mutating their own buffer.
func NewList(items []string) TypedValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return TypedValue{Tag: List, List: cp}
}

// NewHash builds a HASH-tagged value from a field->value mapping.
func NewHash(fields map[string]string) TypedValue {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return TypedValue{Tag: Hash, Hash: cp}
}

// NewSet builds a SET-tagged value from a collection of members.
func NewSet(members map[string]struct{}) TypedValue {
	cp := make(map[string]struct{}, len(members))
	for m := range members {
		cp[m] = struct{}{}
	}
	return TypedValue{Tag: Set, Set: cp}
}

// Empty reports whether the value's container holds zero elements. Only
// meaningful for LIST/HASH/SET; callers use this to apply I4 (empty
// containers are removed from the keyspace).
func (v TypedValue) Empty() bool {
	switch v.Tag {
	case List:
		return len(v.List) == 0
	case Hash:
		return len(v.Hash) == 0
	case Set:
		return len(v.Set) == 0
	default:
		return false
	}
}

// Clone returns a deep copy so a caller holding a TypedValue cannot mutate
// the keyspace's copy out from under the engine's lock discipline.
func (v TypedValue) Clone() TypedValue {
	switch v.Tag {
	case List:
		return NewList(v.List)
	case Hash:
		return NewHash(v.Hash)
	case Set:
		return NewSet(v.Set)
	default:
		return v
	}
}

func (v TypedValue) String() string {
	return fmt.Sprintf("TypedValue{%s}", v.Tag)
}
