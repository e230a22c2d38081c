package wal

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"typedkv/internal/types"
)

// ErrMalformedRecord is returned by DecodeRecord for a line that parses as
// JSON but does not describe a valid WAL record.
var ErrMalformedRecord = errors.New("wal: malformed record")

// Op is the mutation intent carried by a WAL record.
type Op string

const (
	OpSet   Op = "SET"
	OpDel   Op = "DEL"
	OpLPush Op = "LPUSH"
	OpRPush Op = "RPUSH"
	OpLPop  Op = "LPOP"
	OpRPop  Op = "RPOP"
	OpHSet  Op = "HSET"
	OpHDel  Op = "HDEL"
	OpSAdd  Op = "SADD"
	OpSRem  Op = "SREM"
	OpSPop  Op = "SPOP"
)

// Entry is the canonical, protocol-agnostic shape of a durable mutation
// intent — one entry produces exactly one WAL line. Value is nil for DEL;
// every other op carries the full resulting container (spec.md §3/§4.3).
type Entry struct {
	Operation Op
	Key       string
	Value     *types.TypedValue
}

type wireValue struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type wireRecord struct {
	Operation string     `json:"operation"`
	Key       string     `json:"key"`
	Value     *wireValue `json:"value,omitempty"`
}

// EncodeRecord serialises an Entry as a single JSON object terminated by a
// newline, per spec.md §3's record shape.
func EncodeRecord(e Entry) (string, error) {
	wr := wireRecord{Operation: string(e.Operation), Key: e.Key}
	if e.Value != nil {
		wv, err := toWireValue(*e.Value)
		if err != nil {
			return "", err
		}
		wr.Value = &wv
	}

	b, err := json.Marshal(wr)
	if err != nil {
		return "", fmt.Errorf("wal: encode record: %w", err)
	}
	return string(b) + "\n", nil
}

func toWireValue(v types.TypedValue) (wireValue, error) {
	switch v.Tag {
	case types.String:
		return wireValue{Type: string(types.String), Value: v.Str}, nil
	case types.List:
		return wireValue{Type: string(types.List), Value: v.List}, nil
	case types.Hash:
		return wireValue{Type: string(types.Hash), Value: v.Hash}, nil
	case types.Set:
		members := make([]string, 0, len(v.Set))
		for m := range v.Set {
			members = append(members, m)
		}
		return wireValue{Type: string(types.Set), Value: members}, nil
	default:
		return wireValue{}, fmt.Errorf("wal: unsupported tag %q", v.Tag)
	}
}

type wireRecordIn struct {
	Operation string          `json:"operation"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
}

// DecodeRecord parses a single log line back into an Entry. Legacy records
// whose "value" is a bare JSON string (no type envelope) are interpreted as
// STRING, matching the source's backward-compatibility behaviour (spec.md
// §4.2, §4.3's replay rules).
func DecodeRecord(line string) (Entry, error) {
	var wr wireRecordIn
	if err := json.Unmarshal([]byte(line), &wr); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if wr.Operation == "" || wr.Key == "" {
		return Entry{}, ErrMalformedRecord
	}

	e := Entry{Operation: Op(wr.Operation), Key: wr.Key}
	if len(wr.Value) > 0 && string(wr.Value) != "null" {
		tv, err := decodeValue(wr.Value)
		if err != nil {
			return Entry{}, err
		}
		e.Value = &tv
	}
	return e, nil
}

func decodeValue(raw json.RawMessage) (types.TypedValue, error) {
	var env struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Type != "" {
		return decodeTagged(types.Tag(env.Type), env.Value)
	}

	// No tag envelope: legacy record, treat payload as a bare STRING.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return types.NewString(s), nil
	}
	return types.TypedValue{}, ErrMalformedRecord
}

func decodeTagged(tag types.Tag, raw json.RawMessage) (types.TypedValue, error) {
	switch tag {
	case types.List:
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			return types.TypedValue{}, fmt.Errorf("%w: list payload: %v", ErrMalformedRecord, err)
		}
		return types.NewList(items), nil
	case types.Hash:
		var fields map[string]string
		if err := json.Unmarshal(raw, &fields); err != nil {
			return types.TypedValue{}, fmt.Errorf("%w: hash payload: %v", ErrMalformedRecord, err)
		}
		return types.NewHash(fields), nil
	case types.Set:
		var members []string
		if err := json.Unmarshal(raw, &members); err != nil {
			return types.TypedValue{}, fmt.Errorf("%w: set payload: %v", ErrMalformedRecord, err)
		}
		set := make(map[string]struct{}, len(members))
		for _, m := range members {
			set[m] = struct{}{}
		}
		return types.NewSet(set), nil
	case types.String:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return types.TypedValue{}, fmt.Errorf("%w: string payload: %v", ErrMalformedRecord, err)
		}
		return types.NewString(s), nil
	default:
		// Unknown tag: backward compatibility fallback to STRING (spec.md §4.2).
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return types.TypedValue{}, fmt.Errorf("%w: unknown tag %q: %v", ErrMalformedRecord, tag, err)
		}
		return types.NewString(s), nil
	}
}
