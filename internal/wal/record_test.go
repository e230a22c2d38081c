package wal

import (
	"testing"

	"typedkv/internal/types"
)

func TestEncodeDecodeRecord_String(t *testing.T) {
	v := types.NewString("bar")
	line, err := EncodeRecord(Entry{Operation: OpSet, Key: "foo", Value: &v})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeRecord(line)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Operation != OpSet || got.Key != "foo" {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if got.Value == nil || got.Value.Tag != types.String || got.Value.Str != "bar" {
		t.Fatalf("unexpected value: %+v", got.Value)
	}
}

func TestEncodeDecodeRecord_List(t *testing.T) {
	v := types.NewList([]string{"c", "b", "a"})
	line, err := EncodeRecord(Entry{Operation: OpLPush, Key: "L", Value: &v})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeRecord(line)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Value.Tag != types.List || len(got.Value.List) != 3 || got.Value.List[0] != "c" {
		t.Fatalf("unexpected list value: %+v", got.Value)
	}
}

func TestEncodeDecodeRecord_Set(t *testing.T) {
	v := types.NewSet(map[string]struct{}{"x": {}, "y": {}})
	line, err := EncodeRecord(Entry{Operation: OpSAdd, Key: "S", Value: &v})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeRecord(line)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Value.Tag != types.Set || len(got.Value.Set) != 2 {
		t.Fatalf("unexpected set value: %+v", got.Value)
	}
}

func TestDecodeRecord_Del_NoValue(t *testing.T) {
	got, err := DecodeRecord(`{"operation":"DEL","key":"foo"}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Operation != OpDel || got.Value != nil {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestDecodeRecord_LegacyStringValue(t *testing.T) {
	// Legacy record with no type envelope: value is a bare JSON string.
	got, err := DecodeRecord(`{"operation":"SET","key":"foo","value":"bar"}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Value == nil || got.Value.Tag != types.String || got.Value.Str != "bar" {
		t.Fatalf("expected legacy string fallback, got %+v", got.Value)
	}
}

func TestDecodeRecord_UnknownTagFallsBackToString(t *testing.T) {
	got, err := DecodeRecord(`{"operation":"SET","key":"foo","value":{"type":"weird","value":"bar"}}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Value.Tag != types.String || got.Value.Str != "bar" {
		t.Fatalf("expected STRING fallback for unknown tag, got %+v", got.Value)
	}
}

func TestDecodeRecord_Malformed(t *testing.T) {
	cases := []string{
		``,
		`not json`,
		`{"key":"foo"}`,
		`{"operation":"SET"}`,
	}
	for _, c := range cases {
		if _, err := DecodeRecord(c); err == nil {
			t.Fatalf("expected error decoding %q", c)
		}
	}
}
