package types

import "testing"

func TestEmpty(t *testing.T) {
	cases := []struct {
		name string
		v    TypedValue
		want bool
	}{
		{"empty list", NewList(nil), true},
		{"non-empty list", NewList([]string{"a"}), false},
		{"empty hash", NewHash(nil), true},
		{"non-empty hash", NewHash(map[string]string{"f": "v"}), false},
		{"empty set", NewSet(nil), true},
		{"non-empty set", NewSet(map[string]struct{}{"a": {}}), false},
		{"string is never empty", NewString(""), false},
	}

	for _, c := range cases {
		if got := c.v.Empty(); got != c.want {
			t.Errorf("%s: Empty() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestClone_Independence(t *testing.T) {
	orig := NewList([]string{"a", "b"})
	clone := orig.Clone()
	clone.List[0] = "z"
	if orig.List[0] != "a" {
		t.Fatalf("mutating clone affected original: %+v", orig)
	}

	h := NewHash(map[string]string{"f": "v"})
	hc := h.Clone()
	hc.Hash["f"] = "changed"
	if h.Hash["f"] != "v" {
		t.Fatalf("mutating hash clone affected original: %+v", h)
	}
}
