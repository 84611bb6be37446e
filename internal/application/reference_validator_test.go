package application

import (
	"encoding/json"
	"testing"
)

func TestDecodeTagRefs(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		kind ErrorKind
		ok   bool
	}{
		{"", 0, 0, true},
		{"null", 0, 0, true},
		{"[]", 0, 0, true},
		{`["a","b"]`, 2, 0, true},
		{`"a"`, 0, KindInvalidType, false},
		{`42`, 0, KindInvalidType, false},
		{`{"0":"a"}`, 0, KindInvalidType, false},
		{`["a", null]`, 0, KindInvalidReference, false},
		{`[["a"]]`, 0, KindInvalidReference, false},
	}
	for _, c := range cases {
		got, err := DecodeTagRefs(json.RawMessage(c.raw))
		if c.ok {
			if err != nil || len(got) != c.want {
				t.Fatalf("DecodeTagRefs(%s) = %v, %v", c.raw, got, err)
			}
			continue
		}
		assertKind(t, err, c.kind)
	}
}
