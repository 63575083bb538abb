package rowmut

import (
	"testing"
)

func TestHexHelpers(t *testing.T) {
	if got := hexstr(nil); got != "<nil>" {
		t.Fatalf("hexstr(nil) = %q, wanted <nil>", got)
	}
	if got := hexstr([]byte{}); got != "<empty>" {
		t.Fatalf("hexstr(empty) = %q, wanted <empty>", got)
	}
	if got := hexstr([]byte{0xAA, 0xBB}); got != "aabb" {
		t.Fatalf("hexstr = %q, wanted aabb", got)
	}
	if got := hexBytes([]byte{0xAA}).String(); got != "aa" {
		t.Fatalf("hexBytes.String = %q, wanted aa", got)
	}
}

func TestMustAndEnsure(t *testing.T) {
	if got := must(7, nil); got != 7 {
		t.Fatalf("must = %d, wanted 7", got)
	}
	ensure(nil)
	mustPanic(t, func() { must(0, errBoom) })
	mustPanic(t, func() { ensure(errBoom) })
}
