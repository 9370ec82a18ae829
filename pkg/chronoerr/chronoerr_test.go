package chronoerr

import (
	"fmt"
	"strings"
	"testing"
)

func TestIs_MatchesKind(t *testing.T) {
	err := Range("dayOfMonth", 31, 1, 30)
	if !Is(err, OutOfRange) {
		t.Fatal("expected OutOfRange")
	}
	if Is(err, Overflow) {
		t.Fatal("OutOfRange must not match Overflow")
	}
}

func TestIs_Wrapped(t *testing.T) {
	err := fmt.Errorf("assemble: %w", Overflowed("multiplication overflows a long: %d * %d", 3, 4))
	if !Is(err, Overflow) {
		t.Fatal("wrapped overflow not detected")
	}
	if KindOf(err) != Overflow {
		t.Fatalf("KindOf: got %v, want %v", KindOf(err), Overflow)
	}
}

func TestIs_ForeignError(t *testing.T) {
	if Is(fmt.Errorf("boom"), InvalidArgument) {
		t.Fatal("plain error must not match")
	}
	if KindOf(nil) != 0 {
		t.Fatal("KindOf(nil) should be 0")
	}
}

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"range", Range("dayOfMonth", 31, 1, 30), "value 31 for dayOfMonth must be in the range [1,30]"},
		{"range msg", RangeMsg("year", 0, "year zero is skipped"), "value 0 for year: year zero is skipped"},
		{"unsupported", UnsupportedField("months"), "unsupported operation: months"},
		{"overflow", Overflowed("too big"), "arithmetic overflow: too big"},
		{"illegal", Illegal("imprecise"), "illegal state: imprecise"},
		{"invalid", Invalid("nil zone"), "invalid argument: nil zone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); !strings.Contains(got, tt.want) {
				t.Fatalf("Error(): got %q, want substring %q", got, tt.want)
			}
		})
	}
}
