package textspan_test

import (
	"testing"

	"github.com/yaklabco/mdstream/pkg/textspan"
)

func TestContent_String(t *testing.T) {
	t.Parallel()

	source := []byte("Fish & Chips")

	tests := []struct {
		name string
		c    textspan.Content
		want string
	}{
		{"bytes", textspan.Bytes(textspan.NewRange(0, 4)), "Fish"},
		{"literal", textspan.Literal("&"), "&"},
		{"sequence", textspan.Spans(textspan.Sequence{
			textspan.NewRange(0, 4),
			textspan.NewRange(5, 6),
		}), "Fish&"},
		{"zero value", textspan.Content{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.c.String(source); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContent_Kind(t *testing.T) {
	t.Parallel()

	if textspan.Bytes(textspan.NewRange(0, 1)).Kind() != textspan.ContentBytes {
		t.Error("Bytes payload kind mismatch")
	}
	if textspan.Literal("x").Kind() != textspan.ContentLiteral {
		t.Error("Literal payload kind mismatch")
	}
	if textspan.Spans(nil).Kind() != textspan.ContentSequence {
		t.Error("Spans payload kind mismatch")
	}
}

func TestContent_Shifted(t *testing.T) {
	t.Parallel()

	bytes := textspan.Bytes(textspan.NewRange(2, 5)).Shifted(10)
	if bytes.Span() != textspan.NewRange(12, 15) {
		t.Errorf("shifted span = %+v", bytes.Span())
	}

	seq := textspan.Spans(textspan.Sequence{textspan.NewRange(0, 3)}).Shifted(7)
	if got := seq.Sequence()[0]; got != textspan.NewRange(7, 10) {
		t.Errorf("shifted sequence range = %+v", got)
	}

	// Literals carry no ranges and pass through untouched.
	lit := textspan.Literal("abc").Shifted(99)
	if lit.String(nil) != "abc" {
		t.Error("literal changed by Shifted")
	}
}

func TestContent_IsEmpty(t *testing.T) {
	t.Parallel()

	if !textspan.Literal("").IsEmpty() {
		t.Error("empty literal should be empty")
	}
	if textspan.Literal("x").IsEmpty() {
		t.Error("non-empty literal should not be empty")
	}
	if !textspan.Bytes(textspan.NewRange(4, 4)).IsEmpty() {
		t.Error("empty span should be empty")
	}
	if !textspan.Spans(textspan.Sequence{textspan.NewRange(1, 1)}).IsEmpty() {
		t.Error("sequence of empty spans should be empty")
	}
}
