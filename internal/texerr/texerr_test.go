package texerr

import (
	"errors"
	"testing"
)

func TestError(t *testing.T) {
	t.Run("MessageTakesPrecedence", func(t *testing.T) {
		e := New(InvalidDataInImage, "bad header")
		if e.Error() != "bad header" {
			t.Errorf("got %q, want %q", e.Error(), "bad header")
		}
	})

	t.Run("FallsBackToKindString", func(t *testing.T) {
		e := New(UnsupportedFeature, "")
		if e.Error() != "UnsupportedFeature" {
			t.Errorf("got %q, want %q", e.Error(), "UnsupportedFeature")
		}
	})
}

func TestWrap(t *testing.T) {
	t.Run("PreservesCauseForUnwrap", func(t *testing.T) {
		cause := errors.New("short read")
		wrapped := Wrap(NotEnoughData, "read header", cause)
		if !errors.Is(wrapped, cause) {
			t.Error("expected errors.Is to find wrapped cause")
		}
		want := "read header: short read"
		if wrapped.Error() != want {
			t.Errorf("got %q, want %q", wrapped.Error(), want)
		}
	})

	t.Run("NilCauseBehavesLikeNew", func(t *testing.T) {
		wrapped := Wrap(NotEnoughData, "read header", nil)
		if wrapped.Unwrap() != nil {
			t.Error("expected nil Unwrap for nil cause")
		}
	})
}

func TestKindOf(t *testing.T) {
	t.Run("ClassifiesTexErr", func(t *testing.T) {
		err := New(DimensionsTooLarge, "too big")
		if got := KindOf(err); got != DimensionsTooLarge {
			t.Errorf("got %v, want DimensionsTooLarge", got)
		}
	})

	t.Run("ClassifiesWrappedTexErr", func(t *testing.T) {
		inner := New(DimensionsTooLarge, "too big")
		outer := errorsWrapf(inner)
		if got := KindOf(outer); got != DimensionsTooLarge {
			t.Errorf("got %v, want DimensionsTooLarge through a non-texerr wrapper", got)
		}
	})

	t.Run("UnknownForForeignError", func(t *testing.T) {
		if got := KindOf(errors.New("plain")); got != Unknown {
			t.Errorf("got %v, want Unknown", got)
		}
	})
}

// errorsWrapf wraps err the way an ordinary fmt.Errorf("...: %w", err)
// call would, without importing fmt just for this one test helper.
func errorsWrapf(err error) error {
	return wrapErr{err}
}

type wrapErr struct{ err error }

func (w wrapErr) Error() string { return "context: " + w.err.Error() }
func (w wrapErr) Unwrap() error { return w.err }
