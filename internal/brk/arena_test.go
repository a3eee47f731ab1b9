package brk

import "testing"

func TestArena(t *testing.T) {
	t.Run("ZeroCapacityRejected", func(t *testing.T) {
		if _, err := New(0); err == nil {
			t.Fatal("expected error for zero capacity")
		}
	})

	t.Run("BreakStartsAtBase", func(t *testing.T) {
		a, err := New(4096)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer a.Close()

		if a.CurrentBreak() != a.base {
			t.Fatalf("initial break %d != base %d", a.CurrentBreak(), a.base)
		}
	})

	t.Run("ExtendBreakIsMonotonic", func(t *testing.T) {
		a, err := New(4096)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer a.Close()

		prev, err := a.ExtendBreak(64)
		if err != nil {
			t.Fatalf("ExtendBreak failed: %v", err)
		}
		if prev != a.base {
			t.Fatalf("expected previous break to equal base, got %d", prev)
		}
		if a.CurrentBreak() != a.base+64 {
			t.Fatalf("expected break at base+64, got %d", a.CurrentBreak())
		}

		prev2, err := a.ExtendBreak(64)
		if err != nil {
			t.Fatalf("second ExtendBreak failed: %v", err)
		}
		if prev2 != a.base+64 {
			t.Fatalf("expected second previous break at base+64, got %d", prev2)
		}
	})

	t.Run("ExtendBreakZeroIsNoOp", func(t *testing.T) {
		a, err := New(4096)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer a.Close()

		before := a.CurrentBreak()
		got, err := a.ExtendBreak(0)
		if err != nil {
			t.Fatalf("ExtendBreak(0) failed: %v", err)
		}
		if got != before || a.CurrentBreak() != before {
			t.Fatal("ExtendBreak(0) should not move the break")
		}
	})

	t.Run("ExhaustionReturnsErrorNotPanic", func(t *testing.T) {
		a, err := New(128)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer a.Close()

		if _, err := a.ExtendBreak(256); err == nil {
			t.Fatal("expected exhaustion error")
		}
		if a.CurrentBreak() != a.base {
			t.Fatal("failed ExtendBreak must not move the break")
		}
	})

	t.Run("CloseIsIdempotent", func(t *testing.T) {
		a, err := New(4096)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if err := a.Close(); err != nil {
			t.Fatalf("first Close failed: %v", err)
		}
		if err := a.Close(); err != nil {
			t.Fatalf("second Close failed: %v", err)
		}
	})
}
