package messages

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// TestLog_Property_AppendOrder checks that any sequence of Add calls is kept in order.
func TestLog_Property_AppendOrder(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		msgs := rapid.SliceOf(rapid.String()).Draw(rt, "msgs")

		l := New()
		for _, m := range msgs {
			l.Add(m)
		}

		got := l.Messages()
		if len(got) != len(msgs) {
			rt.Fatalf("expected %d entries, got %d", len(msgs), len(got))
		}
		for i, m := range msgs {
			if !stampRE.MatchString(got[i]) {
				rt.Fatalf("entry %d lacks time stamp: %q", i, got[i])
			}
			if !strings.HasSuffix(got[i], "] "+m) {
				rt.Fatalf("entry %d = %q, want suffix %q", i, got[i], m)
			}
		}
	})
}

// TestLog_Property_ClearEmpties checks Clear after any number of Adds, once or twice.
func TestLog_Property_ClearEmpties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 50).Draw(rt, "n")
		clears := rapid.IntRange(1, 3).Draw(rt, "clears")

		l := New()
		for i := 0; i < n; i++ {
			l.Add("entry")
		}
		for i := 0; i < clears; i++ {
			l.Clear()
		}

		if got := l.Messages(); len(got) != 0 {
			rt.Fatalf("expected empty log, got %v", got)
		}
	})
}
