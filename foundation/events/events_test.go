package events_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/events"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan events out to subscribers.")
	{
		evts := events.New()

		a := evts.Acquire("a")
		b := evts.Acquire("b")
		if evts.Acquire("a") != a {
			t.Fatalf("\t%s\tShould return the same channel for the same id.", failed)
		}
		t.Logf("\t%s\tShould return the same channel for the same id.", success)

		evts.Send("ledger: TryPush: ACCEPTED")
		for name, ch := range map[string]<-chan string{"a": a, "b": b} {
			if got := <-ch; got != "ledger: TryPush: ACCEPTED" {
				t.Fatalf("\t%s\tShould deliver the event to %s, got %q.", failed, name, got)
			}
		}
		t.Logf("\t%s\tShould deliver the event to every subscriber.", success)

		if err := evts.Release("a"); err != nil {
			t.Fatalf("\t%s\tShould be able to release a subscriber: %v", failed, err)
		}
		if _, open := <-a; open {
			t.Fatalf("\t%s\tShould close the released channel.", failed)
		}
		if err := evts.Release("a"); err == nil {
			t.Fatalf("\t%s\tShould fail to release an unknown subscriber.", failed)
		}
		t.Logf("\t%s\tShould release subscribers once.", success)

		for i := 0; i < 200; i++ {
			evts.Send("flood")
		}
		t.Logf("\t%s\tShould not block on a full subscriber.", success)

		evts.Shutdown()
		if evts.Subscribers() != 0 {
			t.Fatalf("\t%s\tShould remove every subscriber on shutdown.", failed)
		}
		t.Logf("\t%s\tShould remove every subscriber on shutdown.", success)
	}
}
