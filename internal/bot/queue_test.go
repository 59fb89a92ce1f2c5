package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/nikhilpatel/stockmitra/internal/market"
)

func TestQueueProcessesJobs(t *testing.T) {
	strategy := &stubStrategy{reply: "fine"}
	markets := &stubMarkets{snaps: []market.Snapshot{{Symbol: "TCS"}}}
	svc, _, sender := newTestService(strategy, markets)

	q := NewQueue(svc, 2, 8, 5*time.Second)
	q.Start()
	if !q.Enqueue("wa:q1", "english") {
		t.Fatal("enqueue rejected")
	}
	q.Stop() // drains in-flight jobs before returning

	if len(sender.sent) != 1 || !strings.Contains(sender.sent[0], "English") {
		t.Errorf("sent = %v, want the language confirmation", sender.sent)
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	svc, _, _ := newTestService(&stubStrategy{}, &stubMarkets{})

	// No workers started: the buffer is the only capacity.
	q := NewQueue(svc, 1, 1, time.Second)
	if !q.Enqueue("wa:q2", "TCS") {
		t.Fatal("first enqueue should fit the buffer")
	}
	if q.Enqueue("wa:q2", "INFY") {
		t.Error("second enqueue should be dropped, not block the webhook")
	}
}
