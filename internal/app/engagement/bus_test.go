package engagement_test

import (
	"testing"
	"time"

	"github.com/fitquest-app/fitquest/internal/app/engagement"
	"github.com/fitquest-app/fitquest/internal/domain"
)

// recorder collects received events.
type recorder struct {
	events []domain.Event
}

func (r *recorder) HandleEvent(ev domain.Event) {
	r.events = append(r.events, ev)
}

func unlockEvent(id string) domain.Event {
	return domain.Event{
		Type:        domain.EventUnlocked,
		Achievement: &domain.AchievementDef{ID: id},
		At:          time.Now(),
	}
}

func TestBus_TwoSubscribersOneEvent(t *testing.T) {
	bus := engagement.NewBus()
	a, b := &recorder{}, &recorder{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(unlockEvent("nutrition_bronze"))

	for _, r := range []*recorder{a, b} {
		if len(r.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(r.events))
		}
		if r.events[0].Achievement.ID != "nutrition_bronze" {
			t.Errorf("wrong achievement id: %s", r.events[0].Achievement.ID)
		}
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := engagement.NewBus()
	a, b := &recorder{}, &recorder{}
	bus.Subscribe(a)
	bus.Subscribe(b)
	bus.Unsubscribe(a)

	bus.Publish(unlockEvent("exercise_bronze"))

	if len(a.events) != 0 {
		t.Errorf("unsubscribed listener received %d events", len(a.events))
	}
	if len(b.events) != 1 {
		t.Errorf("remaining listener expected 1 event, got %d", len(b.events))
	}
}

func TestBus_DuplicateSubscribeNoOp(t *testing.T) {
	bus := engagement.NewBus()
	a := &recorder{}
	bus.Subscribe(a)
	bus.Subscribe(a) // no-op

	bus.Publish(unlockEvent("consistency_bronze"))

	if len(a.events) != 1 {
		t.Errorf("duplicate subscription should not double-deliver: got %d", len(a.events))
	}
}

func TestBus_UnknownUnsubscribeNoOp(t *testing.T) {
	bus := engagement.NewBus()
	bus.Unsubscribe(&recorder{}) // must not panic or error
}

// subscribingListener adds another listener mid-dispatch.
type subscribingListener struct {
	bus   *engagement.Bus
	child *recorder
}

func (s *subscribingListener) HandleEvent(ev domain.Event) {
	s.bus.Subscribe(s.child)
}

func TestBus_SnapshotAtDispatchStart(t *testing.T) {
	bus := engagement.NewBus()
	child := &recorder{}
	bus.Subscribe(&subscribingListener{bus: bus, child: child})

	bus.Publish(unlockEvent("milestone_bronze"))
	if len(child.events) != 0 {
		t.Error("listener added during dispatch must not receive the current event")
	}

	bus.Publish(unlockEvent("milestone_silver"))
	if len(child.events) != 1 {
		t.Errorf("listener should receive the next event, got %d", len(child.events))
	}
}

func TestQueue_DrainClears(t *testing.T) {
	q := engagement.NewQueue()
	q.HandleEvent(unlockEvent("a"))
	q.HandleEvent(unlockEvent("b"))

	if q.Len() != 2 {
		t.Fatalf("expected 2 buffered, got %d", q.Len())
	}

	events := q.Drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 drained, got %d", len(events))
	}
	if events[0].Achievement.ID != "a" {
		t.Error("drain should preserve arrival order")
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty after drain, got %d", q.Len())
	}
}
