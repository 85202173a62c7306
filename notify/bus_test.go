package notify

import (
	"testing"
	"time"

	"needwise/models"
)

func TestBusAutoExpiry(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Stop()

	n := bus.AddWithDuration("u1", models.NotifyInfo, "short lived", 30)
	if len(bus.List("u1")) != 1 {
		t.Fatal("expected one active notification")
	}

	deadline := time.Now().Add(1 * time.Second)
	for time.Now().Before(deadline) {
		if len(bus.List("u1")) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("notification %s never expired", n.ID)
}

func TestBusRemoveIdempotent(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Stop()

	n := bus.Add("u1", models.NotifySuccess, "done")
	if !bus.Remove(n.ID) {
		t.Fatal("first remove should report true")
	}
	if bus.Remove(n.ID) {
		t.Fatal("second remove should be a no-op")
	}
	if bus.Remove("no-such-id") {
		t.Fatal("removing an unknown id should be a no-op")
	}
}

func TestBusArrivalOrder(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Stop()

	first := bus.AddWithDuration("u1", models.NotifyInfo, "first", 0)
	second := bus.AddWithDuration("u1", models.NotifyWarning, "second", 0)
	third := bus.AddWithDuration("u1", models.NotifyError, "third", 0)

	got := bus.List("u1")
	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	want := []string{first.ID, second.ID, third.ID}
	for i, n := range got {
		if n.ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], n.ID)
		}
	}

	bus.Remove(second.ID)
	got = bus.List("u1")
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != third.ID {
		t.Fatal("order not preserved after removing the middle entry")
	}
}

func TestBusPersistentUntilDismissed(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Stop()

	n := bus.AddWithDuration("u1", models.NotifyInfo, "sticky", 0)
	time.Sleep(50 * time.Millisecond)
	if len(bus.List("u1")) != 1 {
		t.Fatal("zero-duration notification should persist")
	}
	bus.Remove(n.ID)
	if len(bus.List("u1")) != 0 {
		t.Fatal("notification should be gone after dismissal")
	}
}

func TestBusPerUserIsolation(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Stop()

	bus.AddWithDuration("u1", models.NotifyInfo, "for u1", 0)
	bus.AddWithDuration("u2", models.NotifyInfo, "for u2", 0)

	if len(bus.List("u1")) != 1 || len(bus.List("u2")) != 1 {
		t.Fatal("each user should only see their own notifications")
	}
}
