package notify

import (
	"encoding/json"
	"testing"
	"time"

	"needwise/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "u1",
	}
	hub.Register(client)

	n := models.Notification{ID: "n1", UserID: "u1", Type: models.NotifyInfo, Message: "hello test"}
	hub.BroadcastAdd(n)

	select {
	case got := <-client.Send:
		var ev event
		if err := json.Unmarshal(got, &ev); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if ev.Action != "add" || ev.Notification == nil || ev.Notification.ID != "n1" {
			t.Fatalf("unexpected event: %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.Unregister(client)
}

func TestHubDismissEvent(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "u1",
	}
	hub.Register(client)

	hub.BroadcastDismiss("u1", "n1")

	select {
	case got := <-client.Send:
		var ev event
		if err := json.Unmarshal(got, &ev); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if ev.Action != "dismiss" || ev.ID != "n1" {
			t.Fatalf("unexpected event: %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestHubIsolatesUsers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	mine := &Client{Send: make(chan []byte, 10), UserID: "u1"}
	other := &Client{Send: make(chan []byte, 10), UserID: "u2"}
	hub.Register(mine)
	hub.Register(other)

	hub.BroadcastAdd(models.Notification{ID: "n1", UserID: "u1", Type: models.NotifyInfo, Message: "mine only"})

	select {
	case <-mine.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case got := <-other.Send:
		t.Fatalf("other user received %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
