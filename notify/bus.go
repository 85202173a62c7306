package notify

import (
	"sync"
	"time"

	"needwise/models"

	"github.com/google/uuid"
)

// DefaultDurationMs is how long a notification stays up when the caller
// does not say otherwise.
const DefaultDurationMs = 5000

// Bus keeps each user's notifications in arrival order and expires them on
// their own timers. Remove is idempotent: the expiry timer and a manual
// dismissal may race, and whichever loses is a no-op. A notification with
// duration 0 persists until dismissed.
type Bus struct {
	mu      sync.Mutex
	entries map[string]models.Notification
	order   map[string][]string // userID -> notification ids, arrival order
	timers  map[string]*time.Timer
	hub     *Hub // optional live push, may be nil
	stopped bool
}

func NewBus(hub *Hub) *Bus {
	return &Bus{
		entries: make(map[string]models.Notification),
		order:   make(map[string][]string),
		timers:  make(map[string]*time.Timer),
		hub:     hub,
	}
}

// Add inserts a notification with the default duration.
func (b *Bus) Add(userID string, typ models.NotificationType, message string) models.Notification {
	return b.AddWithDuration(userID, typ, message, DefaultDurationMs)
}

// AddWithDuration inserts a notification and schedules its removal after
// durationMs, unless durationMs is zero.
func (b *Bus) AddWithDuration(userID string, typ models.NotificationType, message string, durationMs int) models.Notification {
	n := models.Notification{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       typ,
		Message:    message,
		DurationMs: durationMs,
		CreatedAt:  time.Now(),
	}

	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return n
	}
	b.entries[n.ID] = n
	b.order[userID] = append(b.order[userID], n.ID)
	if durationMs > 0 {
		id := n.ID
		b.timers[id] = time.AfterFunc(time.Duration(durationMs)*time.Millisecond, func() {
			b.Remove(id)
		})
	}
	b.mu.Unlock()

	b.hub.BroadcastAdd(n)
	return n
}

// Remove deletes a notification and cancels its timer. Removing an id
// that is already gone is a no-op.
func (b *Bus) Remove(id string) bool {
	b.mu.Lock()
	n, ok := b.entries[id]
	if !ok {
		b.mu.Unlock()
		return false
	}
	delete(b.entries, id)
	ids := b.order[n.UserID]
	for i, candidate := range ids {
		if candidate == id {
			b.order[n.UserID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if t, ok := b.timers[id]; ok {
		t.Stop()
		delete(b.timers, id)
	}
	b.mu.Unlock()

	b.hub.BroadcastDismiss(n.UserID, id)
	return true
}

// List returns the user's active notifications in arrival order.
func (b *Bus) List(userID string) []models.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := b.order[userID]
	out := make([]models.Notification, 0, len(ids))
	for _, id := range ids {
		if n, ok := b.entries[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Stop cancels every pending expiry timer. Called once at shutdown;
// calling it again is safe.
func (b *Bus) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
}
