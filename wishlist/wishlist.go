package wishlist

import (
	"errors"
	"fmt"
	"math"
	"time"

	"needwise/models"
)

// Cooldown bounds are enforced here in the domain, not just at the input
// layer. Hours outside [Min, Max] never reach the stored item.
const (
	DefaultCooldownHours = 24
	MinCooldownHours     = 1
	MaxCooldownHours     = 72
)

var (
	ErrCooldownOutOfRange   = errors.New("cooldown outside allowed range")
	ErrCooldownActive       = errors.New("cooldown still active")
	ErrReflectionIncomplete = errors.New("reflection questions not answered")
)

// NewItem creates a wishlist entry with both gates closed: the cooldown
// clock starts at now and the reflection questionnaire is unanswered.
func NewItem(productID string, cooldownHours int, now time.Time) (models.WishlistItem, error) {
	if cooldownHours < MinCooldownHours || cooldownHours > MaxCooldownHours {
		return models.WishlistItem{}, fmt.Errorf("%w: %d hours", ErrCooldownOutOfRange, cooldownHours)
	}
	return models.WishlistItem{
		ProductID:          productID,
		AddedAt:            now,
		CoolDownEnds:       now.Add(time.Duration(cooldownHours) * time.Hour),
		ReflectionAnswered: false,
	}, nil
}

// CanPurchase reports whether both gates have cleared: the cooldown has
// elapsed and the reflection questionnaire was completed. The two gates
// are independent; either may clear first.
func CanPurchase(item models.WishlistItem, now time.Time) bool {
	return !now.Before(item.CoolDownEnds) && item.ReflectionAnswered
}

// PurchaseGate returns nil when the item may move to the cart, otherwise
// the specific gate that blocks it. The cooldown gate is reported first
// so the user sees the wait time before the questionnaire nag.
func PurchaseGate(item models.WishlistItem, now time.Time) error {
	if now.Before(item.CoolDownEnds) {
		return ErrCooldownActive
	}
	if !item.ReflectionAnswered {
		return ErrReflectionIncomplete
	}
	return nil
}

// RemainingHours is the wait left on the cooldown, in whole hours rounded
// up. Zero once the cooldown has elapsed.
func RemainingHours(item models.WishlistItem, now time.Time) int {
	remaining := item.CoolDownEnds.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours()))
}

// ValidateCooldownEnd checks an edited end time against the same window
// the input layer offers: between one and seventy-two hours from now.
// Shortening and re-arming are both fine inside that window.
func ValidateCooldownEnd(newEnd, now time.Time) error {
	if newEnd.Before(now.Add(MinCooldownHours*time.Hour)) ||
		newEnd.After(now.Add(MaxCooldownHours*time.Hour)) {
		return ErrCooldownOutOfRange
	}
	return nil
}

// Questions is the mindful-purchase questionnaire. Static; answering it
// once flips the reflection gate for that item.
var Questions = []models.ReflectionQuestion{
	{ID: "q1", Question: "How often will you use this item?", Options: []string{"Daily", "Weekly", "Monthly", "Rarely"}},
	{ID: "q2", Question: "Do you already own something that serves the same purpose?", Options: []string{"Yes", "No", "Not sure"}},
	{ID: "q3", Question: "Is this purchase based on an immediate need or a long-term one?", Options: []string{"Immediate need", "Long-term need", "Want, not need"}},
	{ID: "q4", Question: "Would waiting 48 hours change your decision to buy this?", Options: []string{"Likely yes", "Likely no", "Not sure"}},
}

// KnownQuestion reports whether id belongs to the questionnaire.
func KnownQuestion(id string) bool {
	for _, q := range Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}
