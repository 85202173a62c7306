package ledger

import (
	"errors"
	"sync"
	"time"

	"needwise/models"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNegativeAmount      = errors.New("amount must be non-negative")
)

// Ledger holds one user's eco-points balance plus an append-only audit
// trail. The check-and-debit pair runs under a single lock, so the balance
// can never be observed or left negative. Callers may still pre-check
// Balance() to disable a button, but that check is advisory only.
type Ledger struct {
	mu      sync.Mutex
	balance int
	entries []models.LedgerEntry
}

func New(opening int) *Ledger {
	l := &Ledger{}
	if opening > 0 {
		l.balance = opening
		l.entries = append(l.entries, models.LedgerEntry{
			Delta:     opening,
			Balance:   opening,
			Reason:    "opening balance",
			Timestamp: time.Now(),
		})
	}
	return l
}

func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Credit adds amount to the balance and records an audit entry.
func (l *Ledger) Credit(amount int, reason string) (int, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance += amount
	l.entries = append(l.entries, models.LedgerEntry{
		Delta:     amount,
		Balance:   l.balance,
		Reason:    reason,
		Timestamp: time.Now(),
	})
	return l.balance, nil
}

// Debit subtracts amount, failing with ErrInsufficientBalance when the
// balance does not cover it. Check and subtraction happen atomically.
func (l *Ledger) Debit(amount int, reason string) (int, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if amount > l.balance {
		return l.balance, ErrInsufficientBalance
	}
	l.balance -= amount
	l.entries = append(l.entries, models.LedgerEntry{
		Delta:     -amount,
		Balance:   l.balance,
		Reason:    reason,
		Timestamp: time.Now(),
	})
	return l.balance, nil
}

// Entries returns a copy of the audit trail, oldest first.
func (l *Ledger) Entries() []models.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
