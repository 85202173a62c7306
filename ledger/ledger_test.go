package ledger

import (
	"errors"
	"sync"
	"testing"
)

func TestCreditAndDebit(t *testing.T) {
	l := New(250)
	if l.Balance() != 250 {
		t.Fatalf("opening balance: expected 250, got %d", l.Balance())
	}

	bal, err := l.Credit(20, "recycled 2.0 kg of plastic")
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if bal != 270 {
		t.Fatalf("expected 270 after credit, got %d", bal)
	}

	bal, err = l.Debit(200, "redeemed reward r3")
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if bal != 70 {
		t.Fatalf("expected 70 after debit, got %d", bal)
	}
}

func TestDebitInsufficientLeavesBalanceUntouched(t *testing.T) {
	l := New(100)

	bal, err := l.Debit(150, "too expensive")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if bal != 100 || l.Balance() != 100 {
		t.Fatalf("balance changed on failed debit: %d", l.Balance())
	}
	// no audit entry for a rejected debit
	if len(l.Entries()) != 1 {
		t.Fatalf("expected only the opening entry, got %d", len(l.Entries()))
	}
}

func TestNegativeAmountsRejected(t *testing.T) {
	l := New(10)
	if _, err := l.Credit(-5, "bad"); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if _, err := l.Debit(-5, "bad"); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestConcurrentDebitsNeverGoNegative(t *testing.T) {
	l := New(100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Debit(10, "concurrent spend")
		}()
	}
	wg.Wait()

	if l.Balance() != 0 {
		t.Fatalf("expected exactly 10 debits to succeed, balance %d", l.Balance())
	}
	for _, e := range l.Entries() {
		if e.Balance < 0 {
			t.Fatalf("audit trail shows negative balance: %+v", e)
		}
	}
}

func TestEntriesAreAppendOnlyCopies(t *testing.T) {
	l := New(50)
	l.Credit(10, "bonus")

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	entries[0].Balance = -999

	if l.Entries()[0].Balance == -999 {
		t.Fatal("Entries returned internal slice, not a copy")
	}
}
