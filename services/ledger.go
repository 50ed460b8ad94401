package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guaravita-backend/database"
	"guaravita-backend/models"

	"github.com/google/uuid"
)

var (
	ErrEmptyName               = errors.New("debtor name must not be empty")
	ErrDebtorNotFound          = errors.New("debtor not found")
	ErrRequestNotFound         = errors.New("payment request not found")
	ErrRequestAlreadyProcessed = errors.New("payment request already processed")
)

// Ledger owns the debt-ledger rules: amounts never go negative, a
// request leaves pending exactly once, and a debtor never leaves
// orphaned requests behind. The gateway only guarantees what a single
// statement can; everything multi-step runs through Transact.
type Ledger struct {
	store database.Store
}

func NewLedger(store database.Store) *Ledger {
	return &Ledger{store: store}
}

// Snapshot returns the full ledger state, sorted per the read contract.
func (l *Ledger) Snapshot(ctx context.Context) (models.Snapshot, error) {
	debtors, err := l.store.ListDebtors(ctx)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("list debtors: %w", err)
	}
	requests, err := l.store.ListRequests(ctx)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("list requests: %w", err)
	}
	return models.Snapshot{Debtors: debtors, Requests: requests}, nil
}

// CreateDebtor inserts a new debtor with a zero balance.
func (l *Ledger) CreateDebtor(ctx context.Context, name string) (*models.Debtor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	debtor := &models.Debtor{
		Name:        name,
		Amount:      0,
		Hidden:      false,
		LastUpdated: time.Now().UTC(),
	}
	if err := l.store.CreateDebtor(ctx, debtor); err != nil {
		return nil, fmt.Errorf("create debtor: %w", err)
	}
	return debtor, nil
}

// AdjustAmount applies amount = max(0, amount+delta). The clamp lives in
// the store's single-statement update, so concurrent adjustments cannot
// lose a delta.
func (l *Ledger) AdjustAmount(ctx context.Context, debtorID uuid.UUID, delta int) error {
	ok, err := l.store.AddToAmount(ctx, debtorID, delta)
	if err != nil {
		return fmt.Errorf("adjust amount: %w", err)
	}
	if !ok {
		return ErrDebtorNotFound
	}
	return nil
}

// ToggleVisibility flips the hidden flag. The flip happens store-side,
// so a stale read of the current flag cannot un-hide a debtor someone
// else just hid. Does not touch last_updated.
func (l *Ledger) ToggleVisibility(ctx context.Context, debtorID uuid.UUID) error {
	ok, err := l.store.ToggleHidden(ctx, debtorID)
	if err != nil {
		return fmt.Errorf("toggle visibility: %w", err)
	}
	if !ok {
		return ErrDebtorNotFound
	}
	return nil
}

// RemoveDebtor deletes a debtor and every request referencing it.
// Requests go first: if their cleanup fails the debtor must survive,
// never the other way around.
func (l *Ledger) RemoveDebtor(ctx context.Context, debtorID uuid.UUID) error {
	err := l.store.Transact(ctx, func(tx database.Store) error {
		if _, err := tx.GetDebtor(ctx, debtorID); err != nil {
			return err
		}
		if err := tx.DeleteRequestsByDebtor(ctx, debtorID); err != nil {
			return fmt.Errorf("delete requests: %w", err)
		}
		if err := tx.DeleteDebtor(ctx, debtorID); err != nil {
			return fmt.Errorf("delete debtor: %w", err)
		}
		return nil
	})
	if errors.Is(err, database.ErrNotFound) {
		return ErrDebtorNotFound
	}
	if err != nil {
		return fmt.Errorf("remove debtor: %w", err)
	}
	return nil
}

// CreateRequest opens a pending payment request, snapshotting the
// debtor's name as it reads right now. Multiple pending requests per
// debtor are allowed.
func (l *Ledger) CreateRequest(ctx context.Context, debtorID uuid.UUID) (*models.PaymentRequest, error) {
	debtor, err := l.store.GetDebtor(ctx, debtorID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrDebtorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load debtor: %w", err)
	}

	request := &models.PaymentRequest{
		DebtorID:   debtor.ID,
		DebtorName: debtor.Name,
		Status:     models.RequestPending,
		Timestamp:  time.Now().UTC(),
	}
	if err := l.store.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return request, nil
}

// ProcessRequest adjudicates a pending request. Approval decrements the
// debtor's amount by one (clamped at zero); rejection changes nothing
// but the status. The status transition is a conditional write on
// pending and runs in the same transaction as the decrement, so a
// replay can neither flip a terminal request nor decrement twice.
func (l *Ledger) ProcessRequest(ctx context.Context, requestID uuid.UUID, approved bool) error {
	status := models.RequestRejected
	if approved {
		status = models.RequestApproved
	}

	return l.store.Transact(ctx, func(tx database.Store) error {
		request, err := tx.GetRequest(ctx, requestID)
		if errors.Is(err, database.ErrNotFound) {
			return ErrRequestNotFound
		}
		if err != nil {
			return fmt.Errorf("load request: %w", err)
		}

		applied, err := tx.MarkRequest(ctx, requestID, status)
		if err != nil {
			return fmt.Errorf("mark request: %w", err)
		}
		if !applied {
			return ErrRequestAlreadyProcessed
		}

		if approved {
			ok, err := tx.AddToAmount(ctx, request.DebtorID, -1)
			if err != nil {
				return fmt.Errorf("decrement amount: %w", err)
			}
			if !ok {
				return ErrDebtorNotFound
			}
		}
		return nil
	})
}
