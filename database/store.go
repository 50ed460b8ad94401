package database

import (
	"context"
	"errors"

	"guaravita-backend/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned by single-row reads when the row does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence gateway the ledger operates through. It does
// not interpret ledger semantics beyond what a single statement can
// guarantee: AddToAmount clamps at zero, MarkRequest only fires while
// the request is still pending. Everything else is the caller's job.
//
// Implementations: the Postgres store returned by Connect, and MemStore
// for tests.
type Store interface {
	// ListDebtors returns all debtors ordered by name ascending.
	ListDebtors(ctx context.Context) ([]models.Debtor, error)
	// ListRequests returns all requests ordered by timestamp descending.
	ListRequests(ctx context.Context) ([]models.PaymentRequest, error)

	GetDebtor(ctx context.Context, id uuid.UUID) (*models.Debtor, error)
	CreateDebtor(ctx context.Context, d *models.Debtor) error
	// AddToAmount applies amount = max(0, amount+delta) and bumps
	// last_updated in one statement. Returns false if the debtor does
	// not exist.
	AddToAmount(ctx context.Context, id uuid.UUID, delta int) (bool, error)
	// ToggleHidden flips the hidden flag in one statement, leaving
	// last_updated untouched. Returns false if the debtor does not exist.
	ToggleHidden(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteDebtor(ctx context.Context, id uuid.UUID) error
	DeleteRequestsByDebtor(ctx context.Context, debtorID uuid.UUID) error

	GetRequest(ctx context.Context, id uuid.UUID) (*models.PaymentRequest, error)
	CreateRequest(ctx context.Context, r *models.PaymentRequest) error
	// MarkRequest sets the status of a request only if it is still
	// pending. Returns false when the request is missing or already
	// terminal, so a second approval can never fire twice.
	MarkRequest(ctx context.Context, id uuid.UUID, status string) (bool, error)

	// Transact runs fn against a transactional view of the store; an
	// error from fn rolls every write back.
	Transact(ctx context.Context, fn func(Store) error) error
}
