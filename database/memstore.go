package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"guaravita-backend/models"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests and local hacking. It mirrors
// the Postgres store's semantics: clamped amount updates, pending-only
// status transitions, rollback on transaction failure. The Fail* fields
// inject an error into the corresponding operation.
type MemStore struct {
	mu       sync.Mutex
	debtors  map[uuid.UUID]models.Debtor
	requests map[uuid.UUID]models.PaymentRequest

	FailCreateDebtor   error
	FailDeleteDebtor   error
	FailDeleteRequests error
	FailAddToAmount    error
	FailMarkRequest    error
}

func NewMemStore() *MemStore {
	return &MemStore{
		debtors:  make(map[uuid.UUID]models.Debtor),
		requests: make(map[uuid.UUID]models.PaymentRequest),
	}
}

func (s *MemStore) ListDebtors(ctx context.Context) ([]models.Debtor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	debtors := make([]models.Debtor, 0, len(s.debtors))
	for _, d := range s.debtors {
		debtors = append(debtors, d)
	}
	sort.Slice(debtors, func(i, j int) bool { return debtors[i].Name < debtors[j].Name })
	return debtors, nil
}

func (s *MemStore) ListRequests(ctx context.Context) ([]models.PaymentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests := make([]models.PaymentRequest, 0, len(s.requests))
	for _, r := range s.requests {
		requests = append(requests, r)
	}
	sort.SliceStable(requests, func(i, j int) bool { return requests[i].Timestamp.After(requests[j].Timestamp) })
	return requests, nil
}

func (s *MemStore) GetDebtor(ctx context.Context, id uuid.UUID) (*models.Debtor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.debtors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *MemStore) CreateDebtor(ctx context.Context, d *models.Debtor) error {
	if s.FailCreateDebtor != nil {
		return s.FailCreateDebtor
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	s.debtors[d.ID] = *d
	return nil
}

func (s *MemStore) AddToAmount(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	if s.FailAddToAmount != nil {
		return false, s.FailAddToAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.debtors[id]
	if !ok {
		return false, nil
	}
	d.Amount += delta
	if d.Amount < 0 {
		d.Amount = 0
	}
	d.LastUpdated = time.Now().UTC()
	s.debtors[id] = d
	return true, nil
}

func (s *MemStore) ToggleHidden(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.debtors[id]
	if !ok {
		return false, nil
	}
	d.Hidden = !d.Hidden
	s.debtors[id] = d
	return true, nil
}

func (s *MemStore) DeleteDebtor(ctx context.Context, id uuid.UUID) error {
	if s.FailDeleteDebtor != nil {
		return s.FailDeleteDebtor
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.debtors, id)
	return nil
}

func (s *MemStore) DeleteRequestsByDebtor(ctx context.Context, debtorID uuid.UUID) error {
	if s.FailDeleteRequests != nil {
		return s.FailDeleteRequests
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, r := range s.requests {
		if r.DebtorID == debtorID {
			delete(s.requests, id)
		}
	}
	return nil
}

func (s *MemStore) GetRequest(ctx context.Context, id uuid.UUID) (*models.PaymentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemStore) CreateRequest(ctx context.Context, r *models.PaymentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.requests[r.ID] = *r
	return nil
}

func (s *MemStore) MarkRequest(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	if s.FailMarkRequest != nil {
		return false, s.FailMarkRequest
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok || r.Status != models.RequestPending {
		return false, nil
	}
	r.Status = status
	s.requests[id] = r
	return true, nil
}

// Transact runs fn against a copy and commits the copy back only on
// success. Writes on the parent store made while fn runs are lost on
// commit; fine for tests, where transactions never interleave.
func (s *MemStore) Transact(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	clone := &MemStore{
		debtors:            make(map[uuid.UUID]models.Debtor, len(s.debtors)),
		requests:           make(map[uuid.UUID]models.PaymentRequest, len(s.requests)),
		FailCreateDebtor:   s.FailCreateDebtor,
		FailDeleteDebtor:   s.FailDeleteDebtor,
		FailDeleteRequests: s.FailDeleteRequests,
		FailAddToAmount:    s.FailAddToAmount,
		FailMarkRequest:    s.FailMarkRequest,
	}
	for id, d := range s.debtors {
		clone.debtors[id] = d
	}
	for id, r := range s.requests {
		clone.requests[id] = r
	}
	s.mu.Unlock()

	if err := fn(clone); err != nil {
		return err
	}

	s.mu.Lock()
	s.debtors = clone.debtors
	s.requests = clone.requests
	s.mu.Unlock()
	return nil
}
