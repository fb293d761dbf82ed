package settlement_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/bistro/internal/domain"
	"golang.org/x/text/currency"
)

type fakePayments struct {
	mu      sync.Mutex
	records []domain.PaymentRecord
	err     error
}

func (f *fakePayments) CreatePayment(_ context.Context, record domain.PaymentRecord) (domain.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return domain.PaymentRecord{}, f.err
	}

	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	f.records = append(f.records, record)

	return record, nil
}

func (f *fakePayments) GetPayment(_ context.Context, id uuid.UUID) (domain.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, record := range f.records {
		if record.ID == id {
			return record, nil
		}
	}
	return domain.PaymentRecord{}, domain.ErrNotFound
}

func (f *fakePayments) ListPayments(_ context.Context, ownerEmail string) ([]domain.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.PaymentRecord
	for _, record := range f.records {
		if record.OwnerEmail == ownerEmail {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakePayments) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeCarts struct {
	mu        sync.Mutex
	entries   map[uuid.UUID]domain.CartEntry
	deleteErr error
	// events records what happened in order, shared with the other fakes.
	events *[]string
}

func newFakeCarts(events *[]string) *fakeCarts {
	return &fakeCarts{entries: make(map[uuid.UUID]domain.CartEntry), events: events}
}

func (f *fakeCarts) add(email string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.entries[id] = domain.CartEntry{ID: id, OwnerEmail: email}
	return id
}

func (f *fakeCarts) GetCart(_ context.Context, ownerEmail string) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart := domain.Cart{OwnerEmail: ownerEmail}
	for _, entry := range f.entries {
		if entry.OwnerEmail == ownerEmail {
			cart.Entries = append(cart.Entries, entry)
		}
	}
	return cart, nil
}

func (f *fakeCarts) AddEntry(_ context.Context, entry domain.CartEntry) (domain.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry.ID = uuid.New()
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeCarts) DeleteEntry(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.entries[id]
	delete(f.entries, id)
	return ok, nil
}

func (f *fakeCarts) DeleteEntries(_ context.Context, ids []uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.events != nil {
		*f.events = append(*f.events, "delete")
	}
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}

	var deleted int64
	for _, id := range ids {
		if _, ok := f.entries[id]; ok {
			delete(f.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeCarts) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// recordingPayments wraps fakePayments to log the insert into the shared
// event sequence.
type recordingPayments struct {
	*fakePayments
	events *[]string
}

func (r recordingPayments) CreatePayment(ctx context.Context, record domain.PaymentRecord) (domain.PaymentRecord, error) {
	*r.events = append(*r.events, "insert")
	return r.fakePayments.CreatePayment(ctx, record)
}

type fakeGateway struct {
	mu      sync.Mutex
	amounts []int64
	units   []currency.Unit
	err     error
}

func (f *fakeGateway) CreateIntent(_ context.Context, amountMinor int64, unit currency.Unit) (domain.PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.amounts = append(f.amounts, amountMinor)
	f.units = append(f.units, unit)
	if f.err != nil {
		return domain.PaymentIntent{}, f.err
	}

	id := "pi_" + uuid.NewString()
	return domain.PaymentIntent{ID: id, ClientSecret: id + "_secret"}, nil
}

type fakeIdempotency struct {
	mu       sync.Mutex
	keys     map[string]bool
	released []string
	err      error
}

func newFakeIdempotency() *fakeIdempotency {
	return &fakeIdempotency{keys: make(map[string]bool)}
}

func (f *fakeIdempotency) Reserve(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return false, f.err
	}
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeIdempotency) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.keys, key)
	f.released = append(f.released, key)
	return nil
}
