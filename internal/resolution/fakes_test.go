package resolution

import (
	"context"
	"errors"

	"github.com/imrishuroy/go-care-resolution/internal/oracle"
	"github.com/imrishuroy/go-care-resolution/internal/store"
)

// fakeStore is an in-memory resolution.Store for engine tests.
type fakeStore struct {
	orders    map[string]*store.Order
	payments  map[string]*store.Payment
	customers map[string]*store.Customer
	failed    map[string][]store.Payment

	escalations   []store.Escalation
	walletUpdates []walletUpdate
}

type walletUpdate struct {
	customerID string
	newBalance float64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:    map[string]*store.Order{},
		payments:  map[string]*store.Payment{},
		customers: map[string]*store.Customer{},
		failed:    map[string][]store.Payment{},
	}
}

func (f *fakeStore) GetOrder(ctx context.Context, orderID string) (*store.Order, error) {
	return f.orders[orderID], nil
}

func (f *fakeStore) GetOrderPayment(ctx context.Context, orderID string) (*store.Payment, error) {
	return f.payments[orderID], nil
}

func (f *fakeStore) GetOrderAmount(ctx context.Context, orderID string) (float64, bool, error) {
	o := f.orders[orderID]
	if o == nil {
		return 0, false, nil
	}
	return o.Amount, true, nil
}

func (f *fakeStore) GetCustomer(ctx context.Context, customerID string) (*store.Customer, error) {
	return f.customers[customerID], nil
}

func (f *fakeStore) GetFailedPayments(ctx context.Context, customerID string) ([]store.Payment, error) {
	return f.failed[customerID], nil
}

func (f *fakeStore) UpdateWalletBalance(ctx context.Context, customerID string, newBalance float64) error {
	f.walletUpdates = append(f.walletUpdates, walletUpdate{customerID, newBalance})
	if c := f.customers[customerID]; c != nil {
		c.WalletBalance = newBalance
	}
	return nil
}

func (f *fakeStore) AddEscalation(ctx context.Context, caseID, customerID, message string) (string, error) {
	f.escalations = append(f.escalations, store.Escalation{
		EscalationID: "esc-fake",
		CaseID:       caseID,
		CustomerID:   customerID,
		Message:      message,
	})
	return "esc-fake", nil
}

// fakeOracle returns a canned verdict or error and records invocations.
type fakeOracle struct {
	verdict *oracle.Verdict
	err     error
	calls   int
}

func (f *fakeOracle) ClassifyDamage(ctx context.Context, image []byte, claim oracle.ClaimContext) (*oracle.Verdict, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.verdict, nil
}

var errOracleDown = errors.New("dial tcp: connection refused")
