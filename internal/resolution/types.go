package resolution

import (
	"context"

	"github.com/imrishuroy/go-care-resolution/internal/aws"
	"github.com/imrishuroy/go-care-resolution/internal/oracle"
	"github.com/imrishuroy/go-care-resolution/internal/store"
)

// Case statuses. Pending is the initial transient state only and must never
// reach a caller; every path ends in one of the other four.
const (
	StatusPending      = "pending"
	StatusResolved     = "resolved"
	StatusEscalated    = "escalated"
	StatusPendingImage = "pending_image"
	StatusError        = "error"
)

// Request is one inbound case to process.
type Request struct {
	Intent       string
	Message      string
	CustomerID   string
	CaseID       string
	Image        []byte
	RefundAmount *float64 // nil means derive from the order
}

// Outcome is the terminal result returned to the caller.
type Outcome struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	CaseID  string `json:"case_id,omitempty"`
}

// Store is the document-store surface the engine needs.
type Store interface {
	GetOrder(ctx context.Context, orderID string) (*store.Order, error)
	GetOrderPayment(ctx context.Context, orderID string) (*store.Payment, error)
	GetOrderAmount(ctx context.Context, orderID string) (amount float64, found bool, err error)
	GetCustomer(ctx context.Context, customerID string) (*store.Customer, error)
	GetFailedPayments(ctx context.Context, customerID string) ([]store.Payment, error)
	UpdateWalletBalance(ctx context.Context, customerID string, newBalance float64) error
	AddEscalation(ctx context.Context, caseID, customerID, message string) (string, error)
}

// Classifier is the damage-verdict oracle.
type Classifier interface {
	ClassifyDamage(ctx context.Context, image []byte, claim oracle.ClaimContext) (*oracle.Verdict, error)
}

// Notifier publishes escalation events for the notification worker.
type Notifier interface {
	SendEscalationEvent(ctx context.Context, ev aws.EscalationEvent, attributes map[string]string) error
}

// Recorder emits per-case outcome metrics.
type Recorder interface {
	CountCaseOutcome(ctx context.Context, metricName, intent string) error
}
