package store

import "time"

// Order statuses as stored in the orders table.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses as stored in the payments table.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Customer represents the item stored in the customers table.
type Customer struct {
	CustomerID    string  `dynamodbav:"customer_id"` // PK
	Name          string  `dynamodbav:"name,omitempty"`
	Membership    string  `dynamodbav:"membership,omitempty"`
	Location      string  `dynamodbav:"location,omitempty"`
	WalletBalance float64 `dynamodbav:"wallet_balance"`
}

// Order represents the item stored in the orders table.
type Order struct {
	OrderID          string    `dynamodbav:"order_id"` // PK
	CustomerID       string    `dynamodbav:"customer_id"`
	Status           string    `dynamodbav:"status"` // pending | shipped | delivered | cancelled
	ExpectedDelivery string    `dynamodbav:"expected_delivery,omitempty"`
	Amount           float64   `dynamodbav:"amount"`
	CreatedAt        time.Time `dynamodbav:"created_at"`
}

// Payment represents the item stored in the payments table, keyed by order.
type Payment struct {
	OrderID    string  `dynamodbav:"order_id"` // PK
	CustomerID string  `dynamodbav:"customer_id"`
	Status     string  `dynamodbav:"status"` // completed | failed | refunded
	Amount     float64 `dynamodbav:"amount"`
	RefundDate string  `dynamodbav:"refund_date,omitempty"` // set once status is refunded
}

// Escalation is an append-only record flagging a case for human review.
type Escalation struct {
	EscalationID string    `dynamodbav:"escalation_id"` // PK
	CaseID       string    `dynamodbav:"case_id"`
	CustomerID   string    `dynamodbav:"customer_id"`
	Message      string    `dynamodbav:"message"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
	NotifiedAt   string    `dynamodbav:"notified_at,omitempty"` // stamped by the notification worker
}
