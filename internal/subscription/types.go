package subscription

import "time"

// Subscription statuses
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// DefaultType is used when the caller does not name a subscription type.
const DefaultType = "weekly"

// Subscription represents the item stored in the subscriptions table.
type Subscription struct {
	SubscriptionID string                   `dynamodbav:"subscription_id"` // PK
	CustomerID     string                   `dynamodbav:"customer_id"`
	Items          []map[string]interface{} `dynamodbav:"items"` // flexible storage; can be refined
	DeliveryDate   string                   `dynamodbav:"delivery_date"`   // YYYY-MM-DD
	Type           string                   `dynamodbav:"subscription_type"`
	Status         string                   `dynamodbav:"status"` // active | cancelled
	CreatedAt      time.Time                `dynamodbav:"created_at"`
	UpdatedAt      time.Time                `dynamodbav:"updated_at"`
}

// Notification is an upcoming-delivery reminder derived from an active
// subscription. Not persisted.
type Notification struct {
	SubscriptionID string `json:"subscription_id"`
	CustomerID     string `json:"customer_id"`
	DeliveryDate   string `json:"delivery_date"`
	Message        string `json:"message"`
}
