package validation

// ChatRequest is the payload for POST /chat.
type ChatRequest struct {
	Message    string `json:"message" validate:"required"`
	CustomerID string `json:"customer_id" validate:"required"`
}

// ResolveRequest is the payload for POST /resolve: one case for the
// resolution engine. Image is base64-encoded JPEG bytes.
type ResolveRequest struct {
	Intent       string   `json:"intent" validate:"required"`
	Message      string   `json:"message" validate:"required"`
	CustomerID   string   `json:"customer_id" validate:"required"`
	CaseID       string   `json:"case_id,omitempty"`       // generated when absent
	Image        string   `json:"image,omitempty"`         // base64
	RefundAmount *float64 `json:"refund_amount,omitempty"` // derived from the order when absent
}

// SubscriptionItem is a single line item in a subscription.
type SubscriptionItem struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"` // must be >= 1
}

// SubscriptionRequest is the payload for POST /subscription.
type SubscriptionRequest struct {
	CustomerID       string             `json:"customer_id" validate:"required"`
	Items            []SubscriptionItem `json:"items" validate:"required,min=1,dive"` // at least one item
	DeliveryDate     string             `json:"delivery_date" validate:"required"`    // YYYY-MM-DD
	SubscriptionType string             `json:"subscription_type,omitempty"`          // defaults to weekly
}
