package oracle

// Verdict statuses the model is allowed to return. Anything else fails the
// schema check and is treated as an oracle failure by the caller.
const (
	VerdictResolved  = "resolved"
	VerdictEscalated = "escalated"
)

// Verdict is the oracle's decision on a damage claim.
type Verdict struct {
	Status  string `json:"status"` // resolved | escalated
	Message string `json:"message"`
	CaseID  string `json:"case_id,omitempty"`
}

// ClaimContext carries the case details sent alongside the image.
type ClaimContext struct {
	CustomerID   string
	OrderID      string
	RefundAmount float64
	Message      string
}
