// Package intent defines the fixed set of support intents and their dispatch
// branches.
package intent

// Intent is a typed label for an inbound support request.
type Intent string

// The known intents. Anything else parses to Unknown and is handled by the
// generic escalation branch.
const (
	RefundRequest  Intent = "REFUND_REQUEST"
	WalletIssue    Intent = "WALLET_ISSUE"
	DeliveryIssue  Intent = "DELIVERY_ISSUE"
	PaymentProblem Intent = "PAYMENT_PROBLEM"
	OrderStatus    Intent = "ORDER_STATUS"
	Unknown        Intent = "UNKNOWN"
)

// Parse maps a raw intent label to an Intent. Unrecognized labels map to
// Unknown rather than erroring: the engine escalates those.
func Parse(raw string) Intent {
	switch Intent(raw) {
	case RefundRequest, WalletIssue, DeliveryIssue, PaymentProblem, OrderStatus:
		return Intent(raw)
	default:
		return Unknown
	}
}

// Branch names the two top-level handling paths.
type Branch int

const (
	// BranchRefund routes to the refund adjudication flow.
	BranchRefund Branch = iota
	// BranchOther routes to the other-intent handlers, which escalate
	// anything outside their known set themselves.
	BranchOther
)

// Route returns the handling branch for an intent. Only RefundRequest takes
// the refund flow; every other label, recognized or not, goes to the
// other-intent handlers.
func (i Intent) Route() Branch {
	switch i {
	case RefundRequest:
		return BranchRefund
	case WalletIssue, DeliveryIssue, PaymentProblem, OrderStatus, Unknown:
		return BranchOther
	default:
		return BranchOther
	}
}

// String returns the wire label.
func (i Intent) String() string { return string(i) }
