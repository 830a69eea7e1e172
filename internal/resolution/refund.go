package resolution

import (
	"context"
	"fmt"

	"github.com/imrishuroy/go-care-resolution/internal/oracle"
	"github.com/imrishuroy/go-care-resolution/internal/store"
)

// stepResult is the immutable outcome of one transition decision: the next
// case status, the user-facing response, and the side-effect intents the
// engine executes afterwards. Decisions stay pure; effects run in one place.
type stepResult struct {
	status         string
	response       string
	escalate       bool   // append an escalation record + notify
	escalationNote string // record body; response is used when empty
	creditWallet   bool   // credit the refund amount to the wallet
}

// decideRefundStart validates that an order reference and a refund amount
// could be resolved. Returns nil to continue the flow.
func decideRefundStart(haveOrderID, haveAmount bool, rawMessage string) *stepResult {
	if !haveOrderID || !haveAmount {
		return &stepResult{
			status:         StatusEscalated,
			response:       "Please provide a valid order ID (e.g., ORD001) for your refund request.",
			escalate:       true,
			escalationNote: rawMessage,
		}
	}
	return nil
}

// decideEligibility applies the fixed, short-circuiting eligibility checks:
// order existence, then cancellation, then prior refund. Only the first
// matching condition fires. Returns nil when the order is eligible.
func decideEligibility(orderID string, order *store.Order, payment *store.Payment, rawMessage string) *stepResult {
	if order == nil {
		return &stepResult{
			status:         StatusEscalated,
			response:       fmt.Sprintf("Order %s not found. Escalated for manual review.", orderID),
			escalate:       true,
			escalationNote: rawMessage,
		}
	}
	if order.Status == store.OrderStatusCancelled {
		return &stepResult{
			status:   StatusEscalated,
			response: fmt.Sprintf("Order %s is cancelled. No refund applicable.", orderID),
			escalate: true,
		}
	}
	if payment != nil && payment.Status == store.PaymentStatusRefunded {
		return &stepResult{
			status:   StatusEscalated,
			response: fmt.Sprintf("Order %s was already refunded on %s.", orderID, payment.RefundDate),
			escalate: true,
		}
	}
	return nil
}

// decideEvidence asks for an image when none was supplied. This is a request
// for more input, not a failure: no escalation record is written.
func decideEvidence(orderID string, image []byte) *stepResult {
	if len(image) == 0 {
		return &stepResult{
			status:   StatusPendingImage,
			response: fmt.Sprintf("Please upload an image of the damaged item for order %s to process your refund.", orderID),
		}
	}
	return nil
}

// decideVerdict folds the oracle's answer (or its failure) into a terminal
// step. Every failure mode fails closed into escalation; the error detail is
// kept in the escalation note for auditability.
func decideVerdict(verdict *oracle.Verdict, verdictErr error, customer *store.Customer, rawMessage string) stepResult {
	if verdictErr != nil {
		return stepResult{
			status:         StatusEscalated,
			response:       fmt.Sprintf("Failed to validate refund request: %v. Escalated for manual review.", verdictErr),
			escalate:       true,
			escalationNote: fmt.Sprintf("Error: %v. Message: %s", verdictErr, rawMessage),
		}
	}
	if verdict.Status != oracle.VerdictResolved {
		return stepResult{
			status:         StatusEscalated,
			response:       verdict.Message,
			escalate:       true,
			escalationNote: fmt.Sprintf("Oracle escalated: %s. Message: %s", verdict.Message, rawMessage),
		}
	}
	if customer == nil {
		// Verdict approved a refund for a customer record that vanished.
		// Downgrade instead of crediting a nonexistent account.
		return stepResult{
			status:   StatusEscalated,
			response: "Customer not found during refund processing. Escalated for manual review.",
			escalate: true,
		}
	}
	return stepResult{
		status:       StatusResolved,
		response:     verdict.Message,
		creditWallet: true,
	}
}

// runRefundFlow walks the refund state machine: extract -> fetch ->
// eligibility -> evidence -> adjudicate -> settle. Fetches happen here;
// decisions are the pure funcs above; effects are executed as each terminal
// step is reached.
func (e *Engine) runRefundFlow(ctx context.Context, req Request) Outcome {
	orderID, haveOrderID := ExtractOrderID(req.Message)

	amount, haveAmount := 0.0, false
	if req.RefundAmount != nil {
		amount, haveAmount = *req.RefundAmount, true
	} else if haveOrderID {
		stored, found, err := e.store.GetOrderAmount(ctx, orderID)
		if err != nil {
			return e.escalateOnError(ctx, req, err)
		}
		if found && stored > 0 {
			amount, haveAmount = stored, true
		}
	}

	if step := decideRefundStart(haveOrderID, haveAmount, req.Message); step != nil {
		return e.execute(ctx, req, *step)
	}

	order, err := e.store.GetOrder(ctx, orderID)
	if err != nil {
		return e.escalateOnError(ctx, req, err)
	}
	payment, err := e.store.GetOrderPayment(ctx, orderID)
	if err != nil {
		return e.escalateOnError(ctx, req, err)
	}

	if step := decideEligibility(orderID, order, payment, req.Message); step != nil {
		return e.execute(ctx, req, *step)
	}

	if step := decideEvidence(orderID, req.Image); step != nil {
		return e.execute(ctx, req, *step)
	}

	verdict, verdictErr := e.oracle.ClassifyDamage(ctx, req.Image, oracle.ClaimContext{
		CustomerID:   req.CustomerID,
		OrderID:      orderID,
		RefundAmount: amount,
		Message:      req.Message,
	})

	var customer *store.Customer
	if verdictErr == nil && verdict.Status == oracle.VerdictResolved {
		customer, err = e.store.GetCustomer(ctx, req.CustomerID)
		if err != nil {
			return e.escalateOnError(ctx, req, err)
		}
	}

	step := decideVerdict(verdict, verdictErr, customer, req.Message)
	if step.creditWallet {
		// Read-modify-write: concurrent refunds on the same customer can
		// race here; see UpdateWalletBalance.
		newBalance := customer.WalletBalance + amount
		if err := e.store.UpdateWalletBalance(ctx, req.CustomerID, newBalance); err != nil {
			return e.escalateOnError(ctx, req, err)
		}
		e.log.Info("refund credited",
			"customer_id", req.CustomerID,
			"order_id", orderID,
			"amount", amount,
			"new_balance", newBalance)
	}
	return e.execute(ctx, req, step)
}

// escalateOnError converts an unexpected store/infra error into a terminal
// escalated outcome, writing an escalation record with the error detail.
func (e *Engine) escalateOnError(ctx context.Context, req Request, cause error) Outcome {
	e.log.Error("refund flow error", "case_id", req.CaseID, "err", cause)
	step := stepResult{
		status:         StatusEscalated,
		response:       fmt.Sprintf("Failed to validate refund request: %v. Escalated for manual review.", cause),
		escalate:       true,
		escalationNote: fmt.Sprintf("Error: %v. Message: %s", cause, req.Message),
	}
	return e.execute(ctx, req, step)
}
