package resolution

import (
	"context"
	"fmt"

	"github.com/imrishuroy/go-care-resolution/internal/intent"
)

// runOtherIntents handles every non-refund intent. Each handler requires the
// customer to exist; absence yields a terminal "error" status with no
// escalation record. That differs from the refund path, which escalates on
// every failure — the asymmetry is deliberate and kept as-is.
func (e *Engine) runOtherIntents(ctx context.Context, in intent.Intent, req Request) Outcome {
	customer, err := e.store.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return e.escalateOnError(ctx, req, err)
	}
	if customer == nil {
		return Outcome{Status: StatusError, Message: "Customer not found.", CaseID: req.CaseID}
	}

	switch in {
	case intent.WalletIssue:
		failed, err := e.store.GetFailedPayments(ctx, req.CustomerID)
		if err != nil {
			return e.escalateOnError(ctx, req, err)
		}
		if len(failed) > 0 {
			return e.execute(ctx, req, stepResult{
				status:         StatusEscalated,
				response:       "We've detected payment issues. Escalated for review.",
				escalate:       true,
				escalationNote: req.Message,
			})
		}
		return e.execute(ctx, req, stepResult{
			status:   StatusResolved,
			response: fmt.Sprintf("Your wallet balance is ₹%.2f. No issues detected.", customer.WalletBalance),
		})

	case intent.DeliveryIssue:
		orderID, ok := ExtractOrderID(req.Message)
		if !ok {
			// No record written for the missing-id case, matching the
			// pattern of which failures the handlers log for review.
			return e.execute(ctx, req, stepResult{
				status:   StatusEscalated,
				response: "Please provide a valid order ID (e.g., ORD001).",
			})
		}
		order, err := e.store.GetOrder(ctx, orderID)
		if err != nil {
			return e.escalateOnError(ctx, req, err)
		}
		if order == nil {
			return e.execute(ctx, req, stepResult{
				status:         StatusEscalated,
				response:       "Unable to track delivery. Escalated for manual review.",
				escalate:       true,
				escalationNote: req.Message,
			})
		}
		return e.execute(ctx, req, stepResult{
			status:   StatusResolved,
			response: fmt.Sprintf("Order %s status: %s. Expected delivery: %s.", orderID, order.Status, order.ExpectedDelivery),
		})

	case intent.PaymentProblem:
		failed, err := e.store.GetFailedPayments(ctx, req.CustomerID)
		if err != nil {
			return e.escalateOnError(ctx, req, err)
		}
		if len(failed) > 0 {
			return e.execute(ctx, req, stepResult{
				status:         StatusEscalated,
				response:       fmt.Sprintf("Found %d failed payment(s). Escalated for review.", len(failed)),
				escalate:       true,
				escalationNote: req.Message,
			})
		}
		return e.execute(ctx, req, stepResult{
			status:   StatusResolved,
			response: "No payment issues found.",
		})

	case intent.OrderStatus:
		orderID, ok := ExtractOrderID(req.Message)
		if !ok {
			return e.execute(ctx, req, stepResult{
				status:   StatusEscalated,
				response: "Please provide a valid order ID (e.g., ORD001).",
			})
		}
		order, err := e.store.GetOrder(ctx, orderID)
		if err != nil {
			return e.escalateOnError(ctx, req, err)
		}
		if order == nil {
			return e.execute(ctx, req, stepResult{
				status:         StatusEscalated,
				response:       "Order not found. Please provide a valid order ID.",
				escalate:       true,
				escalationNote: req.Message,
			})
		}
		return e.execute(ctx, req, stepResult{
			status:   StatusResolved,
			response: fmt.Sprintf("Order %s status: %s. Expected delivery: %s.", orderID, order.Status, order.ExpectedDelivery),
		})

	default:
		return e.execute(ctx, req, stepResult{
			status:         StatusEscalated,
			response:       "Unable to process your request automatically. Escalated for manual review.",
			escalate:       true,
			escalationNote: req.Message,
		})
	}
}
