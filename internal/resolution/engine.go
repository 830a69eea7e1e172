// Package resolution implements the intent-dispatch state machine at the
// heart of the support backend: order-id extraction, the refund adjudication
// flow, and the simpler lookup handlers for the remaining intents.
package resolution

import (
	"context"
	"log/slog"

	"github.com/imrishuroy/go-care-resolution/internal/aws"
	"github.com/imrishuroy/go-care-resolution/internal/intent"
)

// Engine processes support cases. Store and oracle are required; notifier
// and metrics are optional and best-effort.
type Engine struct {
	store   Store
	oracle  Classifier
	notify  Notifier
	metrics Recorder
	log     *slog.Logger
}

// NewEngine wires an Engine. notify and metrics may be nil.
func NewEngine(s Store, o Classifier, notify Notifier, metrics Recorder, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   s,
		oracle:  o,
		notify:  notify,
		metrics: metrics,
		log:     logger,
	}
}

// ProcessRequest runs one case to a terminal outcome. It never returns the
// transient pending status and never propagates a hard failure: every error
// becomes an escalated outcome.
func (e *Engine) ProcessRequest(ctx context.Context, req Request) Outcome {
	in := intent.Parse(req.Intent)
	e.log.Info("processing case",
		"case_id", req.CaseID,
		"customer_id", req.CustomerID,
		"intent", in.String())

	var out Outcome
	switch in.Route() {
	case intent.BranchRefund:
		out = e.runRefundFlow(ctx, req)
	case intent.BranchOther:
		out = e.runOtherIntents(ctx, in, req)
	}

	e.countOutcome(ctx, in, out.Status)
	return out
}

// execute performs a step's side effects and folds it into the terminal
// outcome. Escalation writes are fire-and-forget: a failed write is logged,
// never resurfaced to the end user.
func (e *Engine) execute(ctx context.Context, req Request, step stepResult) Outcome {
	if step.escalate {
		note := step.escalationNote
		if note == "" {
			note = step.response
		}
		escalationID, err := e.store.AddEscalation(ctx, req.CaseID, req.CustomerID, note)
		if err != nil {
			e.log.Error("failed to write escalation", "case_id", req.CaseID, "err", err)
		} else if e.notify != nil {
			ev := aws.EscalationEvent{
				EscalationID: escalationID,
				CaseID:       req.CaseID,
				CustomerID:   req.CustomerID,
			}
			if err := e.notify.SendEscalationEvent(ctx, ev, map[string]string{"case_id": req.CaseID}); err != nil {
				e.log.Error("failed to publish escalation event", "case_id", req.CaseID, "err", err)
			}
		}
	}
	return Outcome{Status: step.status, Message: step.response, CaseID: req.CaseID}
}

// metric names per terminal status
const (
	metricResolved     = "CaseResolved"
	metricEscalated    = "CaseEscalated"
	metricPendingImage = "CasePendingImage"
	metricError        = "CaseError"
)

func (e *Engine) countOutcome(ctx context.Context, in intent.Intent, status string) {
	if e.metrics == nil {
		return
	}
	var name string
	switch status {
	case StatusResolved:
		name = metricResolved
	case StatusEscalated:
		name = metricEscalated
	case StatusPendingImage:
		name = metricPendingImage
	case StatusError:
		name = metricError
	default:
		return
	}
	if err := e.metrics.CountCaseOutcome(ctx, name, in.String()); err != nil {
		e.log.Warn("failed to emit case metric", "metric", name, "err", err)
	}
}
