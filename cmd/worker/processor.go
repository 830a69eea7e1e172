package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/imrishuroy/go-care-resolution/internal/aws"
	"github.com/imrishuroy/go-care-resolution/internal/store"
)

// Processor consumes escalation events and stamps the corresponding records
// as notified. Deliveries may be duplicated; MarkEscalationNotified keeps the
// first timestamp, so re-processing is harmless.
type Processor struct {
	store *store.Store
	log   *slog.Logger
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, tables store.Tables, logger *slog.Logger) *Processor {
	return &Processor{
		store: store.NewStore(clients.DynamoDB, tables),
		log:   logger,
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			p.log.Error("worker error", "err", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg EscalationMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	p.log.Info("received escalation event",
		"escalation_id", msg.EscalationID,
		"case_id", msg.CaseID,
		"customer_id", msg.CustomerID)

	esc, err := p.store.GetEscalation(ctx, msg.EscalationID)
	if err != nil {
		return fmt.Errorf("failed to fetch escalation: %w", err)
	}
	if esc == nil {
		// Should never happen — DLQ if it does
		return fmt.Errorf("escalation not found: %s", msg.EscalationID)
	}
	if esc.NotifiedAt != "" {
		p.log.Info("escalation already notified", "escalation_id", msg.EscalationID)
		return nil
	}

	if err := p.store.MarkEscalationNotified(ctx, msg.EscalationID); err != nil {
		return fmt.Errorf("failed to mark escalation notified: %w", err)
	}

	p.log.Info("escalation notified", "escalation_id", msg.EscalationID, "case_id", msg.CaseID)
	return nil
}
