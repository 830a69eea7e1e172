package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/go-care-resolution/internal/aws"
	"github.com/imrishuroy/go-care-resolution/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	tables := store.Tables{
		Customers:   os.Getenv("CUSTOMERS_TABLE"),
		Orders:      os.Getenv("ORDERS_TABLE"),
		Payments:    os.Getenv("PAYMENTS_TABLE"),
		Escalations: os.Getenv("ESCALATIONS_TABLE"),
	}
	p := NewProcessor(clients, tables, logger)

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if os.Getenv("RUN_LOCAL") == "true" {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = `{"escalation_id":"local-esc-1","case_id":"local-case-1","customer_id":"WM001"}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{
					Body: testBody,
				},
			},
		}
		if err := p.Handle(context.Background(), event); err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(p.Handle)
}
