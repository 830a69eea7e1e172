package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-care-resolution/internal/aws"
	"github.com/imrishuroy/go-care-resolution/internal/handlers"
	"github.com/imrishuroy/go-care-resolution/internal/store"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	handlers.RegisterCareRoutes(r, cfg)

	return r
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	cfg := handlers.HandlerConfig{
		DynamoDBClient:   clients.DynamoDB,
		SQSClient:        clients.SQS,
		CloudWatchClient: clients.CloudWatch,
		Tables: store.Tables{
			Customers:   os.Getenv("CUSTOMERS_TABLE"),
			Orders:      os.Getenv("ORDERS_TABLE"),
			Payments:    os.Getenv("PAYMENTS_TABLE"),
			Escalations: os.Getenv("ESCALATIONS_TABLE"),
		},
		SubscriptionsTable: os.Getenv("SUBSCRIPTIONS_TABLE"),
		QueueURL:           os.Getenv("ESCALATIONS_QUEUE_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		MetricsNamespace:   os.Getenv("METRICS_NAMESPACE"),
		Logger:             logger,
	}

	r := setupRouter(cfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := ":8080"
		logger.Info("running local server", "addr", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
