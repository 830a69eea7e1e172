package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// GetOrderPayment fetches the payment record for an order. Returns (nil, nil)
// if the order has no payment on file.
func (s *Store) GetOrderPayment(ctx context.Context, orderID string) (*Payment, error) {
	key := map[string]types.AttributeValue{
		"order_id": &types.AttributeValueMemberS{Value: orderID},
	}
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tables.Payments,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Payment
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal payment: %w", err)
	}
	return &p, nil
}

// GetFailedPayments returns every failed payment for a customer.
// An empty slice means none.
func (s *Store) GetFailedPayments(ctx context.Context, customerID string) ([]Payment, error) {
	indexName := CustomerIndexName
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tables.Payments,
		IndexName:              &indexName,
		KeyConditionExpression: awsString("customer_id = :cid"),
		FilterExpression:       awsString("#s = :failed"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid":    &types.AttributeValueMemberS{Value: customerID},
			":failed": &types.AttributeValueMemberS{Value: PaymentStatusFailed},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query failed payments: %w", err)
	}
	payments := make([]Payment, 0, len(out.Items))
	for _, item := range out.Items {
		var p Payment
		if err := attributevalue.UnmarshalMap(item, &p); err != nil {
			return nil, fmt.Errorf("unmarshal payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// GetCustomerPayments lists all payments for a customer via the customer_id GSI.
func (s *Store) GetCustomerPayments(ctx context.Context, customerID string) ([]Payment, error) {
	indexName := CustomerIndexName
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tables.Payments,
		IndexName:              &indexName,
		KeyConditionExpression: awsString("customer_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query customer payments: %w", err)
	}
	payments := make([]Payment, 0, len(out.Items))
	for _, item := range out.Items {
		var p Payment
		if err := attributevalue.UnmarshalMap(item, &p); err != nil {
			return nil, fmt.Errorf("unmarshal payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}
