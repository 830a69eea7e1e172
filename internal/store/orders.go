package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// GetOrder fetches an order by order_id. Returns (nil, nil) if not found.
func (s *Store) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	key := map[string]types.AttributeValue{
		"order_id": &types.AttributeValueMemberS{Value: orderID},
	}
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tables.Orders,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// GetOrderAmount returns the stored amount for an order.
// found is false when the order does not exist.
func (s *Store) GetOrderAmount(ctx context.Context, orderID string) (amount float64, found bool, err error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return 0, false, err
	}
	if o == nil {
		return 0, false, nil
	}
	return o.Amount, true, nil
}

// GetCustomerOrders lists all orders for a customer via the customer_id GSI.
func (s *Store) GetCustomerOrders(ctx context.Context, customerID string) ([]Order, error) {
	indexName := CustomerIndexName
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tables.Orders,
		IndexName:              &indexName,
		KeyConditionExpression: awsString("customer_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query customer orders: %w", err)
	}
	orders := make([]Order, 0, len(out.Items))
	for _, item := range out.Items {
		var o Order
		if err := attributevalue.UnmarshalMap(item, &o); err != nil {
			return nil, fmt.Errorf("unmarshal order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func awsString(s string) *string { return &s }
