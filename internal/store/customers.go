package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// GetCustomer fetches a customer by customer_id. Returns (nil, nil) if not found.
func (s *Store) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	key := map[string]types.AttributeValue{
		"customer_id": &types.AttributeValueMemberS{Value: customerID},
	}
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tables.Customers,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var c Customer
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("unmarshal customer: %w", err)
	}
	return &c, nil
}

// ListCustomers scans the customers table. Intended for the small demo
// directory endpoint, not for large tables.
func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName: &s.tables.Customers,
	})
	if err != nil {
		return nil, fmt.Errorf("scan customers: %w", err)
	}
	customers := make([]Customer, 0, len(out.Items))
	for _, item := range out.Items {
		var c Customer
		if err := attributevalue.UnmarshalMap(item, &c); err != nil {
			return nil, fmt.Errorf("unmarshal customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// UpdateWalletBalance overwrites the customer's wallet balance.
// This is a plain read-modify-write from the caller's perspective: no
// conditional expression guards the previous balance, so concurrent refunds
// on the same customer can race (last write wins).
func (s *Store) UpdateWalletBalance(ctx context.Context, customerID string, newBalance float64) error {
	now := s.nowFunc()
	input := &dyn.UpdateItemInput{
		TableName: &s.tables.Customers,
		Key: map[string]types.AttributeValue{
			"customer_id": &types.AttributeValueMemberS{Value: customerID},
		},
		UpdateExpression: awsString("SET wallet_balance = :wb, updated_at = :ua"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":wb": &types.AttributeValueMemberN{Value: strconv.FormatFloat(newBalance, 'f', -1, 64)},
			":ua": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	}
	_, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	return nil
}
