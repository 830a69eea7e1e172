// Package subscription manages recurring-delivery subscriptions: create,
// list, cancel, and upcoming-delivery notifications.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-care-resolution/internal/aws"
)

// Manager encapsulates operations on the subscriptions table.
type Manager struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewManager creates a new subscriptions Manager.
func NewManager(client aws.DynamoDBAPI, tableName string) *Manager {
	return &Manager{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a new active subscription and returns it.
// subscriptionType falls back to DefaultType when empty.
func (m *Manager) Create(ctx context.Context, customerID string, items []map[string]interface{}, deliveryDate, subscriptionType string) (*Subscription, error) {
	if subscriptionType == "" {
		subscriptionType = DefaultType
	}
	now := m.nowFunc()
	sub := Subscription{
		SubscriptionID: uuid.NewString(),
		CustomerID:     customerID,
		Items:          items,
		DeliveryDate:   deliveryDate,
		Type:           subscriptionType,
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return nil, fmt.Errorf("marshal subscription: %w", err)
	}
	_, err = m.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &m.tableName,
		Item:      item,
	})
	if err != nil {
		return nil, fmt.Errorf("put subscription: %w", err)
	}
	return &sub, nil
}

// GetCustomerSubscriptions lists all subscriptions for a customer via the
// customer_id GSI.
func (m *Manager) GetCustomerSubscriptions(ctx context.Context, customerID string) ([]Subscription, error) {
	indexName := "customer-index"
	out, err := m.client.Query(ctx, &dyn.QueryInput{
		TableName:              &m.tableName,
		IndexName:              &indexName,
		KeyConditionExpression: awsString("customer_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	subs := make([]Subscription, 0, len(out.Items))
	for _, it := range out.Items {
		var s Subscription
		if err := attributevalue.UnmarshalMap(it, &s); err != nil {
			return nil, fmt.Errorf("unmarshal subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// Cancel marks a subscription cancelled. Returns false when the subscription
// does not exist.
func (m *Manager) Cancel(ctx context.Context, subscriptionID string) (bool, error) {
	now := m.nowFunc()
	input := &dyn.UpdateItemInput{
		TableName: &m.tableName,
		Key: map[string]types.AttributeValue{
			"subscription_id": &types.AttributeValueMemberS{Value: subscriptionID},
		},
		UpdateExpression: awsString("SET #s = :cancelled, updated_at = :ua"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cancelled": &types.AttributeValueMemberS{Value: StatusCancelled},
			":ua":        &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
		ConditionExpression: awsString("attribute_exists(subscription_id)"),
	}
	_, err := m.client.UpdateItem(ctx, input)
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException" {
			return false, nil
		}
		return false, fmt.Errorf("cancel subscription: %w", err)
	}
	return true, nil
}

// GetNotification derives an upcoming-delivery reminder for a subscription.
// Returns nil for cancelled subscriptions and past delivery dates.
func (m *Manager) GetNotification(sub Subscription) *Notification {
	if sub.Status != StatusActive {
		return nil
	}
	delivery, err := time.Parse("2006-01-02", sub.DeliveryDate)
	if err != nil {
		return nil
	}
	today := m.nowFunc().Truncate(24 * time.Hour)
	if delivery.Before(today) {
		return nil
	}
	return &Notification{
		SubscriptionID: sub.SubscriptionID,
		CustomerID:     sub.CustomerID,
		DeliveryDate:   sub.DeliveryDate,
		Message:        fmt.Sprintf("Your %s subscription is scheduled for delivery on %s.", sub.Type, sub.DeliveryDate),
	}
}

func awsString(s string) *string { return &s }
