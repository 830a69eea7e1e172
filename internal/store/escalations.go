package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// AddEscalation appends an escalation record for a case and returns its id.
// The log is append-only: a case that fails through several layers may have
// more than one record, and callers do not deduplicate.
func (s *Store) AddEscalation(ctx context.Context, caseID, customerID, message string) (string, error) {
	rec := Escalation{
		EscalationID: uuid.NewString(),
		CaseID:       caseID,
		CustomerID:   customerID,
		Message:      message,
		CreatedAt:    s.nowFunc(),
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return "", fmt.Errorf("marshal escalation: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tables.Escalations,
		Item:      item,
	})
	if err != nil {
		return "", fmt.Errorf("put escalation: %w", err)
	}
	return rec.EscalationID, nil
}

// GetEscalation fetches an escalation record by id. Returns (nil, nil) if not found.
func (s *Store) GetEscalation(ctx context.Context, escalationID string) (*Escalation, error) {
	key := map[string]types.AttributeValue{
		"escalation_id": &types.AttributeValueMemberS{Value: escalationID},
	}
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tables.Escalations,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("get escalation: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var e Escalation
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, fmt.Errorf("unmarshal escalation: %w", err)
	}
	return &e, nil
}

// MarkEscalationNotified stamps notified_at on an escalation record.
// Re-marking an already-notified record is a no-op update, so duplicate
// worker deliveries are harmless.
func (s *Store) MarkEscalationNotified(ctx context.Context, escalationID string) error {
	now := s.nowFunc()
	input := &dyn.UpdateItemInput{
		TableName: &s.tables.Escalations,
		Key: map[string]types.AttributeValue{
			"escalation_id": &types.AttributeValueMemberS{Value: escalationID},
		},
		UpdateExpression: awsString("SET notified_at = if_not_exists(notified_at, :na)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":na": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	}
	_, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		return fmt.Errorf("mark escalation notified: %w", err)
	}
	return nil
}
