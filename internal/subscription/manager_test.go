package subscription

import (
	"context"
	"testing"
	"time"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// subsMock is an in-memory stand-in for the subscriptions table.
type subsMock struct {
	items map[string]map[string]types.AttributeValue
}

func newSubsMock() *subsMock {
	return &subsMock{items: map[string]map[string]types.AttributeValue{}}
}

func (m *subsMock) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	id := params.Key["subscription_id"].(*types.AttributeValueMemberS).Value
	item, ok := m.items[id]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *subsMock) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	id := params.Item["subscription_id"].(*types.AttributeValueMemberS).Value
	m.items[id] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *subsMock) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	id := params.Key["subscription_id"].(*types.AttributeValueMemberS).Value
	item, ok := m.items[id]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "ConditionalCheckFailedException", Message: "item does not exist"}
	}
	if v, ok := params.ExpressionAttributeValues[":cancelled"]; ok {
		item["status"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":ua"]; ok {
		item["updated_at"] = v
	}
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

func (m *subsMock) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	cid := params.ExpressionAttributeValues[":cid"].(*types.AttributeValueMemberS).Value
	out := &dyn.QueryOutput{}
	for _, item := range m.items {
		if c, ok := item["customer_id"].(*types.AttributeValueMemberS); ok && c.Value == cid {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (m *subsMock) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	out := &dyn.ScanOutput{}
	for _, item := range m.items {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func newTestManager(mock *subsMock) *Manager {
	m := NewManager(mock, "subscriptions")
	m.nowFunc = func() time.Time { return testNow }
	return m
}

func TestCreate_DefaultsTypeAndStatus(t *testing.T) {
	m := newTestManager(newSubsMock())

	items := []map[string]interface{}{{"name": "milk", "quantity": float64(2)}}
	sub, err := m.Create(context.Background(), "WM001", items, "2025-06-10", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.SubscriptionID == "" {
		t.Fatal("expected a generated subscription id")
	}
	if sub.Type != DefaultType {
		t.Fatalf("empty type must default to %q, got %q", DefaultType, sub.Type)
	}
	if sub.Status != StatusActive {
		t.Fatalf("new subscription must be active, got %q", sub.Status)
	}
}

func TestGetCustomerSubscriptions(t *testing.T) {
	mock := newSubsMock()
	m := newTestManager(mock)

	if _, err := m.Create(context.Background(), "WM001", nil, "2025-06-10", "weekly"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Create(context.Background(), "WM002", nil, "2025-06-11", "monthly"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subs, err := m.GetCustomerSubscriptions(context.Background(), "WM001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 1 || subs[0].CustomerID != "WM001" {
		t.Fatalf("unexpected subscriptions: %+v", subs)
	}
}

func TestCancel(t *testing.T) {
	mock := newSubsMock()
	m := newTestManager(mock)

	sub, err := m.Create(context.Background(), "WM001", nil, "2025-06-10", "weekly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := m.Cancel(context.Background(), sub.SubscriptionID)
	if err != nil || !ok {
		t.Fatalf("cancel failed: ok=%v err=%v", ok, err)
	}
	if s := mock.items[sub.SubscriptionID]["status"].(*types.AttributeValueMemberS).Value; s != StatusCancelled {
		t.Fatalf("expected status %q, got %q", StatusCancelled, s)
	}
}

func TestCancel_NotFound(t *testing.T) {
	m := newTestManager(newSubsMock())

	ok, err := m.Cancel(context.Background(), "no-such-sub")
	if err != nil {
		t.Fatalf("not-found must not be an error: %v", err)
	}
	if ok {
		t.Fatal("cancelling a missing subscription must report false")
	}
}

func TestGetNotification(t *testing.T) {
	m := newTestManager(newSubsMock())

	base := Subscription{
		SubscriptionID: "sub-1",
		CustomerID:     "WM001",
		Type:           "weekly",
		Status:         StatusActive,
		DeliveryDate:   "2025-06-10",
	}

	n := m.GetNotification(base)
	if n == nil {
		t.Fatal("expected a notification for an upcoming active subscription")
	}
	if n.DeliveryDate != "2025-06-10" || n.Message == "" {
		t.Fatalf("unexpected notification: %+v", n)
	}

	cancelled := base
	cancelled.Status = StatusCancelled
	if m.GetNotification(cancelled) != nil {
		t.Fatal("cancelled subscriptions must not notify")
	}

	past := base
	past.DeliveryDate = "2025-05-01"
	if m.GetNotification(past) != nil {
		t.Fatal("past delivery dates must not notify")
	}

	bad := base
	bad.DeliveryDate = "June 10th"
	if m.GetNotification(bad) != nil {
		t.Fatal("unparseable dates must not notify")
	}
}
