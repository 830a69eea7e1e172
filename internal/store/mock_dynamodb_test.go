package store

import (
	"context"
	"errors"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// simpleMock is a small in-memory multi-table mock for the DynamoDB calls the
// store makes. NOTE: intentionally minimal and not production-grade.
type simpleMock struct {
	mu      sync.Mutex
	tables  map[string]map[string]map[string]types.AttributeValue // table -> pk -> item
	keyAttr map[string]string                                     // table -> pk attribute name

	putCalls    int
	getCalls    int
	updateCalls int
	queryCalls  int
	scanCalls   int
}

func newSimpleMock() *simpleMock {
	return &simpleMock{
		tables: map[string]map[string]map[string]types.AttributeValue{
			"customers":   {},
			"orders":      {},
			"payments":    {},
			"escalations": {},
		},
		keyAttr: map[string]string{
			"customers":   "customer_id",
			"orders":      "order_id",
			"payments":    "order_id",
			"escalations": "escalation_id",
		},
	}
}

func testTables() Tables {
	return Tables{
		Customers:   "customers",
		Orders:      "orders",
		Payments:    "payments",
		Escalations: "escalations",
	}
}

func (m *simpleMock) pk(table string, attrs map[string]types.AttributeValue) (string, error) {
	attr := attrs[m.keyAttr[table]]
	if attr == nil {
		return "", errors.New("missing key")
	}
	return attr.(*types.AttributeValueMemberS).Value, nil
}

func (m *simpleMock) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	table := *params.TableName
	k, err := m.pk(table, params.Item)
	if err != nil {
		return nil, err
	}
	m.tables[table][k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *simpleMock) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	table := *params.TableName
	k, err := m.pk(table, params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.tables[table][k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *simpleMock) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	table := *params.TableName
	k, err := m.pk(table, params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.tables[table][k]
	if !ok {
		return nil, errors.New("item not found")
	}
	// naive update: copy known expression values onto the item
	if v, ok := params.ExpressionAttributeValues[":wb"]; ok {
		item["wallet_balance"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":ua"]; ok {
		item["updated_at"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":na"]; ok {
		if _, exists := item["notified_at"]; !exists {
			item["notified_at"] = v
		}
	}
	m.tables[table][k] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

func (m *simpleMock) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCalls++
	table := *params.TableName
	cidAttr, ok := params.ExpressionAttributeValues[":cid"]
	if !ok {
		return nil, errors.New("mock only supports customer_id queries")
	}
	cid := cidAttr.(*types.AttributeValueMemberS).Value

	var wantStatus string
	if v, ok := params.ExpressionAttributeValues[":failed"]; ok {
		wantStatus = v.(*types.AttributeValueMemberS).Value
	}

	out := &dyn.QueryOutput{}
	for _, item := range m.tables[table] {
		c, ok := item["customer_id"].(*types.AttributeValueMemberS)
		if !ok || c.Value != cid {
			continue
		}
		if wantStatus != "" {
			s, ok := item["status"].(*types.AttributeValueMemberS)
			if !ok || s.Value != wantStatus {
				continue
			}
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func (m *simpleMock) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCalls++
	out := &dyn.ScanOutput{}
	for _, item := range m.tables[*params.TableName] {
		out.Items = append(out.Items, item)
	}
	return out, nil
}
