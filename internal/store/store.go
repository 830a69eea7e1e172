package store

import (
	"time"

	"github.com/imrishuroy/go-care-resolution/internal/aws"
)

// Tables names the DynamoDB tables the store operates on.
type Tables struct {
	Customers   string
	Orders      string
	Payments    string
	Escalations string
}

// CustomerIndexName is the GSI on customer_id used by per-customer queries
// against the orders and payments tables.
const CustomerIndexName = "customer-index"

// Store encapsulates operations on the customer/order/payment tables and the
// append-only escalation log.
type Store struct {
	client  aws.DynamoDBAPI
	tables  Tables
	nowFunc func() time.Time
}

// NewStore creates a new Store bound to the given tables.
func NewStore(client aws.DynamoDBAPI, tables Tables) *Store {
	return &Store{
		client:  client,
		tables:  tables,
		nowFunc: time.Now,
	}
}
