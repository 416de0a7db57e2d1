// Package gateway is the persistence boundary of the store. The store never
// talks SQL; it loads the whole collection set once, then streams batches of
// upsert/delete operations that an implementation must apply atomically.
package gateway

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rentledger/internal/models"
)

// ErrUnavailable reports that the durable store cannot be reached at all.
// During store initialization this is fatal.
var ErrUnavailable = errors.New("persistence gateway unavailable")

// Table names the entity collections as the gateway knows them.
type Table string

const (
	TableProperties        Table = "properties"
	TableUnits             Table = "units"
	TableTenants           Table = "tenants"
	TableExpenses          Table = "expenses"
	TablePayments          Table = "payments"
	TableMaintenance       Table = "maintenance_requests"
	TableActivityLogs      Table = "activity_logs"
	TableCommunicationLogs Table = "communication_logs"
	TableVendors           Table = "vendors"
	TableDocuments         Table = "documents"
)

type OpKind string

const (
	OpUpsert OpKind = "upsert"
	OpDelete OpKind = "delete"
)

// Operation is one element of a batch. Upserts carry the full record in
// Record (a *models.X value for the table); deletes carry row IDs.
type Operation struct {
	Kind   OpKind
	Table  Table
	Record any
	IDs    []uuid.UUID
}

func Upsert(table Table, record any) Operation {
	return Operation{Kind: OpUpsert, Table: table, Record: record}
}

func Delete(table Table, ids ...uuid.UUID) Operation {
	return Operation{Kind: OpDelete, Table: table, IDs: ids}
}

// Gateway is implemented by the durable stores (embedded SQLite by default,
// Postgres optionally) and by test fakes.
type Gateway interface {
	// LoadAll reads the full collection set. It fails with ErrUnavailable
	// when the backing store cannot be opened.
	LoadAll(ctx context.Context) (*models.Collections, error)

	// SaveAll replaces the entire persisted state with the given set in one
	// transaction. Used for snapshot restore and full imports.
	SaveAll(ctx context.Context, c *models.Collections) error

	// BatchApply applies every operation inside a single transaction:
	// either all of them land or none do.
	BatchApply(ctx context.Context, ops []Operation) error

	// Close releases the underlying connection.
	Close() error
}
