// Package postgresgw persists the collection set in Postgres for setups
// that point the ledger at a server database instead of the embedded file.
package postgresgw

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentledger/internal/gateway"
	"rentledger/internal/models"
)

// DB is the subset of pgxpool.Pool the gateway needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// executor is what Exec/Query-level helpers need; both DB and pgx.Tx
// provide it.
type executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type pgGateway struct {
	db DB
}

// Open connects to Postgres and bootstraps the schema.
func Open(ctx context.Context, dsn string) (gateway.Gateway, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}
	g := &pgGateway{db: pool}
	if err := g.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return g, nil
}

// New wraps an existing connection; used by tests with a pgxmock pool.
func New(db DB) gateway.Gateway {
	return &pgGateway{db: db}
}

func (g *pgGateway) ensureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := g.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

func (g *pgGateway) LoadAll(ctx context.Context) (*models.Collections, error) {
	out := models.NewCollections()
	loaders := []func(context.Context, executor, *models.Collections) error{
		loadProperties, loadUnits, loadTenants, loadExpenses, loadPayments,
		loadMaintenance, loadActivityLogs, loadCommunicationLogs,
		loadVendors, loadDocuments,
	}
	for _, load := range loaders {
		if err := load(ctx, g.db, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g *pgGateway) SaveAll(ctx context.Context, c *models.Collections) error {
	tx, err := g.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []gateway.Table{
		gateway.TableDocuments, gateway.TableActivityLogs,
		gateway.TableCommunicationLogs, gateway.TableMaintenance,
		gateway.TablePayments, gateway.TableExpenses, gateway.TableTenants,
		gateway.TableUnits, gateway.TableProperties, gateway.TableVendors,
	}
	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return err
		}
	}

	for i := range c.Properties {
		if err := upsertProperty(ctx, tx, &c.Properties[i]); err != nil {
			return err
		}
	}
	for i := range c.Units {
		if err := upsertUnit(ctx, tx, &c.Units[i]); err != nil {
			return err
		}
	}
	for i := range c.Tenants {
		if err := upsertTenant(ctx, tx, &c.Tenants[i]); err != nil {
			return err
		}
	}
	for i := range c.Expenses {
		if err := upsertExpense(ctx, tx, &c.Expenses[i]); err != nil {
			return err
		}
	}
	for i := range c.Payments {
		if err := upsertPayment(ctx, tx, &c.Payments[i]); err != nil {
			return err
		}
	}
	for i := range c.Maintenance {
		if err := upsertMaintenance(ctx, tx, &c.Maintenance[i]); err != nil {
			return err
		}
	}
	for i := range c.ActivityLogs {
		if err := upsertActivityLog(ctx, tx, &c.ActivityLogs[i]); err != nil {
			return err
		}
	}
	for i := range c.CommunicationLogs {
		if err := upsertCommunicationLog(ctx, tx, &c.CommunicationLogs[i]); err != nil {
			return err
		}
	}
	for i := range c.Vendors {
		if err := upsertVendor(ctx, tx, &c.Vendors[i]); err != nil {
			return err
		}
	}
	for i := range c.Documents {
		if err := upsertDocument(ctx, tx, &c.Documents[i]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (g *pgGateway) BatchApply(ctx context.Context, ops []gateway.Operation) error {
	if len(ops) == 0 {
		return nil
	}
	tx, err := g.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, op := range ops {
		switch op.Kind {
		case gateway.OpUpsert:
			if err := applyUpsert(ctx, tx, op); err != nil {
				return err
			}
		case gateway.OpDelete:
			if len(op.IDs) == 0 {
				continue
			}
			query := fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1)", op.Table)
			if _, err := tx.Exec(ctx, query, op.IDs); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown operation kind %q", op.Kind)
		}
	}
	return tx.Commit(ctx)
}

func (g *pgGateway) Close() error {
	g.db.Close()
	return nil
}

func applyUpsert(ctx context.Context, tx executor, op gateway.Operation) error {
	switch rec := op.Record.(type) {
	case *models.Property:
		return upsertProperty(ctx, tx, rec)
	case *models.Unit:
		return upsertUnit(ctx, tx, rec)
	case *models.Tenant:
		return upsertTenant(ctx, tx, rec)
	case *models.Expense:
		return upsertExpense(ctx, tx, rec)
	case *models.Payment:
		return upsertPayment(ctx, tx, rec)
	case *models.MaintenanceRequest:
		return upsertMaintenance(ctx, tx, rec)
	case *models.ActivityLog:
		return upsertActivityLog(ctx, tx, rec)
	case *models.CommunicationLog:
		return upsertCommunicationLog(ctx, tx, rec)
	case *models.Vendor:
		return upsertVendor(ctx, tx, rec)
	case *models.Document:
		return upsertDocument(ctx, tx, rec)
	default:
		return fmt.Errorf("unsupported record type %T for table %s", op.Record, op.Table)
	}
}
