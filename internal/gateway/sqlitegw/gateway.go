// Package sqlitegw persists the collection set in an embedded SQLite file.
// This is the default backend for the desktop host process.
package sqlitegw

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"rentledger/internal/gateway"
	"rentledger/internal/models"
)

type sqliteGateway struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// migrates the schema. A failure here surfaces as gateway.ErrUnavailable so
// the store treats it as a fatal initialization error.
func Open(path string) (gateway.Gateway, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}
	if err := db.AutoMigrate(allRowModels()...); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &sqliteGateway{db: db}, nil
}

func (g *sqliteGateway) LoadAll(ctx context.Context) (*models.Collections, error) {
	db := g.db.WithContext(ctx)
	out := models.NewCollections()

	var properties []propertyRow
	if err := db.Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	for _, r := range properties {
		out.Properties = append(out.Properties, fromPropertyRow(r))
	}

	var units []unitRow
	if err := db.Find(&units).Error; err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	for _, r := range units {
		out.Units = append(out.Units, fromUnitRow(r))
	}

	var tenants []tenantRow
	if err := db.Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("load tenants: %w", err)
	}
	for _, r := range tenants {
		out.Tenants = append(out.Tenants, fromTenantRow(r))
	}

	var expenses []expenseRow
	if err := db.Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	for _, r := range expenses {
		out.Expenses = append(out.Expenses, fromExpenseRow(r))
	}

	var payments []paymentRow
	if err := db.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	for _, r := range payments {
		out.Payments = append(out.Payments, fromPaymentRow(r))
	}

	var maintenance []maintenanceRow
	if err := db.Find(&maintenance).Error; err != nil {
		return nil, fmt.Errorf("load maintenance requests: %w", err)
	}
	for _, r := range maintenance {
		out.Maintenance = append(out.Maintenance, fromMaintenanceRow(r))
	}

	var activity []activityLogRow
	if err := db.Find(&activity).Error; err != nil {
		return nil, fmt.Errorf("load activity logs: %w", err)
	}
	for _, r := range activity {
		out.ActivityLogs = append(out.ActivityLogs, fromActivityLogRow(r))
	}

	var comms []communicationLogRow
	if err := db.Find(&comms).Error; err != nil {
		return nil, fmt.Errorf("load communication logs: %w", err)
	}
	for _, r := range comms {
		out.CommunicationLogs = append(out.CommunicationLogs, fromCommunicationLogRow(r))
	}

	var vendors []vendorRow
	if err := db.Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("load vendors: %w", err)
	}
	for _, r := range vendors {
		out.Vendors = append(out.Vendors, fromVendorRow(r))
	}

	var documents []documentRow
	if err := db.Find(&documents).Error; err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	for _, r := range documents {
		out.Documents = append(out.Documents, fromDocumentRow(r))
	}

	return out, nil
}

func (g *sqliteGateway) SaveAll(ctx context.Context, c *models.Collections) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range allRowModels() {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		for _, v := range c.Properties {
			if err := tx.Create(ptr(toPropertyRow(v))).Error; err != nil {
				return err
			}
		}
		for _, v := range c.Units {
			if err := tx.Create(ptr(toUnitRow(v))).Error; err != nil {
				return err
			}
		}
		for _, v := range c.Tenants {
			if err := tx.Create(ptr(toTenantRow(v))).Error; err != nil {
				return err
			}
		}
		for _, v := range c.Expenses {
			if err := tx.Create(ptr(toExpenseRow(v))).Error; err != nil {
				return err
			}
		}
		for _, v := range c.Payments {
			if err := tx.Create(ptr(toPaymentRow(v))).Error; err != nil {
				return err
			}
		}
		for _, v := range c.Maintenance {
			if err := tx.Create(ptr(toMaintenanceRow(v))).Error; err != nil {
				return err
			}
		}
		for _, v := range c.ActivityLogs {
			if err := tx.Create(ptr(toActivityLogRow(v))).Error; err != nil {
				return err
			}
		}
		for _, v := range c.CommunicationLogs {
			if err := tx.Create(ptr(toCommunicationLogRow(v))).Error; err != nil {
				return err
			}
		}
		for _, v := range c.Vendors {
			if err := tx.Create(ptr(toVendorRow(v))).Error; err != nil {
				return err
			}
		}
		for _, v := range c.Documents {
			if err := tx.Create(ptr(toDocumentRow(v))).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *sqliteGateway) BatchApply(ctx context.Context, ops []gateway.Operation) error {
	if len(ops) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			switch op.Kind {
			case gateway.OpUpsert:
				row, err := rowForRecord(op)
				if err != nil {
					return err
				}
				if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error; err != nil {
					return err
				}
			case gateway.OpDelete:
				if len(op.IDs) == 0 {
					continue
				}
				model, err := modelForTable(op.Table)
				if err != nil {
					return err
				}
				if err := tx.Where("id IN ?", op.IDs).Delete(model).Error; err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown operation kind %q", op.Kind)
			}
		}
		return nil
	})
}

func (g *sqliteGateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func rowForRecord(op gateway.Operation) (any, error) {
	switch rec := op.Record.(type) {
	case *models.Property:
		return ptr(toPropertyRow(*rec)), nil
	case *models.Unit:
		return ptr(toUnitRow(*rec)), nil
	case *models.Tenant:
		return ptr(toTenantRow(*rec)), nil
	case *models.Expense:
		return ptr(toExpenseRow(*rec)), nil
	case *models.Payment:
		return ptr(toPaymentRow(*rec)), nil
	case *models.MaintenanceRequest:
		return ptr(toMaintenanceRow(*rec)), nil
	case *models.ActivityLog:
		return ptr(toActivityLogRow(*rec)), nil
	case *models.CommunicationLog:
		return ptr(toCommunicationLogRow(*rec)), nil
	case *models.Vendor:
		return ptr(toVendorRow(*rec)), nil
	case *models.Document:
		return ptr(toDocumentRow(*rec)), nil
	default:
		return nil, fmt.Errorf("unsupported record type %T for table %s", op.Record, op.Table)
	}
}

func modelForTable(table gateway.Table) (any, error) {
	switch table {
	case gateway.TableProperties:
		return &propertyRow{}, nil
	case gateway.TableUnits:
		return &unitRow{}, nil
	case gateway.TableTenants:
		return &tenantRow{}, nil
	case gateway.TableExpenses:
		return &expenseRow{}, nil
	case gateway.TablePayments:
		return &paymentRow{}, nil
	case gateway.TableMaintenance:
		return &maintenanceRow{}, nil
	case gateway.TableActivityLogs:
		return &activityLogRow{}, nil
	case gateway.TableCommunicationLogs:
		return &communicationLogRow{}, nil
	case gateway.TableVendors:
		return &vendorRow{}, nil
	case gateway.TableDocuments:
		return &documentRow{}, nil
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

func ptr[T any](v T) *T { return &v }
