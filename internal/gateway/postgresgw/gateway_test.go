package postgresgw

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"rentledger/internal/gateway"
	"rentledger/internal/models"
)

type PgGatewayTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	gw   gateway.Gateway
	ctx  context.Context
}

func (suite *PgGatewayTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.gw = New(mock)
	suite.ctx = context.Background()
}

func (suite *PgGatewayTestSuite) TearDownTest() {
	suite.mock.Close()
}

func (suite *PgGatewayTestSuite) TestBatchApplyUpsertVendor() {
	vendor := &models.Vendor{
		ID:        uuid.New(),
		Name:      "Ace Plumbing",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO vendors`).
		WithArgs(vendor.ID, vendor.Name, vendor.Specialty, vendor.Phone, vendor.Email, vendor.Notes, vendor.CreatedAt, vendor.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.gw.BatchApply(suite.ctx, []gateway.Operation{
		gateway.Upsert(gateway.TableVendors, vendor),
	})
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PgGatewayTestSuite) TestBatchApplyDelete() {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`DELETE FROM payments WHERE id = ANY\(\$1\)`).
		WithArgs(ids).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectCommit()

	err := suite.gw.BatchApply(suite.ctx, []gateway.Operation{
		gateway.Delete(gateway.TablePayments, ids...),
	})
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PgGatewayTestSuite) TestBatchApplyMixedOpsShareOneTransaction() {
	vendor := &models.Vendor{
		ID:        uuid.New(),
		Name:      "Ace Plumbing",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	deleteID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO vendors`).
		WithArgs(vendor.ID, vendor.Name, vendor.Specialty, vendor.Phone, vendor.Email, vendor.Notes, vendor.CreatedAt, vendor.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`DELETE FROM expenses WHERE id = ANY\(\$1\)`).
		WithArgs([]uuid.UUID{deleteID}).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.gw.BatchApply(suite.ctx, []gateway.Operation{
		gateway.Upsert(gateway.TableVendors, vendor),
		gateway.Delete(gateway.TableExpenses, deleteID),
	})
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PgGatewayTestSuite) TestBatchApplyRollsBackOnFailure() {
	vendor := &models.Vendor{ID: uuid.New(), Name: "Ace Plumbing"}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO vendors`).
		WithArgs(vendor.ID, vendor.Name, vendor.Specialty, vendor.Phone, vendor.Email, vendor.Notes, vendor.CreatedAt, vendor.UpdatedAt).
		WillReturnError(errors.New("connection reset"))
	suite.mock.ExpectRollback()

	err := suite.gw.BatchApply(suite.ctx, []gateway.Operation{
		gateway.Upsert(gateway.TableVendors, vendor),
	})
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PgGatewayTestSuite) TestBatchApplyEmptyIsNoop() {
	err := suite.gw.BatchApply(suite.ctx, nil)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PgGatewayTestSuite) TestLoadAllReadsEveryTable() {
	now := time.Now().UTC()
	vendorID := uuid.New()

	empty := func(cols ...string) *pgxmock.Rows { return pgxmock.NewRows(cols) }

	suite.mock.ExpectQuery(`FROM properties`).WillReturnRows(empty("id"))
	suite.mock.ExpectQuery(`FROM units`).WillReturnRows(empty("id"))
	suite.mock.ExpectQuery(`FROM tenants`).WillReturnRows(empty("id"))
	suite.mock.ExpectQuery(`FROM expenses`).WillReturnRows(empty("id"))
	suite.mock.ExpectQuery(`FROM payments`).WillReturnRows(empty("id"))
	suite.mock.ExpectQuery(`FROM maintenance_requests`).WillReturnRows(empty("id"))
	suite.mock.ExpectQuery(`FROM activity_logs`).WillReturnRows(empty("id"))
	suite.mock.ExpectQuery(`FROM communication_logs`).WillReturnRows(empty("id"))
	suite.mock.ExpectQuery(`FROM vendors`).WillReturnRows(
		pgxmock.NewRows([]string{"id", "name", "specialty", "phone", "email", "notes", "created_at", "updated_at"}).
			AddRow(vendorID, "Ace Plumbing", nil, nil, nil, nil, now, now),
	)
	suite.mock.ExpectQuery(`FROM documents`).WillReturnRows(empty("id"))

	out, err := suite.gw.LoadAll(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), out.Vendors, 1)
	assert.Equal(suite.T(), vendorID, out.Vendors[0].ID)
	assert.Equal(suite.T(), "Ace Plumbing", out.Vendors[0].Name)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PgGatewayTestSuite) TestLoadAllPropagatesQueryError() {
	suite.mock.ExpectQuery(`FROM properties`).WillReturnError(errors.New("relation missing"))

	_, err := suite.gw.LoadAll(suite.ctx)
	assert.Error(suite.T(), err)
}

func TestPgGatewayTestSuite(t *testing.T) {
	suite.Run(t, new(PgGatewayTestSuite))
}
