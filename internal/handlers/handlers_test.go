package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"rentledger/internal/caching"
	"rentledger/internal/documents"
	"rentledger/internal/gateway"
	"rentledger/internal/metrics"
	"rentledger/internal/middleware"
	"rentledger/internal/models"
	"rentledger/internal/store"
)

// memGateway accepts every batch without persisting anything, enough to
// drive the store through the HTTP surface.
type memGateway struct {
	data *models.Collections
}

func (g *memGateway) LoadAll(context.Context) (*models.Collections, error) {
	return g.data.Clone(), nil
}

func (g *memGateway) SaveAll(_ context.Context, c *models.Collections) error {
	g.data = c.Clone()
	return nil
}

func (g *memGateway) BatchApply(context.Context, []gateway.Operation) error { return nil }

func (g *memGateway) Close() error { return nil }

type HandlersTestSuite struct {
	suite.Suite
	e       *echo.Echo
	store   *store.Store
	history *store.History
	token   string
	ctx     context.Context
}

func (suite *HandlersTestSuite) SetupTest() {
	st := store.New(&memGateway{data: models.NewCollections()}, zerolog.Nop())
	suite.ctx = context.Background()
	suite.Require().NoError(st.Init(suite.ctx))
	suite.store = st
	suite.history = store.NewHistory(st, 5)

	blobs, err := documents.NewFSBlobStore(suite.T().TempDir())
	suite.Require().NoError(err)

	secret, err := middleware.NewSecret()
	suite.Require().NoError(err)
	suite.token, err = middleware.MintToken(secret, time.Hour)
	suite.Require().NoError(err)

	suite.e = echo.New()
	Register(suite.e, Deps{
		Store:       st,
		History:     suite.history,
		Metrics:     metrics.NewService(st, caching.NewMemoryCacheService(), zerolog.Nop()),
		Blobs:       blobs,
		Logger:      zerolog.Nop(),
		TokenSecret: secret,
	})
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+suite.token)
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func (suite *HandlersTestSuite) decode(rec *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out))
}

func (suite *HandlersTestSuite) TestCreateAndGetProperty() {
	rec := suite.do(http.MethodPost, "/v1/properties", models.Property{Name: "1 Main", AddressLine1: "1 Main St", City: "Springfield"})
	suite.Require().Equal(http.StatusCreated, rec.Code)
	var created models.Property
	suite.decode(rec, &created)
	suite.NotEqual(uuid.Nil, created.ID)

	rec = suite.do(http.MethodGet, "/v1/properties/"+created.ID.String(), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var fetched models.Property
	suite.decode(rec, &fetched)
	suite.Equal(created.ID, fetched.ID)

	rec = suite.do(http.MethodGet, "/v1/properties/"+uuid.NewString(), nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlersTestSuite) TestCreatePropertyRequiresName() {
	rec := suite.do(http.MethodPost, "/v1/properties", models.Property{AddressLine1: "1 Main St"})
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) TestInvalidIDIsBadRequest() {
	rec := suite.do(http.MethodGet, "/v1/properties/not-a-uuid", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

// Updating a missing record is 404; deleting one is an idempotent 204.
func (suite *HandlersTestSuite) TestMissingRecordStatusMapping() {
	rec := suite.do(http.MethodPatch, "/v1/properties/"+uuid.NewString(), map[string]any{"name": "renamed"})
	suite.Equal(http.StatusNotFound, rec.Code)

	rec = suite.do(http.MethodDelete, "/v1/properties/"+uuid.NewString(), nil)
	suite.Equal(http.StatusNoContent, rec.Code)
}

func (suite *HandlersTestSuite) TestRequestWithoutTokenRejected() {
	req := httptest.NewRequest(http.MethodGet, "/v1/properties", nil)
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) TestHealthIsOpen() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	suite.Equal(http.StatusOK, rec.Code)
}

// Every mutation checkpoints first, so a single undo rolls it back.
func (suite *HandlersTestSuite) TestMutationCheckpointsAndUndoRollsBack() {
	rec := suite.do(http.MethodPost, "/v1/properties", models.Property{Name: "1 Main", AddressLine1: "1 Main St", City: "Springfield"})
	suite.Require().Equal(http.StatusCreated, rec.Code)
	suite.Equal(1, suite.history.Depth())

	rec = suite.do(http.MethodPost, "/v1/undo", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var res map[string]any
	suite.decode(rec, &res)
	suite.Equal(true, res["restored"])
	suite.Empty(suite.store.Properties())
}

func (suite *HandlersTestSuite) TestUndoOnEmptyStackReportsNothingRestored() {
	rec := suite.do(http.MethodPost, "/v1/undo", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var res map[string]any
	suite.decode(rec, &res)
	suite.Equal(false, res["restored"])
}

func (suite *HandlersTestSuite) TestClearUndoDropsCheckpoints() {
	rec := suite.do(http.MethodPost, "/v1/properties", models.Property{Name: "1 Main", AddressLine1: "1 Main St", City: "Springfield"})
	suite.Require().Equal(http.StatusCreated, rec.Code)
	suite.Equal(1, suite.history.Depth())

	rec = suite.do(http.MethodDelete, "/v1/undo", nil)
	suite.Equal(http.StatusNoContent, rec.Code)
	suite.Equal(0, suite.history.Depth())
}

func (suite *HandlersTestSuite) TestStateExportImportRoundTrip() {
	rec := suite.do(http.MethodPost, "/v1/properties", models.Property{Name: "1 Main", AddressLine1: "1 Main St", City: "Springfield"})
	suite.Require().Equal(http.StatusCreated, rec.Code)

	rec = suite.do(http.MethodGet, "/v1/state", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var state models.Collections
	suite.decode(rec, &state)
	suite.Len(state.Properties, 1)

	// Importing an empty payload deletes everything, but checkpoints first.
	rec = suite.do(http.MethodPost, "/v1/state/import", models.NewCollections())
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Empty(suite.store.Properties())

	rec = suite.do(http.MethodPost, "/v1/undo", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Len(suite.store.Properties(), 1)
}

func (suite *HandlersTestSuite) TestSweepEndpointGeneratesAutopayPayments() {
	prop, err := suite.store.AddProperty(suite.ctx, models.Property{Name: "1 Main"})
	suite.Require().NoError(err)
	unit, err := suite.store.AddUnit(suite.ctx, models.Unit{
		PropertyID:  prop.ID,
		UnitNumber:  "A",
		MonthlyRent: decimal.NewFromInt(900),
	})
	suite.Require().NoError(err)
	_, err = suite.store.AddTenant(suite.ctx, models.Tenant{
		UnitID:      unit.ID,
		FirstName:   "Grace",
		LastName:    "Hopper",
		LeaseStart:  time.Now().UTC().AddDate(0, -2, 0),
		LeaseEnd:    time.Now().UTC().AddDate(1, 0, 0),
		MonthlyRent: decimal.NewFromInt(900),
		Autopay:     true,
	})
	suite.Require().NoError(err)

	rec := suite.do(http.MethodPost, "/v1/sweep", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var res store.SweepResult
	suite.decode(rec, &res)
	suite.False(res.Skipped)
	suite.GreaterOrEqual(res.PaymentsCreated, 1)
	suite.NotEmpty(suite.store.Payments())
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
