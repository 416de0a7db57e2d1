package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"rentledger/internal/models"
)

type HistoryTestSuite struct {
	suite.Suite
	store   *Store
	history *History
	ctx     context.Context
}

func (suite *HistoryTestSuite) SetupTest() {
	suite.store = New(newFakeGateway(), zerolog.Nop())
	suite.ctx = context.Background()
	suite.Require().NoError(suite.store.Init(suite.ctx))
	suite.history = NewHistory(suite.store, 3)
}

func (suite *HistoryTestSuite) TestUndoEmptyStack() {
	restored, err := suite.history.Undo(suite.ctx)
	suite.NoError(err)
	suite.False(restored)
}

func (suite *HistoryTestSuite) TestCheckpointAndUndo() {
	_, err := suite.store.AddProperty(suite.ctx, models.Property{Name: "kept"})
	suite.Require().NoError(err)

	suite.history.Checkpoint()
	_, err = suite.store.AddProperty(suite.ctx, models.Property{Name: "discarded"})
	suite.Require().NoError(err)
	suite.Require().Len(suite.store.Properties(), 2)

	restored, err := suite.history.Undo(suite.ctx)
	suite.Require().NoError(err)
	suite.True(restored)
	suite.Zero(suite.history.Depth())

	props := suite.store.Properties()
	suite.Require().Len(props, 1)
	suite.Equal("kept", props[0].Name)
}

func (suite *HistoryTestSuite) TestStackBoundedByLimit() {
	for i := 0; i < 5; i++ {
		suite.history.Checkpoint()
	}
	suite.Equal(3, suite.history.Depth())
}

func (suite *HistoryTestSuite) TestClear() {
	suite.history.Checkpoint()
	suite.history.Checkpoint()
	suite.history.Clear()
	suite.Zero(suite.history.Depth())
}

func TestHistoryTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryTestSuite))
}
