package audit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/marketplace/internal/logging"
	"github.com/BruksfildServices01/marketplace/internal/models"
	"github.com/BruksfildServices01/marketplace/internal/testutil"
)

func TestDispatcherWritesEvents(t *testing.T) {
	db := testutil.NewDB(t)
	d := NewDispatcher(New(db), logging.Discard())

	d.Dispatch(Event{
		ActorID:  ID(3),
		Action:   ActionProductSold,
		Entity:   "sale",
		EntityID: ID(11),
		Metadata: map[string]any{"product_id": 5},
	})
	d.Dispatch(Event{Action: ActionUserRegistered, Entity: "user"})
	d.Close()

	var logs []models.AuditLog
	require.NoError(t, db.Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 2)

	assert.Equal(t, ActionProductSold, logs[0].Action)
	require.NotNil(t, logs[0].ActorID)
	assert.Equal(t, uint(3), *logs[0].ActorID)
	require.NotNil(t, logs[0].EntityID)
	assert.Equal(t, uint(11), *logs[0].EntityID)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(logs[0].Metadata, &meta))
	assert.EqualValues(t, 5, meta["product_id"])

	assert.Nil(t, logs[1].ActorID)
}

func TestDispatcherAfterClose(t *testing.T) {
	db := testutil.NewDB(t)
	d := NewDispatcher(New(db), logging.Discard())
	d.Close()
	d.Close()

	d.Dispatch(Event{Action: ActionSellerDeleted})

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNilDispatcher(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionSellerCreated})
		d.Close()
	})
}
