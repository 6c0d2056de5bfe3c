package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/models"
)

func TestMaintenanceScheduleNotifiesAssignedUser(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	empID, empUserID := dir.linkEmployee()
	asset := &models.Asset{ID: uuid.New(), AssetTag: "SRV-12", Name: "Rack server", AssignedTo: &empID}
	m := models.Maintenance{
		ID:          uuid.New(),
		AssetID:     asset.ID,
		ScheduledAt: time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC),
	}

	n.MaintenanceEvent(context.Background(), OpSchedule, m, asset)

	require.Len(t, out.sent, 1)
	assert.Equal(t, empUserID, out.sent[0].UserID)
	assert.Equal(t, TypeMaintenanceScheduled, out.sent[0].Msg.Type)
	assert.Contains(t, out.sent[0].Msg.Body, "2026-09-14")
}

func TestMaintenanceFetchesAssetWhenAbsent(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	empID, empUserID := dir.linkEmployee()
	assetID := uuid.New()
	dir.assets[assetID] = &models.Asset{ID: assetID, AssetTag: "PRN-3", Name: "Printer", AssignedTo: &empID}

	m := models.Maintenance{ID: uuid.New(), AssetID: assetID}

	n.MaintenanceEvent(context.Background(), OpComplete, m, nil)

	require.Len(t, out.sent, 1)
	assert.Equal(t, empUserID, out.sent[0].UserID)
	assert.Equal(t, TypeMaintenanceCompleted, out.sent[0].Msg.Type)
}

func TestMaintenanceUnassignedAssetSilent(t *testing.T) {
	t.Parallel()
	out := &fakeDeliverer{}
	n := newTestNotifier(newFakeDirectory(), out)

	asset := &models.Asset{ID: uuid.New(), AssetTag: "SW-9", Name: "Switch"}
	m := models.Maintenance{ID: uuid.New(), AssetID: asset.ID, ScheduledAt: time.Now()}

	n.MaintenanceEvent(context.Background(), OpSchedule, m, asset)

	assert.Empty(t, out.sent)
}

func TestMaintenanceAssetLookupFailureSwallowed(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	dir.assetErr = errLookup
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	m := models.Maintenance{ID: uuid.New(), AssetID: uuid.New(), ScheduledAt: time.Now()}

	n.MaintenanceEvent(context.Background(), OpSchedule, m, nil)

	assert.Empty(t, out.sent)
}
