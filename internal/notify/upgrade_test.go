package notify

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/models"
)

func TestUpgradeRequestAnnounced(t *testing.T) {
	t.Parallel()
	out := &fakeDeliverer{}
	n := newTestNotifier(newFakeDirectory(), out)

	u := models.Upgrade{ID: uuid.New(), AssetID: uuid.New(), RequestedBy: uuid.New(), Title: "More RAM"}

	n.UpgradeEvent(context.Background(), OpRequest, u, "", nil)

	require.Len(t, out.announced, 1)
	assert.Equal(t, TypeUpgradeRequested, out.announced[0].Type)
	assert.Empty(t, out.sent)
}

func TestUpgradeApprovedNotifiesRequester(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	empID, empUserID := dir.linkEmployee()
	assetID := uuid.New()
	dir.assets[assetID] = &models.Asset{ID: assetID, AssetTag: "WS-77", Name: "Workstation"}

	u := models.Upgrade{ID: uuid.New(), AssetID: assetID, RequestedBy: empID, Title: "SSD swap"}

	n.UpgradeEvent(context.Background(), OpDecision, u, "approved", nil)

	require.Len(t, out.sent, 1)
	assert.Equal(t, empUserID, out.sent[0].UserID)
	assert.Equal(t, TypeUpgradeApproved, out.sent[0].Msg.Type)
	assert.Contains(t, out.sent[0].Msg.Body, "WS-77")
}

func TestUpgradeRejectedNotifiesRequester(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	empID, _ := dir.linkEmployee()
	u := models.Upgrade{ID: uuid.New(), AssetID: uuid.New(), RequestedBy: empID, Title: "GPU"}

	// Asset lookup misses; the message falls back to a generic name.
	n.UpgradeEvent(context.Background(), OpDecision, u, "rejected", nil)

	require.Len(t, out.sent, 1)
	assert.Equal(t, TypeUpgradeRejected, out.sent[0].Msg.Type)
	assert.Contains(t, out.sent[0].Msg.Body, "the asset")
}

func TestUpgradeDecisionUnlinkedRequesterSilent(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	empID := dir.unlinkedEmployee()
	u := models.Upgrade{ID: uuid.New(), AssetID: uuid.New(), RequestedBy: empID, Title: "Dock"}

	n.UpgradeEvent(context.Background(), OpDecision, u, "approved", nil)

	assert.Empty(t, out.sent)
}

func TestUpgradeAnnounceFailureSwallowed(t *testing.T) {
	t.Parallel()
	out := &fakeDeliverer{announceErr: errLookup}
	n := newTestNotifier(newFakeDirectory(), out)

	u := models.Upgrade{ID: uuid.New(), AssetID: uuid.New(), RequestedBy: uuid.New(), Title: "RAM"}

	n.UpgradeEvent(context.Background(), OpRequest, u, "", nil)

	assert.Empty(t, out.announced)
}
