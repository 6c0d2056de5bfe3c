package notify

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/models"
)

func TestAssetAssignmentChangeNotifiesLinkedUser(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	empID, empUserID := dir.linkEmployee()
	cur := models.Asset{ID: uuid.New(), AssetTag: "LT-0042", Name: "ThinkPad", AssignedTo: &empID}

	n.AssetChanged(context.Background(), OpUpdate, cur, &models.Asset{ID: cur.ID}, nil)

	require.Len(t, out.sent, 1)
	assert.Equal(t, empUserID, out.sent[0].UserID)
	assert.Equal(t, TypeAssetAssigned, out.sent[0].Msg.Type)
	assert.Contains(t, out.sent[0].Msg.Body, "LT-0042")
}

func TestAssetAssignmentToUnlinkedEmployeeSilent(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	empID := dir.unlinkedEmployee()
	cur := models.Asset{ID: uuid.New(), AssetTag: "MN-0007", Name: "Monitor", AssignedTo: &empID}

	n.AssetChanged(context.Background(), OpCreate, cur, nil, nil)

	assert.Empty(t, out.sent)
}

func TestAssetCheckOutNotifiesEmployee(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	empID, empUserID := dir.linkEmployee()
	prev := models.Asset{ID: uuid.New(), AssetTag: "LT-0101", Name: "MacBook"}
	cur := prev
	cur.AssignedTo = &empID
	cur.Status = "Assigned"

	n.AssetChanged(context.Background(), OpCheckOut, cur, &prev, nil)

	// Assignment changed and a checkout happened: two messages, both to the
	// same linked user.
	require.Len(t, out.sent, 2)
	assert.Equal(t, TypeAssetAssigned, out.sent[0].Msg.Type)
	assert.Equal(t, TypeAssetCheckedOut, out.sent[1].Msg.Type)
	for _, s := range out.sent {
		assert.Equal(t, empUserID, s.UserID)
	}
}

func TestAssetCheckOutWithoutAssigneeSilent(t *testing.T) {
	t.Parallel()
	out := &fakeDeliverer{}
	n := newTestNotifier(newFakeDirectory(), out)

	cur := models.Asset{ID: uuid.New(), AssetTag: "KB-0001", Name: "Keyboard"}

	n.AssetChanged(context.Background(), OpCheckOut, cur, &models.Asset{ID: cur.ID}, nil)

	assert.Empty(t, out.sent)
}

func TestAssetCheckInUsesPreviousAssignee(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	empID, empUserID := dir.linkEmployee()
	prev := models.Asset{ID: uuid.New(), AssetTag: "LT-0042", Name: "ThinkPad", AssignedTo: &empID, Status: "Assigned"}
	cur := prev
	cur.AssignedTo = nil
	cur.Status = "Available"

	n.AssetChanged(context.Background(), OpCheckIn, cur, &prev, nil)

	require.Len(t, out.sent, 1)
	assert.Equal(t, empUserID, out.sent[0].UserID)
	assert.Equal(t, TypeAssetCheckedIn, out.sent[0].Msg.Type)
}

func TestAssetLookupFailureSwallowed(t *testing.T) {
	t.Parallel()
	dir := newFakeDirectory()
	dir.employeeErr = errLookup
	out := &fakeDeliverer{}
	n := newTestNotifier(dir, out)

	empID := uuid.New()
	cur := models.Asset{ID: uuid.New(), AssetTag: "LT-0001", Name: "Laptop", AssignedTo: &empID}

	n.AssetChanged(context.Background(), OpCheckOut, cur, &models.Asset{ID: cur.ID}, nil)

	assert.Empty(t, out.sent)
}
