package notify

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeFromRecordCamelCase(t *testing.T) {
	t.Parallel()
	uid := uuid.New()
	e := EmployeeFromRecord(map[string]any{
		"name":       "Dana Reyes",
		"email":      "dana@example.com",
		"department": "Finance",
		"position":   "Analyst",
		"status":     "active",
		"userId":     uid.String(),
	})

	assert.Equal(t, "Dana Reyes", e.Name)
	assert.Equal(t, "Finance", e.Department)
	require.NotNil(t, e.UserID)
	assert.Equal(t, uid, *e.UserID)
}

func TestEmployeeFromRecordSnakeCase(t *testing.T) {
	t.Parallel()
	uid := uuid.New()
	e := EmployeeFromRecord(map[string]any{
		"name":    "Sam Okafor",
		"user_id": uid.String(),
	})

	require.NotNil(t, e.UserID)
	assert.Equal(t, uid, *e.UserID)
}

func TestEmployeeFromRecordBadUUID(t *testing.T) {
	t.Parallel()
	e := EmployeeFromRecord(map[string]any{
		"name":   "Sam Okafor",
		"userId": "not-a-uuid",
	})

	assert.Nil(t, e.UserID)
}

func TestAssetFromRecordKeyVariants(t *testing.T) {
	t.Parallel()
	eid := uuid.New()

	for _, key := range []string{"assignedTo", "assigned_to", "assignedEmployeeId", "assigned_employee_id"} {
		a := AssetFromRecord(map[string]any{
			"asset_tag": "LT-0042",
			"name":      "ThinkPad",
			key:         eid.String(),
		})
		require.NotNil(t, a.AssignedTo, "key %s", key)
		assert.Equal(t, eid, *a.AssignedTo, "key %s", key)
		assert.Equal(t, "LT-0042", a.AssetTag)
	}
}

func TestAssetFromRecordUUIDValue(t *testing.T) {
	t.Parallel()
	eid := uuid.New()
	a := AssetFromRecord(map[string]any{
		"assetTag":   "MN-1",
		"name":       "Monitor",
		"assignedTo": eid,
	})

	require.NotNil(t, a.AssignedTo)
	assert.Equal(t, eid, *a.AssignedTo)
}

func TestRecordTrimsWhitespace(t *testing.T) {
	t.Parallel()
	e := EmployeeFromRecord(map[string]any{
		"name":  "  Dana Reyes  ",
		"email": " dana@example.com ",
	})

	assert.Equal(t, "Dana Reyes", e.Name)
	assert.Equal(t, "dana@example.com", e.Email)
}
