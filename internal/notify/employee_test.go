package notify

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/models"
)

func TestEmployeeOnboardAnnounced(t *testing.T) {
	t.Parallel()
	out := &fakeDeliverer{}
	n := newTestNotifier(newFakeDirectory(), out)

	e := models.Employee{ID: uuid.New(), Name: "Dana Reyes", Department: "Finance"}

	n.EmployeeEvent(context.Background(), OpOnboard, e)

	require.Len(t, out.announced, 1)
	assert.Equal(t, TypeEmployeeOnboarded, out.announced[0].Type)
	assert.Contains(t, out.announced[0].Body, "Finance")
}

func TestEmployeeOnboardWithoutDepartment(t *testing.T) {
	t.Parallel()
	out := &fakeDeliverer{}
	n := newTestNotifier(newFakeDirectory(), out)

	e := models.Employee{ID: uuid.New(), Name: "Sam Okafor"}

	n.EmployeeEvent(context.Background(), OpOnboard, e)

	require.Len(t, out.announced, 1)
	assert.Equal(t, "Sam Okafor has joined.", out.announced[0].Body)
}

func TestEmployeeOffboardAnnounced(t *testing.T) {
	t.Parallel()
	out := &fakeDeliverer{}
	n := newTestNotifier(newFakeDirectory(), out)

	e := models.Employee{ID: uuid.New(), Name: "Dana Reyes"}

	n.EmployeeEvent(context.Background(), OpOffboard, e)

	require.Len(t, out.announced, 1)
	assert.Equal(t, TypeEmployeeOffboarded, out.announced[0].Type)
}

func TestEmployeeUnknownOpSilent(t *testing.T) {
	t.Parallel()
	out := &fakeDeliverer{}
	n := newTestNotifier(newFakeDirectory(), out)

	n.EmployeeEvent(context.Background(), OpUpdate, models.Employee{ID: uuid.New(), Name: "X"})

	assert.Empty(t, out.announced)
}
