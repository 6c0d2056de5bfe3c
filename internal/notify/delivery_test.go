package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/models"
)

type fakeNotifRepo struct {
	rows      []*models.Notification
	createErr error
}

func (f *fakeNotifRepo) Create(_ context.Context, n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	n.ID = uuid.New()
	f.rows = append(f.rows, n)
	return nil
}

func (f *fakeNotifRepo) ListByUser(_ context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, int, error) {
	var out []models.Notification
	for _, n := range f.rows {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, len(out), nil
}

func (f *fakeNotifRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error { return nil }
func (f *fakeNotifRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error  { return nil }

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserRepo) Create(_ context.Context, email, name, role, hash string) (*models.User, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, string, error) {
	return nil, "", nil
}
func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) List(_ context.Context, q, role string, active *bool, limit, offset int) ([]models.User, int, error) {
	var out []models.User
	for _, u := range f.users {
		if role != "" && u.Role != role {
			continue
		}
		if active != nil && u.Active != *active {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}
func (f *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role string) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) UpdateBasic(_ context.Context, id uuid.UUID, name string) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	return nil
}
func (f *fakeUserRepo) FirstActiveAdminID(_ context.Context) (uuid.UUID, error) {
	return uuid.UUID{}, errors.New("no admin")
}

type fakePusher struct {
	pushed []uuid.UUID
}

func (f *fakePusher) Push(userID uuid.UUID, _ any) { f.pushed = append(f.pushed, userID) }

type fakeMailer struct {
	to      []string
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.to = append(f.to, to)
	return nil
}

func testMessage() Message {
	return Message{
		Type:       TypeTicketAssigned,
		Title:      "Ticket assigned to you",
		Body:       "Ticket \"X\" was assigned to you.",
		EntityKind: "ticket",
		EntityID:   uuid.New(),
	}
}

func TestDeliveryPersistsAndPushes(t *testing.T) {
	t.Parallel()
	repo := &fakeNotifRepo{}
	uid := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*models.User{
		uid: {ID: uid, Email: "dana@example.com", Active: true},
	}}
	push := &fakePusher{}
	mail := &fakeMailer{}
	d := NewDelivery(repo, users, push, mail, nil, zerolog.Nop())

	err := d.Notify(context.Background(), uid, testMessage())
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, uid, repo.rows[0].UserID)
	assert.Equal(t, TypeTicketAssigned, repo.rows[0].Type)
	assert.Equal(t, []uuid.UUID{uid}, push.pushed)
	assert.Equal(t, []string{"dana@example.com"}, mail.to)
}

func TestDeliveryPersistFailureReturned(t *testing.T) {
	t.Parallel()
	repo := &fakeNotifRepo{createErr: errLookup}
	push := &fakePusher{}
	d := NewDelivery(repo, &fakeUserRepo{}, push, nil, nil, zerolog.Nop())

	err := d.Notify(context.Background(), uuid.New(), testMessage())
	require.Error(t, err)

	// Nothing was pushed for a row that never existed.
	assert.Empty(t, push.pushed)
}

func TestDeliveryMailFailureSwallowed(t *testing.T) {
	t.Parallel()
	repo := &fakeNotifRepo{}
	uid := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*models.User{
		uid: {ID: uid, Email: "dana@example.com"},
	}}
	mail := &fakeMailer{sendErr: errLookup}
	d := NewDelivery(repo, users, nil, mail, nil, zerolog.Nop())

	err := d.Notify(context.Background(), uid, testMessage())
	require.NoError(t, err)
	assert.Len(t, repo.rows, 1)
}

func TestDeliveryNilLegsSkipped(t *testing.T) {
	t.Parallel()
	repo := &fakeNotifRepo{}
	d := NewDelivery(repo, &fakeUserRepo{users: map[uuid.UUID]*models.User{}}, nil, nil, nil, zerolog.Nop())

	err := d.Notify(context.Background(), uuid.New(), testMessage())
	require.NoError(t, err)
	assert.Len(t, repo.rows, 1)
}

func TestNotifyRoleFansOutToActiveUsers(t *testing.T) {
	t.Parallel()
	repo := &fakeNotifRepo{}
	admin := uuid.New()
	inactive := uuid.New()
	manager := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*models.User{
		admin:    {ID: admin, Role: "admin", Active: true},
		inactive: {ID: inactive, Role: "admin", Active: false},
		manager:  {ID: manager, Role: "manager", Active: true},
	}}
	d := NewDelivery(repo, users, nil, nil, nil, zerolog.Nop())

	err := d.NotifyRole(context.Background(), "admin", testMessage())
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, admin, repo.rows[0].UserID)
}

func TestAnnounceReachesAdminsAndManagers(t *testing.T) {
	t.Parallel()
	repo := &fakeNotifRepo{}
	admin := uuid.New()
	manager := uuid.New()
	user := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*models.User{
		admin:   {ID: admin, Role: "admin", Active: true},
		manager: {ID: manager, Role: "manager", Active: true},
		user:    {ID: user, Role: "user", Active: true},
	}}
	d := NewDelivery(repo, users, nil, nil, nil, zerolog.Nop())

	err := d.Announce(context.Background(), testMessage())
	require.NoError(t, err)

	require.Len(t, repo.rows, 2)
	got := map[uuid.UUID]bool{}
	for _, n := range repo.rows {
		got[n.UserID] = true
	}
	assert.True(t, got[admin])
	assert.True(t, got[manager])
	assert.False(t, got[user])
}
