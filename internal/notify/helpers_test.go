package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"assetdesk/internal/models"
)

var errLookup = errors.New("lookup failed")

// fakeDirectory serves employees and assets from maps; unknown ids resolve
// to nil without error, matching the repository contract.
type fakeDirectory struct {
	employees map[uuid.UUID]*models.Employee
	assets    map[uuid.UUID]*models.Asset

	employeeErr error
	assetErr    error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		employees: map[uuid.UUID]*models.Employee{},
		assets:    map[uuid.UUID]*models.Asset{},
	}
}

func (f *fakeDirectory) EmployeeByID(_ context.Context, id uuid.UUID) (*models.Employee, error) {
	if f.employeeErr != nil {
		return nil, f.employeeErr
	}
	return f.employees[id], nil
}

func (f *fakeDirectory) AssetByID(_ context.Context, id uuid.UUID) (*models.Asset, error) {
	if f.assetErr != nil {
		return nil, f.assetErr
	}
	return f.assets[id], nil
}

type sentMsg struct {
	UserID uuid.UUID
	Msg    Message
}

// fakeDeliverer records every delivery call and can fail on demand.
type fakeDeliverer struct {
	sent      []sentMsg
	roles     []string
	announced []Message

	notifyErr   error
	announceErr error
}

func (f *fakeDeliverer) Notify(_ context.Context, userID uuid.UUID, msg Message) error {
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.sent = append(f.sent, sentMsg{UserID: userID, Msg: msg})
	return nil
}

func (f *fakeDeliverer) NotifyRole(_ context.Context, role string, msg Message) error {
	f.roles = append(f.roles, role)
	f.sent = append(f.sent, sentMsg{Msg: msg})
	return nil
}

func (f *fakeDeliverer) Announce(_ context.Context, msg Message) error {
	if f.announceErr != nil {
		return f.announceErr
	}
	f.announced = append(f.announced, msg)
	return nil
}

// linkEmployee registers an employee with a linked user account and returns
// both ids.
func (f *fakeDirectory) linkEmployee() (empID, userID uuid.UUID) {
	empID = uuid.New()
	userID = uuid.New()
	f.employees[empID] = &models.Employee{ID: empID, Name: "Dana Reyes", UserID: &userID}
	return empID, userID
}

// unlinkedEmployee registers an employee without a login account.
func (f *fakeDirectory) unlinkedEmployee() uuid.UUID {
	id := uuid.New()
	f.employees[id] = &models.Employee{ID: id, Name: "Sam Okafor"}
	return id
}
