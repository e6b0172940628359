package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/invitation"
	"github.com/leavehq/leave-backend-go/internal/domain/level"
)

type stubTxManager struct{}

func (stubTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	nextID    int
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.nextID++
	e.ID = fmt.Sprintf("emp-gen-%d", f.nextID)
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id, clientID string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.ClientID != clientID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, clientID, emailAddr string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ClientID == clientID && e.Email == emailAddr {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByClientID(ctx context.Context, clientID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.ClientID == clientID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetByLevelID(ctx context.Context, levelID, clientID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.ClientID == clientID && e.LevelID != nil && *e.LevelID == levelID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest, clientID string) error {
	e, ok := f.employees[req.ID]
	if !ok || e.ClientID != clientID {
		return employee.ErrEmployeeNotFound
	}
	if req.Firstname != nil {
		e.Firstname = *req.Firstname
	}
	if req.Surname != nil {
		e.Surname = *req.Surname
	}
	if req.JobRole != nil {
		e.JobRole = req.JobRole
	}
	if req.LevelID != nil {
		e.LevelID = req.LevelID
	}
	if req.LineManagerID != nil {
		e.LineManagerID = req.LineManagerID
	}
	if req.RelieverID != nil {
		e.RelieverID = req.RelieverID
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	f.employees[req.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id, clientID string) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) SetOnLeave(ctx context.Context, id string, onLeave bool) error {
	e, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.IsOnLeave = onLeave
	f.employees[id] = e
	return nil
}

func (f *fakeEmployeeRepo) NullifyReferences(ctx context.Context, id, clientID string) error {
	for key, e := range f.employees {
		if e.LineManagerID != nil && *e.LineManagerID == id {
			e.LineManagerID = nil
		}
		if e.RelieverID != nil && *e.RelieverID == id {
			e.RelieverID = nil
		}
		f.employees[key] = e
	}
	return nil
}

func (f *fakeEmployeeRepo) ClearResumedLeaveFlags(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type fakeLevelRepo struct {
	levels map[string]level.Level
}

func (f *fakeLevelRepo) Create(ctx context.Context, l level.Level) (level.Level, error) {
	f.levels[l.ID] = l
	return l, nil
}

func (f *fakeLevelRepo) GetByID(ctx context.Context, id, clientID string) (level.Level, error) {
	l, ok := f.levels[id]
	if !ok || l.ClientID != clientID {
		return level.Level{}, level.ErrLevelNotFound
	}
	return l, nil
}

func (f *fakeLevelRepo) GetByName(ctx context.Context, clientID, name string) (level.Level, error) {
	for _, l := range f.levels {
		if l.ClientID == clientID && l.Name == name {
			return l, nil
		}
	}
	return level.Level{}, level.ErrLevelNotFound
}

func (f *fakeLevelRepo) GetByClientID(ctx context.Context, clientID string) ([]level.Level, error) {
	var out []level.Level
	for _, l := range f.levels {
		if l.ClientID == clientID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLevelRepo) Update(ctx context.Context, req level.UpdateLevelRequest, clientID string) error {
	return nil
}

func (f *fakeLevelRepo) Delete(ctx context.Context, id, clientID string) error {
	delete(f.levels, id)
	return nil
}

func (f *fakeLevelRepo) GetCatalog(ctx context.Context, id, clientID string) ([]level.CatalogEntry, error) {
	return nil, nil
}

type fakeInvitationRepo struct {
	invitations map[string]invitation.Invitation
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	f.invitations[inv.ID] = inv
	return inv, nil
}

func (f *fakeInvitationRepo) GetByToken(ctx context.Context, token string) (invitation.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return invitation.Invitation{}, invitation.ErrInvitationNotFound
}

func (f *fakeInvitationRepo) GetPendingByEmployeeID(ctx context.Context, employeeID, clientID string) (invitation.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.EmployeeID == employeeID && inv.ClientID == clientID && inv.Status == invitation.StatusPending {
			return inv, nil
		}
	}
	return invitation.Invitation{}, invitation.ErrInvitationNotFound
}

func (f *fakeInvitationRepo) MarkAccepted(ctx context.Context, id string) error { return nil }
func (f *fakeInvitationRepo) MarkRevoked(ctx context.Context, id string) error  { return nil }

func (f *fakeInvitationRepo) DeleteByEmployeeID(ctx context.Context, employeeID, clientID string) error {
	for id, inv := range f.invitations {
		if inv.EmployeeID == employeeID && inv.ClientID == clientID {
			delete(f.invitations, id)
		}
	}
	return nil
}

// fakeSeeder stands in for the leave service's ledger side. It tracks one
// balance figure per employee so tests can tell a reseed from a no-op.
type fakeSeeder struct {
	balances map[string]int
	reseeds  int
}

func (f *fakeSeeder) SeedForEmployee(ctx context.Context, employeeID, clientID string, levelID *string) error {
	if levelID != nil {
		f.balances[employeeID] = 10
	}
	return nil
}

func (f *fakeSeeder) ReseedForLevel(ctx context.Context, employeeID, clientID string, levelID *string) error {
	f.reseeds++
	if levelID == nil {
		delete(f.balances, employeeID)
		return nil
	}
	f.balances[employeeID] = 10
	return nil
}

func (f *fakeSeeder) DeleteBalancesForEmployee(ctx context.Context, employeeID, clientID string) error {
	delete(f.balances, employeeID)
	return nil
}

type fakeInvitationSvc struct {
	sentTo []string
}

func (f *fakeInvitationSvc) CreateAndSend(ctx context.Context, employeeID, clientID, email string) (invitation.Invitation, error) {
	f.sentTo = append(f.sentTo, email)
	return invitation.Invitation{EmployeeID: employeeID, ClientID: clientID, Email: email}, nil
}

func (f *fakeInvitationSvc) GetByToken(ctx context.Context, token string) (invitation.InvitationResponse, error) {
	return invitation.InvitationResponse{}, invitation.ErrInvitationNotFound
}

func (f *fakeInvitationSvc) Accept(ctx context.Context, req invitation.AcceptRequest) error {
	return nil
}

func (f *fakeInvitationSvc) Resend(ctx context.Context, employeeID, clientID string) error { return nil }
func (f *fakeInvitationSvc) Revoke(ctx context.Context, employeeID, clientID string) error { return nil }
