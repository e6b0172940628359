package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/leavehq/leave-backend-go/internal/domain/client"
	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/domain/level"
	"github.com/leavehq/leave-backend-go/internal/domain/notification"
	"github.com/leavehq/leave-backend-go/internal/pkg/email"
)

// In-memory fakes so the guard ordering and the state machine side effects
// can be asserted without a database.

type stubTxManager struct{}

func (stubTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
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
	return nil
}

func (f *fakeEmployeeRepo) ClearResumedLeaveFlags(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type fakeBalanceRepo struct {
	balances map[string]leave.LeaveBalance
	nextID   int
}

func (f *fakeBalanceRepo) assignID(b leave.LeaveBalance) leave.LeaveBalance {
	if b.ID == "" {
		f.nextID++
		b.ID = fmt.Sprintf("bal-gen-%d", f.nextID)
	}
	return b
}

// Create mirrors the repository's get-or-create: an existing
// (employee, type) pair wins over the incoming row.
func (f *fakeBalanceRepo) Create(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	if existing, err := f.GetByEmployeeAndType(ctx, b.EmployeeID, b.LeaveTypeID, b.ClientID); err == nil {
		return existing, nil
	}
	b = f.assignID(b)
	f.balances[b.ID] = b
	return b, nil
}

func (f *fakeBalanceRepo) GetByID(ctx context.Context, id, clientID string) (leave.LeaveBalance, error) {
	b, ok := f.balances[id]
	if !ok || b.ClientID != clientID {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (f *fakeBalanceRepo) GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID, clientID string) (leave.LeaveBalance, error) {
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.LeaveTypeID == leaveTypeID && b.ClientID == clientID {
			return b, nil
		}
	}
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (f *fakeBalanceRepo) GetByEmployeeID(ctx context.Context, employeeID, clientID string) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBalanceRepo) Reserve(ctx context.Context, balanceID string, days int) error {
	b, ok := f.balances[balanceID]
	if !ok || b.Balance < days {
		return leave.ErrInsufficientBalance
	}
	b.Balance -= days
	f.balances[balanceID] = b
	return nil
}

func (f *fakeBalanceRepo) Refund(ctx context.Context, balanceID string, days int) error {
	b, ok := f.balances[balanceID]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	b.Balance += days
	f.balances[balanceID] = b
	return nil
}

func (f *fakeBalanceRepo) SetBalance(ctx context.Context, balanceID, clientID string, balance int) error {
	b, ok := f.balances[balanceID]
	if !ok || b.ClientID != clientID {
		return leave.ErrBalanceNotFound
	}
	b.Balance = balance
	f.balances[balanceID] = b
	return nil
}

func (f *fakeBalanceRepo) BulkInsert(ctx context.Context, balances []leave.LeaveBalance) (int64, error) {
	var inserted int64
	for _, b := range balances {
		if _, err := f.GetByEmployeeAndType(ctx, b.EmployeeID, b.LeaveTypeID, b.ClientID); err == nil {
			continue
		}
		b = f.assignID(b)
		f.balances[b.ID] = b
		inserted++
	}
	return inserted, nil
}

func (f *fakeBalanceRepo) ResetByLeaveType(ctx context.Context, leaveTypeID, clientID string, balance int) (int64, error) {
	var reset int64
	for id, b := range f.balances {
		if b.LeaveTypeID == leaveTypeID && b.ClientID == clientID {
			b.Balance = balance
			f.balances[id] = b
			reset++
		}
	}
	return reset, nil
}

func (f *fakeBalanceRepo) DeleteByLeaveType(ctx context.Context, leaveTypeID, clientID string) (int64, error) {
	var deleted int64
	for id, b := range f.balances {
		if b.LeaveTypeID == leaveTypeID && b.ClientID == clientID {
			delete(f.balances, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeBalanceRepo) DeleteByEmployeeID(ctx context.Context, employeeID, clientID string) (int64, error) {
	var deleted int64
	for id, b := range f.balances {
		if b.EmployeeID == employeeID && b.ClientID == clientID {
			delete(f.balances, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeRequestRepo struct {
	requests map[string]leave.Leave
	nextID   int
}

func (f *fakeRequestRepo) Create(ctx context.Context, lv leave.Leave) (leave.Leave, error) {
	f.nextID++
	lv.ID = fmt.Sprintf("leave-%d", f.nextID)
	lv.CreatedAt = time.Now()
	f.requests[lv.ID] = lv
	return lv, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id, clientID string) (leave.Leave, error) {
	lv, ok := f.requests[id]
	if !ok || (clientID != "" && lv.ClientID != clientID) {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return lv, nil
}

func (f *fakeRequestRepo) HasPendingByEmployee(ctx context.Context, employeeID, clientID string) (bool, error) {
	for _, lv := range f.requests {
		if lv.EmployeeID == employeeID && lv.ClientID == clientID && lv.Status == leave.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) List(ctx context.Context, clientID string, filter leave.ListFilter) ([]leave.Leave, int64, error) {
	var out []leave.Leave
	for _, lv := range f.requests {
		if lv.ClientID != clientID {
			continue
		}
		if filter.Status != nil && lv.Status != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && lv.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.LineManagerID != nil && lv.LineManagerID != *filter.LineManagerID {
			continue
		}
		out = append(out, lv)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) ListAllClients(ctx context.Context, filter leave.ListFilter) ([]leave.Leave, int64, error) {
	var out []leave.Leave
	for _, lv := range f.requests {
		out = append(out, lv)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, lv leave.Leave) error {
	if _, ok := f.requests[lv.ID]; !ok {
		return leave.ErrLeaveNotFound
	}
	f.requests[lv.ID] = lv
	return nil
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id, clientID string) error {
	delete(f.requests, id)
	return nil
}

type fakeTypeRepo struct {
	types  map[string]leave.LeaveType
	nextID int
}

func (f *fakeTypeRepo) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	if lt.ID == "" {
		f.nextID++
		lt.ID = fmt.Sprintf("type-gen-%d", f.nextID)
	}
	f.types[lt.ID] = lt
	return lt, nil
}

func (f *fakeTypeRepo) GetByID(ctx context.Context, id, clientID string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok || lt.ClientID != clientID {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeTypeRepo) GetByLevelID(ctx context.Context, levelID, clientID string) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.types {
		if lt.LevelID == levelID && lt.ClientID == clientID {
			out = append(out, lt)
		}
	}
	return out, nil
}

func (f *fakeTypeRepo) GetByClientID(ctx context.Context, clientID string) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.types {
		if lt.ClientID == clientID {
			out = append(out, lt)
		}
	}
	return out, nil
}

func (f *fakeTypeRepo) ExistsByNameInLevel(ctx context.Context, name, levelID, clientID string, excludeID *string) (bool, error) {
	for _, lt := range f.types {
		if excludeID != nil && lt.ID == *excludeID {
			continue
		}
		if lt.LevelID == levelID && lt.ClientID == clientID && lt.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTypeRepo) Update(ctx context.Context, lt leave.LeaveType) error {
	f.types[lt.ID] = lt
	return nil
}

func (f *fakeTypeRepo) Delete(ctx context.Context, id, clientID string) error {
	delete(f.types, id)
	return nil
}

type fakeLevelRepo struct {
	levels  map[string]level.Level
	catalog map[string][]level.CatalogEntry
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
	return f.catalog[id], nil
}

type fakeClientRepo struct {
	clients map[string]client.Client
}

func (f *fakeClientRepo) Create(ctx context.Context, c client.Client) (client.Client, error) {
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id string) (client.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return client.Client{}, client.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) GetByName(ctx context.Context, name string) (client.Client, error) {
	for _, c := range f.clients {
		if c.Name == name {
			return c, nil
		}
	}
	return client.Client{}, client.ErrClientNotFound
}

func (f *fakeClientRepo) List(ctx context.Context) ([]client.Client, error) {
	var out []client.Client
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, req client.UpdateClientRequest) error {
	return nil
}

type fakeNotificationSvc struct {
	sent []notification.Notification
}

func (f *fakeNotificationSvc) Notify(ctx context.Context, n notification.Notification) {
	f.sent = append(f.sent, n)
}

func (f *fakeNotificationSvc) NotifyMany(ctx context.Context, clientID string, recipientIDs []string, senderID *string, typ notification.NotificationType, title, message string, data map[string]interface{}) {
	for _, recipientID := range recipientIDs {
		f.sent = append(f.sent, notification.Notification{
			ClientID:    clientID,
			RecipientID: recipientID,
			SenderID:    senderID,
			Type:        typ,
			Title:       title,
			Message:     message,
			Data:        data,
		})
	}
}

func (f *fakeNotificationSvc) List(ctx context.Context, recipientID, clientID string, page, limit int, unreadOnly bool) (notification.ListNotificationResponse, error) {
	return notification.ListNotificationResponse{}, nil
}

func (f *fakeNotificationSvc) MarkAsRead(ctx context.Context, ids []string, recipientID, clientID string) error {
	return nil
}

func (f *fakeNotificationSvc) MarkAllAsRead(ctx context.Context, recipientID, clientID string) error {
	return nil
}

type fakeEmailSvc struct{}

func (fakeEmailSvc) SendInvitation(to, employeeName string, brand email.Branding, invitationLink, expiresAt string) error {
	return nil
}
func (fakeEmailSvc) SendPasswordReset(to, resetLink, expiresAt string) error { return nil }
func (fakeEmailSvc) SendLeaveRequested(to, employeeName, leaveTypeName string, brand email.Branding, startDate, resumptionDate string, duration int) error {
	return nil
}
func (fakeEmailSvc) SendRelieverNotice(to, employeeName string, brand email.Branding, startDate, resumptionDate string) error {
	return nil
}
func (fakeEmailSvc) SendLeaveApproved(to, leaveTypeName string, brand email.Branding, startDate, resumptionDate string) error {
	return nil
}
func (fakeEmailSvc) SendLeaveRejected(to, leaveTypeName string, brand email.Branding, reason string) error {
	return nil
}
