package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leavehq/leave-backend-go/internal/domain/client"
	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/domain/level"
)

const (
	testClientID = "client-1"
	testLevelID  = "level-1"
	testTypeID   = "type-annual"
)

type testEnv struct {
	svc          *LeaveServiceImpl
	employees    *fakeEmployeeRepo
	balances     *fakeBalanceRepo
	requests     *fakeRequestRepo
	types        *fakeTypeRepo
	notification *fakeNotificationSvc
}

// newTestEnv wires a requester with a line manager, a reliever, and an
// annual balance of 10 days.
func newTestEnv() testEnv {
	managerID := "emp-manager"
	relieverID := "emp-reliever"

	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID: "emp-1", ClientID: testClientID,
			Firstname: "Ada", Surname: "Obi", Email: "ada@acme.test",
			Gender: employee.GenderFemale, LevelID: ptr(testLevelID),
			LineManagerID: &managerID, RelieverID: &relieverID,
		},
		managerID: {
			ID: managerID, ClientID: testClientID,
			Firstname: "Musa", Surname: "Bello", Email: "musa@acme.test",
			Gender: employee.GenderMale,
		},
		relieverID: {
			ID: relieverID, ClientID: testClientID,
			Firstname: "Efe", Surname: "Ojo", Email: "efe@acme.test",
			Gender: employee.GenderMale,
		},
	}}

	balances := &fakeBalanceRepo{balances: map[string]leave.LeaveBalance{
		"bal-1": {
			ID: "bal-1", ClientID: testClientID,
			EmployeeID: "emp-1", LeaveTypeID: testTypeID, Balance: 10,
		},
	}}

	requests := &fakeRequestRepo{requests: map[string]leave.Leave{}}
	types := &fakeTypeRepo{types: map[string]leave.LeaveType{
		testTypeID: {ID: testTypeID, ClientID: testClientID, LevelID: testLevelID, Name: "Annual", DefaultBalance: 20},
	}}
	levels := &fakeLevelRepo{
		levels:  map[string]level.Level{testLevelID: {ID: testLevelID, ClientID: testClientID, Name: "Senior"}},
		catalog: map[string][]level.CatalogEntry{},
	}
	clients := &fakeClientRepo{clients: map[string]client.Client{
		testClientID: {ID: testClientID, Name: "Acme", Email: "admin@acme.test"},
	}}
	notifications := &fakeNotificationSvc{}

	svc := NewLeaveService(stubTxManager{}, types, balances, requests, employees, levels, clients, notifications, fakeEmailSvc{})
	return testEnv{svc: svc, employees: employees, balances: balances, requests: requests, types: types, notification: notifications}
}

func ptr(s string) *string { return &s }

func validCreateRequest() leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{
		LeaveTypeID:    testTypeID,
		StartDate:      "2026-09-07",
		ResumptionDate: "2026-09-11",
		Duration:       4,
		Reason:         "family visit",
	}
}

func TestCreateLeaveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves balance and snapshots the summary", func(t *testing.T) {
		env := newTestEnv()

		resp, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
		require.NoError(t, err)

		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 0, resp.ApprovalCount)
		assert.Equal(t, 10, resp.Summary.BalanceBeforeLeave)
		assert.Equal(t, 6, resp.Summary.BalanceAfterLeave)
		assert.Equal(t, 6, resp.Summary.RemainingDays)

		assert.Equal(t, 6, env.balances.balances["bal-1"].Balance)
		assert.True(t, env.employees.employees["emp-1"].IsOnLeave)
	})

	t.Run("rejects a requester already on leave", func(t *testing.T) {
		env := newTestEnv()
		e := env.employees.employees["emp-1"]
		e.IsOnLeave = true
		env.employees.employees["emp-1"] = e

		_, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
		assert.ErrorIs(t, err, employee.ErrEmployeeOnLeave)
	})

	t.Run("requires a line manager", func(t *testing.T) {
		env := newTestEnv()
		e := env.employees.employees["emp-1"]
		e.LineManagerID = nil
		env.employees.employees["emp-1"] = e

		_, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
		assert.ErrorIs(t, err, employee.ErrLineManagerNotSet)
	})

	t.Run("requires the line manager to be available", func(t *testing.T) {
		env := newTestEnv()
		m := env.employees.employees["emp-manager"]
		m.IsOnLeave = true
		env.employees.employees["emp-manager"] = m

		_, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
		assert.ErrorIs(t, err, employee.ErrLineManagerOnLeave)
	})

	t.Run("requires a reliever", func(t *testing.T) {
		env := newTestEnv()
		e := env.employees.employees["emp-1"]
		e.RelieverID = nil
		env.employees.employees["emp-1"] = e

		_, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
		assert.ErrorIs(t, err, employee.ErrRelieverNotSet)
	})

	t.Run("requires the reliever to be available", func(t *testing.T) {
		env := newTestEnv()
		rel := env.employees.employees["emp-reliever"]
		rel.IsOnLeave = true
		env.employees.employees["emp-reliever"] = rel

		_, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
		assert.ErrorIs(t, err, employee.ErrRelieverOnLeave)
	})

	t.Run("rejects a second pending request", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
		require.NoError(t, err)

		// The flag alone would already block this; clear it to prove the
		// pending-request check holds on its own.
		require.NoError(t, env.employees.SetOnLeave(ctx, "emp-1", false))

		_, err = env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
		assert.ErrorIs(t, err, leave.ErrPendingRequestExists)
	})

	t.Run("seeds a balance from the type default on first use", func(t *testing.T) {
		env := newTestEnv()
		env.types.types["type-sick"] = leave.LeaveType{
			ID: "type-sick", ClientID: testClientID, LevelID: testLevelID,
			Name: "Sick", DefaultBalance: 7,
		}

		req := validCreateRequest()
		req.LeaveTypeID = "type-sick"

		resp, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, req)
		require.NoError(t, err)

		assert.Equal(t, 7, resp.Summary.BalanceBeforeLeave)
		assert.Equal(t, 3, resp.Summary.BalanceAfterLeave)

		seeded, err := env.balances.GetByEmployeeAndType(ctx, "emp-1", "type-sick", testClientID)
		require.NoError(t, err)
		assert.Equal(t, 3, seeded.Balance)
	})

	t.Run("rejects an unknown leave type", func(t *testing.T) {
		env := newTestEnv()
		req := validCreateRequest()
		req.LeaveTypeID = "type-unknown"

		_, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, req)
		assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
	})

	t.Run("insufficient balance outranks later guard failures", func(t *testing.T) {
		env := newTestEnv()
		e := env.employees.employees["emp-1"]
		e.LineManagerID = nil
		env.employees.employees["emp-1"] = e

		req := validCreateRequest()
		req.Duration = 99

		_, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, req)
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	})

	t.Run("fails atomically on insufficient balance", func(t *testing.T) {
		env := newTestEnv()
		req := validCreateRequest()
		req.Duration = 11

		_, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, req)
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

		assert.Empty(t, env.requests.requests)
		assert.Equal(t, 10, env.balances.balances["bal-1"].Balance)
	})

	t.Run("notifies line manager and reliever", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
		require.NoError(t, err)

		recipients := make([]string, 0, len(env.notification.sent))
		for _, n := range env.notification.sent {
			recipients = append(recipients, n.RecipientID)
		}
		assert.ElementsMatch(t, []string{"emp-manager", "emp-reliever"}, recipients)
	})
}

func TestDecideLeaveRequest(t *testing.T) {
	ctx := context.Background()

	submit := func(t *testing.T, env testEnv) leave.LeaveResponse {
		t.Helper()
		resp, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
		require.NoError(t, err)
		return resp
	}

	decision := func(id, d string, reason *string) leave.DecideLeaveRequest {
		return leave.DecideLeaveRequest{LeaveID: id, Decision: d, Reason: reason}
	}

	t.Run("only the assigned line manager may act", func(t *testing.T) {
		env := newTestEnv()
		created := submit(t, env)

		err := env.svc.DecideAsLineManager(ctx, "emp-reliever", testClientID, decision(created.ID, "approve", nil))
		assert.ErrorIs(t, err, leave.ErrNotRequestApprover)
	})

	t.Run("manager approval keeps the request pending", func(t *testing.T) {
		env := newTestEnv()
		created := submit(t, env)

		require.NoError(t, env.svc.DecideAsLineManager(ctx, "emp-manager", testClientID, decision(created.ID, "approve", nil)))

		lv := env.requests.requests[created.ID]
		assert.Equal(t, leave.StatusPending, lv.Status)
		assert.Equal(t, 1, lv.ApprovalCount)
		assert.True(t, env.employees.employees["emp-1"].IsOnLeave)
		assert.Equal(t, 6, env.balances.balances["bal-1"].Balance)
	})

	t.Run("manager rejection refunds and clears the flag", func(t *testing.T) {
		env := newTestEnv()
		created := submit(t, env)

		reason := "short staffed"
		require.NoError(t, env.svc.DecideAsLineManager(ctx, "emp-manager", testClientID, decision(created.ID, "reject", &reason)))

		lv := env.requests.requests[created.ID]
		assert.Equal(t, leave.StatusRejected, lv.Status)
		require.NotNil(t, lv.RejectionReason)
		assert.Equal(t, reason, *lv.RejectionReason)
		assert.False(t, env.employees.employees["emp-1"].IsOnLeave)
		assert.Equal(t, 10, env.balances.balances["bal-1"].Balance)
	})

	t.Run("admin confirmation approves and resnapshots the summary", func(t *testing.T) {
		env := newTestEnv()
		created := submit(t, env)
		require.NoError(t, env.svc.DecideAsLineManager(ctx, "emp-manager", testClientID, decision(created.ID, "approve", nil)))

		// Simulate an admin balance adjustment between endorsement and
		// confirmation; the summary must capture the drift.
		require.NoError(t, env.balances.SetBalance(ctx, "bal-1", testClientID, 3))

		require.NoError(t, env.svc.DecideAsClientAdmin(ctx, "emp-admin", testClientID, decision(created.ID, "approve", nil)))

		lv := env.requests.requests[created.ID]
		assert.Equal(t, leave.StatusApproved, lv.Status)
		assert.Equal(t, 2, lv.ApprovalCount)
		require.NotNil(t, lv.ApprovedBy)
		assert.Equal(t, "emp-admin", *lv.ApprovedBy)
		assert.Equal(t, 7, lv.Summary.BalanceBeforeLeave)
		assert.Equal(t, 3, lv.Summary.BalanceAfterLeave)
		assert.Equal(t, 3, lv.Summary.RemainingDays)

		// Approval does not release the requester; the resumption job does.
		assert.True(t, env.employees.employees["emp-1"].IsOnLeave)
	})

	t.Run("admin cannot act before the line manager", func(t *testing.T) {
		env := newTestEnv()
		created := submit(t, env)

		err := env.svc.DecideAsClientAdmin(ctx, "emp-admin", testClientID, decision(created.ID, "approve", nil))
		assert.ErrorIs(t, err, leave.ErrManagerApprovalRequired)
	})

	t.Run("super admin approval records the line manager as approver", func(t *testing.T) {
		env := newTestEnv()
		created := submit(t, env)
		require.NoError(t, env.svc.DecideAsLineManager(ctx, "emp-manager", testClientID, decision(created.ID, "approve", nil)))
		require.NoError(t, env.svc.DecideAsSuperAdmin(ctx, "user-root", decision(created.ID, "approve", nil)))

		lv := env.requests.requests[created.ID]
		assert.Equal(t, leave.StatusApproved, lv.Status)
		require.NotNil(t, lv.ApprovedBy)
		assert.Equal(t, "emp-manager", *lv.ApprovedBy)
	})

	t.Run("terminal requests stay terminal", func(t *testing.T) {
		env := newTestEnv()
		created := submit(t, env)
		require.NoError(t, env.svc.DecideAsLineManager(ctx, "emp-manager", testClientID, decision(created.ID, "approve", nil)))
		require.NoError(t, env.svc.DecideAsSuperAdmin(ctx, "user-root", decision(created.ID, "approve", nil)))

		reason := "changed my mind"
		err := env.svc.DecideAsClientAdmin(ctx, "emp-admin", testClientID, decision(created.ID, "reject", &reason))
		assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		env := newTestEnv()
		created := submit(t, env)

		err := env.svc.DecideAsLineManager(ctx, "emp-manager", testClientID, decision(created.ID, "reject", nil))
		assert.Error(t, err)
	})
}

func TestDeleteLeaveRequest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	resp, err := env.svc.CreateLeaveRequest(ctx, "emp-1", testClientID, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteLeaveRequest(ctx, resp.ID, testClientID))

	assert.Empty(t, env.requests.requests)
	assert.Equal(t, 10, env.balances.balances["bal-1"].Balance)
	assert.False(t, env.employees.employees["emp-1"].IsOnLeave)
}
