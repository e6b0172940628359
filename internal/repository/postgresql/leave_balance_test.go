package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientDomain "github.com/leavehq/leave-backend-go/internal/domain/client"
	employeeDomain "github.com/leavehq/leave-backend-go/internal/domain/employee"
	leaveDomain "github.com/leavehq/leave-backend-go/internal/domain/leave"
	levelDomain "github.com/leavehq/leave-backend-go/internal/domain/level"
	"github.com/leavehq/leave-backend-go/internal/repository/postgresql"
)

type balanceFixture struct {
	clientID    string
	employeeID  string
	leaveTypeID string
}

func seedBalanceFixture(t *testing.T, ctx context.Context) balanceFixture {
	t.Helper()
	db := newTestDB(t)
	truncateTables(t, db, "leave_balances", "leave_types", "employees", "levels", "clients")

	c, err := postgresql.NewClientRepository(db).Create(ctx, clientDomain.Client{
		Name:  "Acme",
		Email: "admin@acme.test",
	})
	require.NoError(t, err)

	l, err := postgresql.NewLevelRepository(db).Create(ctx, levelDomain.Level{
		ClientID: c.ID,
		Name:     "Senior",
	})
	require.NoError(t, err)

	e, err := postgresql.NewEmployeeRepository(db).Create(ctx, employeeDomain.Employee{
		ClientID:  c.ID,
		Firstname: "Ada",
		Surname:   "Obi",
		Email:     "ada@acme.test",
		Gender:    employeeDomain.GenderFemale,
		LevelID:   &l.ID,
		IsActive:  true,
	})
	require.NoError(t, err)

	lt, err := postgresql.NewLeaveTypeRepository(db).Create(ctx, leaveDomain.LeaveType{
		ClientID:       c.ID,
		LevelID:        l.ID,
		Name:           "Annual",
		DefaultBalance: 20,
	})
	require.NoError(t, err)

	return balanceFixture{clientID: c.ID, employeeID: e.ID, leaveTypeID: lt.ID}
}

func TestLeaveBalanceRepository_ReserveAndRefund(t *testing.T) {
	ctx := context.Background()
	fx := seedBalanceFixture(t, ctx)
	repo := postgresql.NewLeaveBalanceRepository(newTestDB(t))

	created, err := repo.Create(ctx, leaveDomain.LeaveBalance{
		ClientID:    fx.clientID,
		EmployeeID:  fx.employeeID,
		LeaveTypeID: fx.leaveTypeID,
		Balance:     10,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Reserve(ctx, created.ID, 4))

	got, err := repo.GetByID(ctx, created.ID, fx.clientID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Balance)

	// Reserving more than the remaining balance must fail atomically.
	err = repo.Reserve(ctx, created.ID, 7)
	assert.ErrorIs(t, err, leaveDomain.ErrInsufficientBalance)

	got, err = repo.GetByID(ctx, created.ID, fx.clientID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Balance)

	require.NoError(t, repo.Refund(ctx, created.ID, 4))
	got, err = repo.GetByID(ctx, created.ID, fx.clientID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Balance)
}

func TestLeaveBalanceRepository_BulkInsertSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	fx := seedBalanceFixture(t, ctx)
	repo := postgresql.NewLeaveBalanceRepository(newTestDB(t))

	rows := []leaveDomain.LeaveBalance{{
		ClientID:    fx.clientID,
		EmployeeID:  fx.employeeID,
		LeaveTypeID: fx.leaveTypeID,
		Balance:     20,
	}}

	inserted, err := repo.BulkInsert(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	// The same (employee, leave type) pair again is silently skipped.
	inserted, err = repo.BulkInsert(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inserted)

	balances, err := repo.GetByEmployeeID(ctx, fx.employeeID, fx.clientID)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, 20, balances[0].Balance)
}
