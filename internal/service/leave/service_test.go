package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
)

func TestCreateLeaveType(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds a balance for every employee on the level", func(t *testing.T) {
		env := newTestEnv()

		// Put the manager on the same level as the requester.
		m := env.employees.employees["emp-manager"]
		m.LevelID = ptr(testLevelID)
		env.employees.employees["emp-manager"] = m

		resp, err := env.svc.CreateLeaveType(ctx, testClientID, leave.CreateLeaveTypeRequest{
			LevelID:        testLevelID,
			Name:           "Study",
			DefaultBalance: 5,
		})
		require.NoError(t, err)

		for _, employeeID := range []string{"emp-1", "emp-manager"} {
			b, err := env.balances.GetByEmployeeAndType(ctx, employeeID, resp.ID, testClientID)
			require.NoError(t, err, "expected balance for %s", employeeID)
			assert.Equal(t, 5, b.Balance)
		}
	})

	t.Run("rejects duplicate names on the same level", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.CreateLeaveType(ctx, testClientID, leave.CreateLeaveTypeRequest{
			LevelID:        testLevelID,
			Name:           "Annual",
			DefaultBalance: 5,
		})
		assert.ErrorIs(t, err, leave.ErrLeaveTypeNameExists)
	})
}

func TestUpdateLeaveType(t *testing.T) {
	ctx := context.Background()

	t.Run("default balance change resets existing balances", func(t *testing.T) {
		env := newTestEnv()

		newDefault := 25
		err := env.svc.UpdateLeaveType(ctx, testClientID, leave.UpdateLeaveTypeRequest{
			ID:             testTypeID,
			DefaultBalance: &newDefault,
		})
		require.NoError(t, err)

		assert.Equal(t, 25, env.balances.balances["bal-1"].Balance)
	})

	t.Run("rename alone leaves balances untouched", func(t *testing.T) {
		env := newTestEnv()

		name := "Annual Leave"
		err := env.svc.UpdateLeaveType(ctx, testClientID, leave.UpdateLeaveTypeRequest{
			ID:   testTypeID,
			Name: &name,
		})
		require.NoError(t, err)

		assert.Equal(t, 10, env.balances.balances["bal-1"].Balance)
	})
}

func TestDeleteLeaveType(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	require.NoError(t, env.svc.DeleteLeaveType(ctx, testTypeID, testClientID))

	assert.Empty(t, env.balances.balances)
	_, err := env.svc.GetLeaveType(ctx, testTypeID, testClientID)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestGetEmployeeBalances_GenderFilter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	maternity := "Maternity"
	env.balances.balances["bal-2"] = leave.LeaveBalance{
		ID: "bal-2", ClientID: testClientID,
		EmployeeID: "emp-manager", LeaveTypeID: "type-maternity",
		Balance: 90, LeaveTypeName: &maternity,
	}

	// emp-manager is male; the maternity balance must be hidden.
	balances, err := env.svc.GetEmployeeBalances(ctx, "emp-manager", testClientID)
	require.NoError(t, err)
	assert.Empty(t, balances)
}
