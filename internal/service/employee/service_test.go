package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/invitation"
	"github.com/leavehq/leave-backend-go/internal/domain/level"
)

const (
	testClientID = "client-1"
	testLevelID  = "level-1"
)

type testEnv struct {
	svc         employee.EmployeeService
	employees   *fakeEmployeeRepo
	levels      *fakeLevelRepo
	invitations *fakeInvitationRepo
	seeder      *fakeSeeder
	invites     *fakeInvitationSvc
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
	levels := &fakeLevelRepo{levels: map[string]level.Level{
		testLevelID: {ID: testLevelID, ClientID: testClientID, Name: "Junior"},
		"level-2":   {ID: "level-2", ClientID: testClientID, Name: "Senior"},
	}}
	invitations := &fakeInvitationRepo{invitations: map[string]invitation.Invitation{}}
	seeder := &fakeSeeder{balances: map[string]int{}}
	invites := &fakeInvitationSvc{}

	svc := NewEmployeeService(stubTxManager{}, employees, levels, invitations, seeder, invites)
	return testEnv{svc: svc, employees: employees, levels: levels, invitations: invitations, seeder: seeder, invites: invites}
}

func strPtr(s string) *string { return &s }

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds balances and sends an invitation", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.CreateEmployee(ctx, testClientID, employee.CreateEmployeeRequest{
			Firstname: "Ada",
			Surname:   "Obi",
			Email:     "ada@acme.test",
			Gender:    "female",
			LevelID:   strPtr(testLevelID),
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.True(t, resp.IsActive)
		assert.Contains(t, env.seeder.balances, resp.ID)
		assert.Equal(t, []string{"ada@acme.test"}, env.invites.sentTo)
	})

	t.Run("rejects a duplicate email within the client", func(t *testing.T) {
		env := newTestEnv(t)

		req := employee.CreateEmployeeRequest{
			Firstname: "Ada", Surname: "Obi", Email: "ada@acme.test", Gender: "female",
		}
		_, err := env.svc.CreateEmployee(ctx, testClientID, req)
		require.NoError(t, err)

		_, err = env.svc.CreateEmployee(ctx, testClientID, req)
		assert.ErrorIs(t, err, employee.ErrEmailExists)
	})

	t.Run("rejects an unknown level", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.CreateEmployee(ctx, testClientID, employee.CreateEmployeeRequest{
			Firstname: "Ada", Surname: "Obi", Email: "ada@acme.test", Gender: "female",
			LevelID: strPtr("level-missing"),
		})
		assert.ErrorIs(t, err, level.ErrLevelNotFound)
	})
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, env testEnv) employee.EmployeeResponse {
		t.Helper()
		resp, err := env.svc.CreateEmployee(ctx, testClientID, employee.CreateEmployeeRequest{
			Firstname: "Ada", Surname: "Obi", Email: "ada@acme.test", Gender: "female",
			LevelID: strPtr(testLevelID),
		})
		require.NoError(t, err)
		return resp
	}

	t.Run("unchanged level leaves mutated balances untouched", func(t *testing.T) {
		env := newTestEnv(t)
		emp := seed(t, env)

		// The employee has drawn down their balance since creation.
		env.seeder.balances[emp.ID] = 4

		updated, err := env.svc.UpdateEmployee(ctx, testClientID, employee.UpdateEmployeeRequest{
			ID:      emp.ID,
			JobRole: strPtr("Engineer"),
			LevelID: strPtr(testLevelID),
		})
		require.NoError(t, err)

		assert.Equal(t, "Engineer", *updated.JobRole)
		assert.Equal(t, 0, env.seeder.reseeds)
		assert.Equal(t, 4, env.seeder.balances[emp.ID])
	})

	t.Run("changed level reseeds balances", func(t *testing.T) {
		env := newTestEnv(t)
		emp := seed(t, env)

		env.seeder.balances[emp.ID] = 4

		updated, err := env.svc.UpdateEmployee(ctx, testClientID, employee.UpdateEmployeeRequest{
			ID:      emp.ID,
			LevelID: strPtr("level-2"),
		})
		require.NoError(t, err)

		assert.Equal(t, "level-2", *updated.LevelID)
		assert.Equal(t, 1, env.seeder.reseeds)
		assert.Equal(t, 10, env.seeder.balances[emp.ID])
	})

	t.Run("omitted level is a ledger no-op", func(t *testing.T) {
		env := newTestEnv(t)
		emp := seed(t, env)

		env.seeder.balances[emp.ID] = 4

		_, err := env.svc.UpdateEmployee(ctx, testClientID, employee.UpdateEmployeeRequest{
			ID:      emp.ID,
			Surname: strPtr("Obi-Martins"),
		})
		require.NoError(t, err)

		assert.Equal(t, 0, env.seeder.reseeds)
		assert.Equal(t, 4, env.seeder.balances[emp.ID])
	})

	t.Run("rejects self as line manager", func(t *testing.T) {
		env := newTestEnv(t)
		emp := seed(t, env)

		_, err := env.svc.UpdateEmployee(ctx, testClientID, employee.UpdateEmployeeRequest{
			ID:            emp.ID,
			LineManagerID: strPtr(emp.ID),
		})
		assert.Error(t, err)
		assert.Equal(t, 0, env.seeder.reseeds)
	})
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("removes balances and clears references to the employee", func(t *testing.T) {
		env := newTestEnv(t)

		manager, err := env.svc.CreateEmployee(ctx, testClientID, employee.CreateEmployeeRequest{
			Firstname: "Musa", Surname: "Bello", Email: "musa@acme.test", Gender: "male",
			LevelID: strPtr(testLevelID),
		})
		require.NoError(t, err)

		report, err := env.svc.CreateEmployee(ctx, testClientID, employee.CreateEmployeeRequest{
			Firstname: "Ada", Surname: "Obi", Email: "ada@acme.test", Gender: "female",
			LevelID: strPtr(testLevelID), LineManagerID: strPtr(manager.ID),
		})
		require.NoError(t, err)

		require.NoError(t, env.svc.DeleteEmployee(ctx, manager.ID, testClientID))

		assert.NotContains(t, env.seeder.balances, manager.ID)

		_, err = env.svc.GetEmployee(ctx, manager.ID, testClientID)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

		kept, err := env.svc.GetEmployee(ctx, report.ID, testClientID)
		require.NoError(t, err)
		assert.Nil(t, kept.LineManagerID)
	})
}
