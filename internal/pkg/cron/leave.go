package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
)

// LeaveJobs owns the background maintenance of leave state.
type LeaveJobs struct {
	employeeRepo employee.EmployeeRepository
}

func NewLeaveJobs(employeeRepo employee.EmployeeRepository) *LeaveJobs {
	return &LeaveJobs{employeeRepo: employeeRepo}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("clear_resumed_leave_flags", 1*time.Hour, j.ClearResumedLeaveFlags)
}

// ClearResumedLeaveFlags unsets is_on_leave for employees whose approved
// leave has passed its resumption date. Terminal request transitions clear
// the flag inline; this job is the backstop for anything missed.
func (j *LeaveJobs) ClearResumedLeaveFlags(ctx context.Context) error {
	cleared, err := j.employeeRepo.ClearResumedLeaveFlags(ctx, time.Now())
	if err != nil {
		return err
	}
	if cleared > 0 {
		slog.Info("Cleared resumed leave flags", "count", cleared)
	}
	return nil
}
