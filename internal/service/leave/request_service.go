package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/domain/notification"
	"github.com/leavehq/leave-backend-go/internal/pkg/email"
)

// CreateLeaveRequest implements leave.LeaveService. The eligibility checks
// and the balance reservation run inside one transaction; the reservation
// itself is a conditional decrement, so concurrent requests against the same
// balance cannot both succeed.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, employeeID, clientID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	startDate, resumptionDate, err := req.Dates()
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	var (
		created     leave.Leave
		emp         employee.Employee
		lineManager employee.Employee
		reliever    employee.Employee
	)

	err = s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error

		// 1. Requester must exist in this tenant.
		emp, err = s.employeeRepo.GetByID(ctx, employeeID, clientID)
		if err != nil {
			return err
		}

		// 2. The balance must cover the requested days. The first request
		// against a type seeds the record from the type's default.
		balance, err := s.balanceForRequest(ctx, employeeID, clientID, req.LeaveTypeID)
		if err != nil {
			return err
		}
		if balance.Balance < req.Duration {
			return leave.ErrInsufficientBalance
		}

		// 3. No overlapping leave.
		if emp.IsOnLeave {
			return employee.ErrEmployeeOnLeave
		}

		// 4. A line manager must be assigned and available.
		if emp.LineManagerID == nil {
			return employee.ErrLineManagerNotSet
		}
		lineManager, err = s.employeeRepo.GetByID(ctx, *emp.LineManagerID, clientID)
		if err != nil {
			return err
		}
		if lineManager.IsOnLeave {
			return employee.ErrLineManagerOnLeave
		}

		// 5. A reliever must be assigned and available.
		if emp.RelieverID == nil {
			return employee.ErrRelieverNotSet
		}
		reliever, err = s.employeeRepo.GetByID(ctx, *emp.RelieverID, clientID)
		if err != nil {
			return err
		}
		if reliever.IsOnLeave {
			return employee.ErrRelieverOnLeave
		}

		// 6. One request in flight at a time.
		pending, err := s.requestRepo.HasPendingByEmployee(ctx, employeeID, clientID)
		if err != nil {
			return fmt.Errorf("failed to check pending requests: %w", err)
		}
		if pending {
			return leave.ErrPendingRequestExists
		}

		// 7. Reserve the days. The conditional decrement still fails when a
		// concurrent request drained the balance after the read check above.
		if err := s.balanceRepo.Reserve(ctx, balance.ID, req.Duration); err != nil {
			return err
		}

		remaining := balance.Balance - req.Duration
		created, err = s.requestRepo.Create(ctx, leave.Leave{
			ClientID:       clientID,
			EmployeeID:     employeeID,
			LineManagerID:  lineManager.ID,
			RelieverID:     reliever.ID,
			LeaveTypeID:    req.LeaveTypeID,
			StartDate:      startDate,
			ResumptionDate: resumptionDate,
			Duration:       req.Duration,
			Reason:         req.Reason,
			DocumentURL:    req.DocumentURL,
			Status:         leave.StatusPending,
			ApprovalCount:  0,
			Summary: leave.LeaveSummary{
				BalanceBeforeLeave: balance.Balance,
				BalanceAfterLeave:  remaining,
				RemainingDays:      remaining,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}

		return s.employeeRepo.SetOnLeave(ctx, employeeID, true)
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	s.notifyRequested(ctx, created, emp, lineManager, reliever)

	name := emp.FullName()
	created.EmployeeName = &name
	managerName := lineManager.FullName()
	created.LineManagerName = &managerName
	return leave.ToLeaveResponse(created), nil
}

// balanceForRequest loads the employee's balance for the type, seeding a
// fresh record from the type's default on first use. A missing type is the
// caller's error; a missing balance is not.
func (s *LeaveServiceImpl) balanceForRequest(ctx context.Context, employeeID, clientID, leaveTypeID string) (leave.LeaveBalance, error) {
	balance, err := s.balanceRepo.GetByEmployeeAndType(ctx, employeeID, leaveTypeID, clientID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.LeaveBalance{}, err
	}

	leaveType, err := s.typeRepo.GetByID(ctx, leaveTypeID, clientID)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	created, err := s.balanceRepo.Create(ctx, leave.LeaveBalance{
		ClientID:    clientID,
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Balance:     leaveType.DefaultBalance,
	})
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to seed balance: %w", err)
	}

	slog.Info("Seeded balance on first request",
		"employee_id", employeeID, "leave_type_id", leaveTypeID, "balance", created.Balance)
	return created, nil
}

// DecideAsLineManager implements leave.LeaveService. Only the line manager
// captured on the request may act at this stage.
func (s *LeaveServiceImpl) DecideAsLineManager(ctx context.Context, actorEmployeeID, clientID string, req leave.DecideLeaveRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	lv, err := s.requestRepo.GetByID(ctx, req.LeaveID, clientID)
	if err != nil {
		return err
	}
	if lv.LineManagerID != actorEmployeeID {
		return leave.ErrNotRequestApprover
	}

	return s.decide(ctx, lv, leave.StageLineManager, req, actorEmployeeID)
}

// DecideAsClientAdmin implements leave.LeaveService. The admin acts through
// their own employee record so approver fields stay in employee id space.
func (s *LeaveServiceImpl) DecideAsClientAdmin(ctx context.Context, actorEmployeeID, clientID string, req leave.DecideLeaveRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	lv, err := s.requestRepo.GetByID(ctx, req.LeaveID, clientID)
	if err != nil {
		return err
	}

	return s.decide(ctx, lv, leave.StageClientAdmin, req, actorEmployeeID)
}

// DecideAsSuperAdmin implements leave.LeaveService. Super admins act across
// tenants, so the request is looked up without a client filter. They carry
// no employee record; the approver fields take the request's line manager
// and the acting user lands in the log.
func (s *LeaveServiceImpl) DecideAsSuperAdmin(ctx context.Context, actorUserID string, req leave.DecideLeaveRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	lv, err := s.requestRepo.GetByID(ctx, req.LeaveID, "")
	if err != nil {
		return err
	}

	slog.Info("Super admin leave decision",
		"user_id", actorUserID, "leave_id", lv.ID, "decision", req.Decision)
	return s.decide(ctx, lv, leave.StageSuperAdmin, req, lv.LineManagerID)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, lv leave.Leave, stage leave.Stage, req leave.DecideLeaveRequest, actorID string) error {
	outcome, err := leave.Transition(lv.Status, lv.ApprovalCount, stage, leave.Decision(req.Decision))
	if err != nil {
		return err
	}

	updated := lv
	updated.Status = outcome.Status
	updated.ApprovalCount = outcome.ApprovalCount
	switch leave.Decision(req.Decision) {
	case leave.DecisionApprove:
		updated.ApprovedBy = &actorID
		updated.ApprovalReason = req.Reason
	case leave.DecisionReject:
		updated.RejectedBy = &actorID
		updated.RejectionReason = req.Reason
	}

	err = s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		if outcome.RefundBalance {
			if err := s.refund(ctx, lv); err != nil {
				return err
			}
			if err := s.employeeRepo.SetOnLeave(ctx, lv.EmployeeID, false); err != nil {
				return err
			}
		}

		if outcome.Resnapshot {
			balance, err := s.balanceRepo.GetByEmployeeAndType(ctx, lv.EmployeeID, lv.LeaveTypeID, lv.ClientID)
			if err != nil {
				return err
			}
			updated.Summary = leave.LeaveSummary{
				BalanceBeforeLeave: balance.Balance + lv.Duration,
				BalanceAfterLeave:  balance.Balance,
				RemainingDays:      balance.Balance,
			}
		}

		return s.requestRepo.Update(ctx, updated)
	})
	if err != nil {
		return err
	}

	s.notifyDecided(ctx, updated, stage, outcome)
	return nil
}

// refund returns the reserved days after a rejection. A missing balance
// record (the type was deleted meanwhile) is logged, not fatal: the
// rejection must still land.
func (s *LeaveServiceImpl) refund(ctx context.Context, lv leave.Leave) error {
	balance, err := s.balanceRepo.GetByEmployeeAndType(ctx, lv.EmployeeID, lv.LeaveTypeID, lv.ClientID)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			slog.Warn("Skipping refund, balance record gone",
				"leave_id", lv.ID, "employee_id", lv.EmployeeID, "leave_type_id", lv.LeaveTypeID)
			return nil
		}
		return err
	}
	return s.balanceRepo.Refund(ctx, balance.ID, lv.Duration)
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id, clientID string) (leave.LeaveResponse, error) {
	lv, err := s.requestRepo.GetByID(ctx, id, clientID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.ToLeaveResponse(lv), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, clientID string, filter leave.ListFilter) (leave.ListLeaveResponse, error) {
	filter.Normalize()
	leaves, total, err := s.requestRepo.List(ctx, clientID, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return buildListResponse(leaves, total, filter), nil
}

// ListAllLeaveRequests implements leave.LeaveService. Super admin scope.
func (s *LeaveServiceImpl) ListAllLeaveRequests(ctx context.Context, filter leave.ListFilter) (leave.ListLeaveResponse, error) {
	filter.Normalize()
	leaves, total, err := s.requestRepo.ListAllClients(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return buildListResponse(leaves, total, filter), nil
}

func buildListResponse(leaves []leave.Leave, total int64, filter leave.ListFilter) leave.ListLeaveResponse {
	items := make([]leave.LeaveResponse, 0, len(leaves))
	for _, lv := range leaves {
		items = append(items, leave.ToLeaveResponse(lv))
	}
	return leave.ListLeaveResponse{
		Items:      items,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}
}

// DeleteLeaveRequest implements leave.LeaveService. Admin escape hatch; a
// pending request refunds its reservation before going away.
func (s *LeaveServiceImpl) DeleteLeaveRequest(ctx context.Context, id, clientID string) error {
	lv, err := s.requestRepo.GetByID(ctx, id, clientID)
	if err != nil {
		return err
	}

	return s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		if lv.Status == leave.StatusPending {
			if err := s.refund(ctx, lv); err != nil {
				return err
			}
			if err := s.employeeRepo.SetOnLeave(ctx, lv.EmployeeID, false); err != nil {
				return err
			}
		}
		return s.requestRepo.Delete(ctx, id, lv.ClientID)
	})
}

func (s *LeaveServiceImpl) branding(ctx context.Context, clientID string) email.Branding {
	brand := email.Branding{}
	c, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		slog.Warn("Failed to load client branding", "client_id", clientID, "error", err)
		return brand
	}
	brand.ClientName = c.Name
	if c.Logo != nil {
		brand.Logo = *c.Logo
	}
	if c.Color != nil {
		brand.Color = *c.Color
	}
	return brand
}

// notifyRequested fans out the submission to the line manager and reliever.
// Best effort; failures are logged and never surfaced to the requester.
func (s *LeaveServiceImpl) notifyRequested(ctx context.Context, lv leave.Leave, emp, lineManager, reliever employee.Employee) {
	leaveTypeName := ""
	if t, err := s.typeRepo.GetByID(ctx, lv.LeaveTypeID, lv.ClientID); err == nil {
		leaveTypeName = t.Name
	}

	s.notificationSvc.NotifyMany(ctx, lv.ClientID,
		[]string{lineManager.ID, reliever.ID}, &emp.ID,
		notification.TypeLeaveRequested,
		"Leave request submitted",
		fmt.Sprintf("%s requested %d day(s) of %s", emp.FullName(), lv.Duration, leaveTypeName),
		map[string]interface{}{"leave_id": lv.ID})

	brand := s.branding(ctx, lv.ClientID)
	startDate := lv.StartDate.Format("2006-01-02")
	resumptionDate := lv.ResumptionDate.Format("2006-01-02")

	go func() {
		if err := s.emailSvc.SendLeaveRequested(lineManager.Email, emp.FullName(), leaveTypeName, brand, startDate, resumptionDate, lv.Duration); err != nil {
			slog.Error("Failed to email line manager", "leave_id", lv.ID, "error", err)
		}
	}()
	go func() {
		if err := s.emailSvc.SendRelieverNotice(reliever.Email, emp.FullName(), brand, startDate, resumptionDate); err != nil {
			slog.Error("Failed to email reliever", "leave_id", lv.ID, "error", err)
		}
	}()
}

// notifyDecided informs the requester of a stage outcome.
func (s *LeaveServiceImpl) notifyDecided(ctx context.Context, lv leave.Leave, stage leave.Stage, outcome leave.Outcome) {
	emp, err := s.employeeRepo.GetByID(ctx, lv.EmployeeID, lv.ClientID)
	if err != nil {
		slog.Warn("Failed to load employee for decision notification", "leave_id", lv.ID, "error", err)
		return
	}

	leaveTypeName := ""
	if t, err := s.typeRepo.GetByID(ctx, lv.LeaveTypeID, lv.ClientID); err == nil {
		leaveTypeName = t.Name
	}

	brand := s.branding(ctx, lv.ClientID)

	switch {
	case lv.Status == leave.StatusRejected:
		reason := ""
		if lv.RejectionReason != nil {
			reason = *lv.RejectionReason
		}
		s.notificationSvc.Notify(ctx, notification.Notification{
			ClientID:    lv.ClientID,
			RecipientID: lv.EmployeeID,
			Type:        notification.TypeLeaveRejected,
			Title:       "Leave request rejected",
			Message:     fmt.Sprintf("Your %s request was rejected", leaveTypeName),
			Data:        map[string]interface{}{"leave_id": lv.ID},
		})
		go func() {
			if err := s.emailSvc.SendLeaveRejected(emp.Email, leaveTypeName, brand, reason); err != nil {
				slog.Error("Failed to email rejection", "leave_id", lv.ID, "error", err)
			}
		}()

	case lv.Status == leave.StatusApproved:
		s.notificationSvc.Notify(ctx, notification.Notification{
			ClientID:    lv.ClientID,
			RecipientID: lv.EmployeeID,
			Type:        notification.TypeLeaveApproved,
			Title:       "Leave request approved",
			Message:     fmt.Sprintf("Your %s request was approved", leaveTypeName),
			Data:        map[string]interface{}{"leave_id": lv.ID},
		})
		go func() {
			if err := s.emailSvc.SendLeaveApproved(emp.Email, leaveTypeName, brand,
				lv.StartDate.Format("2006-01-02"), lv.ResumptionDate.Format("2006-01-02")); err != nil {
				slog.Error("Failed to email approval", "leave_id", lv.ID, "error", err)
			}
		}()

	case stage == leave.StageLineManager:
		// Manager approval keeps the request pending for final confirmation.
		s.notificationSvc.Notify(ctx, notification.Notification{
			ClientID:    lv.ClientID,
			RecipientID: lv.EmployeeID,
			Type:        notification.TypeLeaveManagerApproved,
			Title:       "Leave request endorsed",
			Message:     fmt.Sprintf("Your %s request passed line manager review", leaveTypeName),
			Data:        map[string]interface{}{"leave_id": lv.ID},
		})
	}
}
