package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name          string
		current       Status
		approvalCount int
		stage         Stage
		decision      Decision
		want          Outcome
		wantErr       error
	}{
		{
			name:    "line manager approval keeps request pending",
			current: StatusPending, approvalCount: 0,
			stage: StageLineManager, decision: DecisionApprove,
			want: Outcome{Status: StatusPending, ApprovalCount: 1},
		},
		{
			name:    "line manager rejection refunds",
			current: StatusPending, approvalCount: 0,
			stage: StageLineManager, decision: DecisionReject,
			want: Outcome{Status: StatusRejected, Terminal: true, RefundBalance: true},
		},
		{
			name:    "client admin confirmation approves and resnapshots",
			current: StatusPending, approvalCount: 1,
			stage: StageClientAdmin, decision: DecisionApprove,
			want: Outcome{Status: StatusApproved, ApprovalCount: 2, Terminal: true, Resnapshot: true},
		},
		{
			name:    "client admin rejection after endorsement refunds",
			current: StatusPending, approvalCount: 1,
			stage: StageClientAdmin, decision: DecisionReject,
			want: Outcome{Status: StatusRejected, ApprovalCount: 1, Terminal: true, RefundBalance: true},
		},
		{
			name:    "super admin confirmation approves and resnapshots",
			current: StatusPending, approvalCount: 1,
			stage: StageSuperAdmin, decision: DecisionApprove,
			want: Outcome{Status: StatusApproved, ApprovalCount: 2, Terminal: true, Resnapshot: true},
		},
		{
			name:    "admin cannot approve before the line manager",
			current: StatusPending, approvalCount: 0,
			stage: StageClientAdmin, decision: DecisionApprove,
			wantErr: ErrManagerApprovalRequired,
		},
		{
			name:    "admin cannot reject before the line manager",
			current: StatusPending, approvalCount: 0,
			stage: StageSuperAdmin, decision: DecisionReject,
			wantErr: ErrManagerApprovalRequired,
		},
		{
			name:    "line manager cannot act twice",
			current: StatusPending, approvalCount: 1,
			stage: StageLineManager, decision: DecisionApprove,
			wantErr: ErrAlreadyProcessed,
		},
		{
			name:    "approved requests are immutable",
			current: StatusApproved, approvalCount: 2,
			stage: StageClientAdmin, decision: DecisionReject,
			wantErr: ErrAlreadyProcessed,
		},
		{
			name:    "rejected requests are immutable",
			current: StatusRejected, approvalCount: 0,
			stage: StageLineManager, decision: DecisionApprove,
			wantErr: ErrAlreadyProcessed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.current, tt.approvalCount, tt.stage, tt.decision)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
