package leave

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Stage identifies which rung of the approval pipeline an actor is deciding
// from. The line manager acts first; client admins and super admins confirm.
type Stage string

const (
	StageLineManager Stage = "lineManager"
	StageClientAdmin Stage = "clientAdmin"
	StageSuperAdmin  Stage = "superAdmin"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Outcome describes the state a transition lands in and the side effects the
// service must perform alongside it.
type Outcome struct {
	Status        Status
	ApprovalCount int
	Terminal      bool

	// RefundBalance: add the reserved duration back to the ledger.
	RefundBalance bool
	// Resnapshot: re-read the ledger into the leave summary at confirmation
	// time, capturing balance drift since submission.
	Resnapshot bool
}

type transitionRule struct {
	stage    Stage
	decision Decision
	minCount int
	maxCount int
	outcome  Outcome
}

// The transition table. Any (stage, decision, approvalCount) combination not
// listed here is an invalid transition; terminal states have no entries at all.
var transitions = []transitionRule{
	{
		stage: StageLineManager, decision: DecisionApprove, minCount: 0, maxCount: 0,
		outcome: Outcome{Status: StatusPending, ApprovalCount: 1},
	},
	{
		stage: StageLineManager, decision: DecisionReject, minCount: 0, maxCount: 0,
		outcome: Outcome{Status: StatusRejected, Terminal: true, RefundBalance: true},
	},
	{
		stage: StageClientAdmin, decision: DecisionApprove, minCount: 1, maxCount: 1,
		outcome: Outcome{Status: StatusApproved, ApprovalCount: 2, Terminal: true, Resnapshot: true},
	},
	{
		stage: StageClientAdmin, decision: DecisionReject, minCount: 1, maxCount: 1,
		outcome: Outcome{Status: StatusRejected, ApprovalCount: 1, Terminal: true, RefundBalance: true},
	},
	{
		stage: StageSuperAdmin, decision: DecisionApprove, minCount: 1, maxCount: 1,
		outcome: Outcome{Status: StatusApproved, ApprovalCount: 2, Terminal: true, Resnapshot: true},
	},
	{
		stage: StageSuperAdmin, decision: DecisionReject, minCount: 1, maxCount: 1,
		outcome: Outcome{Status: StatusRejected, ApprovalCount: 1, Terminal: true, RefundBalance: true},
	},
}

// Transition resolves the outcome of a decision against the table.
func Transition(current Status, approvalCount int, stage Stage, decision Decision) (Outcome, error) {
	if current != StatusPending {
		return Outcome{}, ErrAlreadyProcessed
	}

	for _, rule := range transitions {
		if rule.stage != stage || rule.decision != decision {
			continue
		}
		if approvalCount < rule.minCount {
			if rule.minCount >= 1 {
				return Outcome{}, ErrManagerApprovalRequired
			}
			continue
		}
		if approvalCount > rule.maxCount {
			return Outcome{}, ErrAlreadyProcessed
		}
		return rule.outcome, nil
	}

	return Outcome{}, ErrInvalidTransition
}
