package report

// MonthlyCount is one month of the leave request series.
type MonthlyCount struct {
	Month    int
	Total    int64
	Approved int64
	Rejected int64
	Pending  int64
}

// DurationStats aggregates approved leave durations for a year.
type DurationStats struct {
	ApprovedCount int64
	TotalDays     int64
}

// TypeUtilization aggregates remaining balances per leave type.
type TypeUtilization struct {
	LeaveTypeID    string
	LeaveTypeName  string
	DefaultBalance int
	BalanceCount   int64
	BalanceSum     int64
}
