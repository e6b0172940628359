package report

type MonthlyCountResponse struct {
	Month    int   `json:"month"`
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Pending  int64 `json:"pending"`
}

type AnalyticsResponse struct {
	Year            int                    `json:"year"`
	Months          []MonthlyCountResponse `json:"months"`
	TotalRequests   int64                  `json:"total_requests"`
	ApprovedCount   int64                  `json:"approved_count"`
	RejectedCount   int64                  `json:"rejected_count"`
	PendingCount    int64                  `json:"pending_count"`
	ApprovalRate    string                 `json:"approval_rate"`
	RejectionRate   string                 `json:"rejection_rate"`
	AverageDuration string                 `json:"average_duration"`
}

type UtilizationResponse struct {
	LeaveTypeID     string `json:"leave_type_id"`
	LeaveTypeName   string `json:"leave_type_name"`
	DefaultBalance  int    `json:"default_balance"`
	AverageBalance  string `json:"average_balance"`
	UtilizationRate string `json:"utilization_rate"`
}
