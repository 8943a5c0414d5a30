package dto

// CreateMemberMembershipRequest carries a new purchase. Dates use the
// "2006-01-02" layout; endDate may be empty for an open-ended membership.
type CreateMemberMembershipRequest struct {
	MemberID     int64  `json:"memberId" binding:"required"`
	MembershipID int64  `json:"membershipId" binding:"required"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate"`
}

type UpdateMemberMembershipRequest struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

// TrainingResult is the outcome of a subtract/add call. Expected domain
// conditions are reported through Success/Error rather than a Go error.
type TrainingResult struct {
	Success            bool   `json:"success"`
	RemainingTrainings *int   `json:"remainingTrainings,omitempty"`
	TotalTrainings     *int   `json:"totalTrainings,omitempty"`
	Error              string `json:"error,omitempty"`
	Message            string `json:"message,omitempty"`
}

// UpdateResult mirrors the rows-affected shape of update-style operations.
type UpdateResult struct {
	RowsAffected int64 `json:"rowsAffected"`
}
