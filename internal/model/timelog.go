package model

import "time"

// TimeLog is one recorded unit of time spent by a user. TimeSpent is in
// seconds and may be negative for corrections.
type TimeLog struct {
	ID             int        `json:"id"`
	TimeSpent      int64      `json:"time_spent"`
	UserID         int        `json:"user_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
	IssueID        *int       `json:"issue_id,omitempty"`
	MergeRequestID *int       `json:"merge_request_id,omitempty"`
}
