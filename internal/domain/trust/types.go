package trust

import "time"

var (
	QueryTimeoutDuration = time.Second * 5
)

// Edge is a directed trust relation: Student trusts Reviewer.
type Edge struct {
	StudentUserName  string `json:"student_user_name"`
	ReviewerUserName string `json:"reviewer_user_name"`
}
