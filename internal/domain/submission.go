package domain

import "time"

// Submission statuses
const (
	SubmissionPending = "pending"
	SubmissionPassed  = "passed"
	SubmissionFailed  = "failed"
)

// SubmissionPassXP is awarded once when a submission passes evaluation
const SubmissionPassXP int64 = 50

// Submission is a code solution for a task
type Submission struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	TaskID      string       `json:"task_id"`
	QuestID     string       `json:"quest_id,omitempty"`
	Code        string       `json:"code"`
	Language    string       `json:"language"`
	Status      string       `json:"status"`
	TestResults *TestResults `json:"test_results,omitempty"`
	Feedback    string       `json:"feedback,omitempty"`
	XPAwarded   int64        `json:"xp_awarded"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TestResults summarises a submission run
type TestResults struct {
	Total     int          `json:"total_tests"`
	Passed    int          `json:"passed"`
	Failed    int          `json:"failed"`
	AllPassed bool         `json:"all_passed"`
	Cases     []TestResult `json:"test_cases"`
}

// TestResult is a single check
type TestResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SubmissionEvaluation is the outcome of evaluating a submission
type SubmissionEvaluation struct {
	SubmissionID string             `json:"submission_id"`
	Status       string             `json:"status"`
	TestResults  TestResults        `json:"test_results"`
	XPAwarded    int64              `json:"xp_awarded"`
	Progression  *ProgressionResult `json:"progression,omitempty"`
}
