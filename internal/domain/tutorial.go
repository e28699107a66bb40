package domain

import "time"

// TutorialPassScore is the quiz score at or above which a tutorial counts as passed
const TutorialPassScore = 70.0

// Tutorial is a catalog lesson with a short quiz
type Tutorial struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Content     string         `json:"content" yaml:"content"`
	CodeExample string         `json:"code_example,omitempty" yaml:"code_example"`
	Difficulty  string         `json:"difficulty" yaml:"difficulty"`
	XPReward    int64          `json:"xp_reward" yaml:"xp_reward"`
	Order       int            `json:"order" yaml:"order"`
	Quiz        []QuizQuestion `json:"quiz" yaml:"quiz"`
}

// QuizQuestion is a multiple-choice question
type QuizQuestion struct {
	ID            string   `json:"id" yaml:"id"`
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"correct_answer" yaml:"correct_answer"`
	Explanation   string   `json:"explanation" yaml:"explanation"`
}

// TutorialProgress is a user's best attempt on a tutorial
type TutorialProgress struct {
	UserID      string    `json:"user_id"`
	TutorialID  string    `json:"tutorial_id"`
	Completed   bool      `json:"completed"`
	QuizScore   float64   `json:"quiz_score"`
	XPEarned    int64     `json:"xp_earned"`
	Attempts    int       `json:"attempts"`
	CompletedAt time.Time `json:"completed_at"`
}

// TutorialCompletion is the outcome of submitting a tutorial quiz
type TutorialCompletion struct {
	TutorialID  string             `json:"tutorial_id"`
	QuizScore   float64            `json:"quiz_score"`
	Passed      bool               `json:"passed"`
	XPEarned    int64              `json:"xp_earned"`
	NextID      string             `json:"next_tutorial_id,omitempty"`
	Progression *ProgressionResult `json:"progression,omitempty"`
}
