package domain

import "time"

// Difficulty levels shared by quests, tutorials and challenges
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Quest is a catalog entry: an ordered list of tasks with XP rewards
type Quest struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	Description      string   `json:"description" yaml:"description"`
	Category         string   `json:"category" yaml:"category"`
	Difficulty       string   `json:"difficulty" yaml:"difficulty"`
	Order            int      `json:"order" yaml:"order"`
	EstimatedTime    string   `json:"estimated_time" yaml:"estimated_time"`
	LearningOutcomes []string `json:"learning_outcomes" yaml:"learning_outcomes"`
	Tasks            []Task   `json:"tasks" yaml:"tasks"`
}

// TotalXP returns the sum of the task rewards
func (q Quest) TotalXP() int64 {
	var total int64
	for _, t := range q.Tasks {
		total += t.XPReward
	}
	return total
}

// Task returns the task with the given id
func (q Quest) Task(taskID string) (Task, bool) {
	for _, t := range q.Tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return Task{}, false
}

// Task is one step of a quest
type Task struct {
	ID             string   `json:"id" yaml:"id"`
	QuestID        string   `json:"quest_id" yaml:"-"`
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description" yaml:"description"`
	Instructions   string   `json:"instructions" yaml:"instructions"`
	Difficulty     string   `json:"difficulty" yaml:"difficulty"`
	XPReward       int64    `json:"xp_reward" yaml:"xp_reward"`
	ValidationType string   `json:"validation_type" yaml:"validation_type"`
	Hints          []string `json:"hints,omitempty" yaml:"hints"`
}

// Quest progress statuses
const (
	QuestStatusInProgress = "in_progress"
	QuestStatusCompleted  = "completed"
)

// QuestProgress is a user's state on one quest
type QuestProgress struct {
	UserID         string         `json:"user_id"`
	QuestID        string         `json:"quest_id"`
	Status         string         `json:"status"`
	StartedAt      time.Time      `json:"started_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	XPEarned       int64          `json:"xp_earned"`
	TasksCompleted int            `json:"tasks_completed"`
	TotalTasks     int            `json:"total_tasks"`
	Tasks          []TaskProgress `json:"tasks"`
}

// TaskProgress is a completed task record
type TaskProgress struct {
	TaskID      string    `json:"task_id"`
	XPEarned    int64     `json:"xp_earned"`
	CompletedAt time.Time `json:"completed_at"`
}

// TaskCompletion is the outcome of completing one task
type TaskCompletion struct {
	QuestID        string             `json:"quest_id"`
	TaskID         string             `json:"task_id"`
	TaskXP         int64              `json:"task_xp"`
	QuestXP        int64              `json:"total_quest_xp"`
	TasksCompleted int                `json:"tasks_completed"`
	TotalTasks     int                `json:"total_tasks"`
	QuestCompleted bool               `json:"quest_completed"`
	Progression    *ProgressionResult `json:"progression,omitempty"`
}

// QuestStats summarises a user's quest activity
type QuestStats struct {
	QuestsStarted   int   `json:"quests_started"`
	QuestsCompleted int   `json:"quests_completed"`
	TasksCompleted  int   `json:"tasks_completed"`
	QuestXP         int64 `json:"quest_xp"`
}
