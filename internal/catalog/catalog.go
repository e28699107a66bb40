package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// ErrInvalidCatalog wraps every validation failure
var ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)

// Catalog is the immutable, validated set of quests and tutorials.
// Accessors return copies; callers may modify the results freely.
type Catalog struct {
	quests       []domain.Quest
	questByID    map[string]int
	taskByID     map[string]domain.Task
	tutorials    []domain.Tutorial
	tutorialByID map[string]int
}

type questFile struct {
	Quests []domain.Quest `yaml:"quests"`
}

type tutorialFile struct {
	Tutorials []domain.Tutorial `yaml:"tutorials"`
}

// New validates the inputs and builds the lookup indexes
func New(quests []domain.Quest, tutorials []domain.Tutorial) (*Catalog, error) {
	c := &Catalog{
		questByID:    make(map[string]int, len(quests)),
		taskByID:     make(map[string]domain.Task),
		tutorialByID: make(map[string]int, len(tutorials)),
	}

	qs := make([]domain.Quest, len(quests))
	copy(qs, quests)
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].Order < qs[j].Order })

	orders := make(map[int]string, len(qs))
	for i := range qs {
		q := &qs[i]
		if err := validateQuest(*q); err != nil {
			return nil, err
		}
		if _, dup := c.questByID[q.ID]; dup {
			return nil, fmt.Errorf("%w: quest %s: %s", ErrInvalidCatalog, q.ID, ErrMsgDuplicateID)
		}
		if other, dup := orders[q.Order]; dup {
			return nil, fmt.Errorf("%w: quests %s and %s: %s %d", ErrInvalidCatalog, other, q.ID, ErrMsgDuplicateOrder, q.Order)
		}
		orders[q.Order] = q.ID

		tasks := make([]domain.Task, len(q.Tasks))
		for j, t := range q.Tasks {
			t.QuestID = q.ID
			if err := validateTask(t); err != nil {
				return nil, err
			}
			if _, dup := c.taskByID[t.ID]; dup {
				return nil, fmt.Errorf("%w: task %s: %s", ErrInvalidCatalog, t.ID, ErrMsgDuplicateID)
			}
			c.taskByID[t.ID] = t
			tasks[j] = t
		}
		q.Tasks = tasks
		c.questByID[q.ID] = i
	}
	c.quests = qs

	ts := make([]domain.Tutorial, len(tutorials))
	copy(ts, tutorials)
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Order < ts[j].Order })

	orders = make(map[int]string, len(ts))
	for i, t := range ts {
		if err := validateTutorial(t); err != nil {
			return nil, err
		}
		if _, dup := c.tutorialByID[t.ID]; dup {
			return nil, fmt.Errorf("%w: tutorial %s: %s", ErrInvalidCatalog, t.ID, ErrMsgDuplicateID)
		}
		if other, dup := orders[t.Order]; dup {
			return nil, fmt.Errorf("%w: tutorials %s and %s: %s %d", ErrInvalidCatalog, other, t.ID, ErrMsgDuplicateOrder, t.Order)
		}
		orders[t.Order] = t.ID
		c.tutorialByID[t.ID] = i
	}
	c.tutorials = ts

	return c, nil
}

func validateQuest(q domain.Quest) error {
	if q.ID == "" {
		return fmt.Errorf("%w: quest %q: %s", ErrInvalidCatalog, q.Title, ErrMsgEmptyID)
	}
	if len(q.Tasks) == 0 {
		return fmt.Errorf("%w: quest %s: %s", ErrInvalidCatalog, q.ID, ErrMsgNoTasks)
	}
	if !knownDifficulty(q.Difficulty) {
		return fmt.Errorf("%w: quest %s: %s %q", ErrInvalidCatalog, q.ID, ErrMsgUnknownLevel, q.Difficulty)
	}
	return nil
}

func validateTask(t domain.Task) error {
	if t.ID == "" {
		return fmt.Errorf("%w: task %q in quest %s: %s", ErrInvalidCatalog, t.Title, t.QuestID, ErrMsgEmptyID)
	}
	if t.XPReward <= 0 {
		return fmt.Errorf("%w: task %s: %s", ErrInvalidCatalog, t.ID, ErrMsgBadReward)
	}
	return nil
}

func validateTutorial(t domain.Tutorial) error {
	if t.ID == "" {
		return fmt.Errorf("%w: tutorial %q: %s", ErrInvalidCatalog, t.Title, ErrMsgEmptyID)
	}
	if t.XPReward <= 0 {
		return fmt.Errorf("%w: tutorial %s: %s", ErrInvalidCatalog, t.ID, ErrMsgBadReward)
	}
	if !knownDifficulty(t.Difficulty) {
		return fmt.Errorf("%w: tutorial %s: %s %q", ErrInvalidCatalog, t.ID, ErrMsgUnknownLevel, t.Difficulty)
	}
	for _, q := range t.Quiz {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("%w: tutorial %s question %s: %s", ErrInvalidCatalog, t.ID, q.ID, ErrMsgBadAnswerIndex)
		}
	}
	return nil
}

func knownDifficulty(d string) bool {
	switch d {
	case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
		return true
	}
	return false
}

// Quests returns all quests ordered by Order
func (c *Catalog) Quests() []domain.Quest {
	out := make([]domain.Quest, len(c.quests))
	for i, q := range c.quests {
		out[i] = cloneQuest(q)
	}
	return out
}

// QuestsByCategory returns the quests in one category, ordered by Order
func (c *Catalog) QuestsByCategory(category string) []domain.Quest {
	out := make([]domain.Quest, 0)
	for _, q := range c.quests {
		if q.Category == category {
			out = append(out, cloneQuest(q))
		}
	}
	return out
}

// Quest looks a quest up by id
func (c *Catalog) Quest(id string) (domain.Quest, bool) {
	i, ok := c.questByID[id]
	if !ok {
		return domain.Quest{}, false
	}
	return cloneQuest(c.quests[i]), true
}

// Task looks a task up by id across all quests
func (c *Catalog) Task(id string) (domain.Task, bool) {
	t, ok := c.taskByID[id]
	if !ok {
		return domain.Task{}, false
	}
	return cloneTask(t), true
}

// Tutorials returns all tutorials ordered by Order
func (c *Catalog) Tutorials() []domain.Tutorial {
	out := make([]domain.Tutorial, len(c.tutorials))
	for i, t := range c.tutorials {
		out[i] = cloneTutorial(t)
	}
	return out
}

// Tutorial looks a tutorial up by id
func (c *Catalog) Tutorial(id string) (domain.Tutorial, bool) {
	i, ok := c.tutorialByID[id]
	if !ok {
		return domain.Tutorial{}, false
	}
	return cloneTutorial(c.tutorials[i]), true
}

// NextTutorial returns the tutorial that follows id. ok is false for the last one or an unknown id.
func (c *Catalog) NextTutorial(id string) (domain.Tutorial, bool) {
	i, ok := c.tutorialByID[id]
	if !ok || i+1 >= len(c.tutorials) {
		return domain.Tutorial{}, false
	}
	return cloneTutorial(c.tutorials[i+1]), true
}

// TaskCount is the number of tasks across all quests
func (c *Catalog) TaskCount() int {
	return len(c.taskByID)
}

func cloneQuest(q domain.Quest) domain.Quest {
	q.LearningOutcomes = append([]string(nil), q.LearningOutcomes...)
	tasks := make([]domain.Task, len(q.Tasks))
	for i, t := range q.Tasks {
		tasks[i] = cloneTask(t)
	}
	q.Tasks = tasks
	return q
}

func cloneTask(t domain.Task) domain.Task {
	t.Hints = append([]string(nil), t.Hints...)
	return t
}

func cloneTutorial(t domain.Tutorial) domain.Tutorial {
	quiz := make([]domain.QuizQuestion, len(t.Quiz))
	for i, q := range t.Quiz {
		q.Options = append([]string(nil), q.Options...)
		quiz[i] = q
	}
	t.Quiz = quiz
	return t
}
