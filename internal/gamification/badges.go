package gamification

import (
	"fmt"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Metric names an aggregate stat a badge rule can test
type Metric string

// Supported metrics
const (
	MetricTotalXP         Metric = "total_xp"
	MetricLevel           Metric = "level"
	MetricCompletedQuests Metric = "completed_quests"
	MetricCurrentStreak   Metric = "current_streak"
	MetricContributions   Metric = "contributions"
)

// Criteria is satisfied when the metric reaches the threshold
type Criteria struct {
	Metric    Metric `json:"metric"`
	Threshold int64  `json:"threshold"`
}

// BadgeRule is one entry of the badge catalog
type BadgeRule struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    string   `json:"category"`
	Criteria    Criteria `json:"criteria"`
}

// Stats are the aggregates badge rules are evaluated against
type Stats struct {
	TotalXP         int64
	Level           int
	CompletedQuests int
	CurrentStreak   int
	Contributions   int
}

// Value returns the stat for m
func (s Stats) Value(m Metric) (int64, bool) {
	switch m {
	case MetricTotalXP:
		return s.TotalXP, true
	case MetricLevel:
		return int64(s.Level), true
	case MetricCompletedQuests:
		return int64(s.CompletedQuests), true
	case MetricCurrentStreak:
		return int64(s.CurrentStreak), true
	case MetricContributions:
		return int64(s.Contributions), true
	}
	return 0, false
}

// DefaultBadgeRules returns the launch badge catalog in evaluation order
func DefaultBadgeRules() []BadgeRule {
	return []BadgeRule{
		{BadgeFirstQuest, "Quest Starter", "Complete your first quest", "🎯", CategoryQuest, Criteria{MetricCompletedQuests, 1}},
		{BadgeThreeQuests, "Quest Enthusiast", "Complete 3 quests", "🚀", CategoryMilestone, Criteria{MetricCompletedQuests, 3}},
		{BadgeTenQuests, "Quest Master", "Complete 10 quests", "👑", CategoryMilestone, Criteria{MetricCompletedQuests, 10}},
		{BadgeThousandXP, "XP Collector", "Earn 1000 XP", "💯", CategoryMilestone, Criteria{MetricTotalXP, 1000}},
		{BadgeLevelFive, "Level 5 Achiever", "Reach level 5", "⭐", CategoryLevel, Criteria{MetricLevel, 5}},
		{BadgeLevelTen, "Level 10 Legend", "Reach level 10", "👸", CategoryLevel, Criteria{MetricLevel, 10}},
		{BadgeSevenDayStreak, "Week Warrior", "Maintain a 7-day streak", "🔥", CategoryStreak, Criteria{MetricCurrentStreak, 7}},
		{BadgeThirtyDayStreak, "Month Master", "Maintain a 30-day streak", "💪", CategoryStreak, Criteria{MetricCurrentStreak, 30}},
		{BadgeFirstContribution, "Open Source Contributor", "Get your first pull request credited", "🌟", CategoryAchievement, Criteria{MetricContributions, 1}},
	}
}

// BadgeEvaluator checks a fixed, ordered rule set
type BadgeEvaluator struct {
	rules []BadgeRule
	index map[string]int
}

// NewBadgeEvaluator validates the rules: unique non-empty ids, known metrics,
// non-negative thresholds.
func NewBadgeEvaluator(rules []BadgeRule) (*BadgeEvaluator, error) {
	e := &BadgeEvaluator{
		rules: make([]BadgeRule, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	copy(e.rules, rules)

	for i, r := range e.rules {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: badge rule %d has no id", domain.ErrInvalidInput, i)
		}
		if _, dup := e.index[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate badge id %q", domain.ErrInvalidInput, r.ID)
		}
		if _, ok := (Stats{}).Value(r.Criteria.Metric); !ok {
			return nil, fmt.Errorf("%w: badge %q uses unknown metric %q", domain.ErrInvalidInput, r.ID, r.Criteria.Metric)
		}
		if r.Criteria.Threshold < 0 {
			return nil, fmt.Errorf("%w: badge %q has negative threshold", domain.ErrInvalidInput, r.ID)
		}
		e.index[r.ID] = i
	}
	return e, nil
}

// DefaultBadgeEvaluator uses DefaultBadgeRules
func DefaultBadgeEvaluator() *BadgeEvaluator {
	e, err := NewBadgeEvaluator(DefaultBadgeRules())
	if err != nil {
		panic(err)
	}
	return e
}

// Evaluate returns the ids of rules satisfied by stats and not in earned,
// in rule order. earned is not modified. The result is never nil.
func (e *BadgeEvaluator) Evaluate(stats Stats, earned []string) []string {
	have := make(map[string]struct{}, len(earned))
	for _, id := range earned {
		have[id] = struct{}{}
	}

	newly := make([]string, 0)
	for _, r := range e.rules {
		if _, ok := have[r.ID]; ok {
			continue
		}
		v, _ := stats.Value(r.Criteria.Metric)
		if v >= r.Criteria.Threshold {
			newly = append(newly, r.ID)
		}
	}
	return newly
}

// Rules returns a copy of the catalog in evaluation order
func (e *BadgeEvaluator) Rules() []BadgeRule {
	out := make([]BadgeRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Rule looks up a rule by id
func (e *BadgeEvaluator) Rule(id string) (BadgeRule, bool) {
	i, ok := e.index[id]
	if !ok {
		return BadgeRule{}, false
	}
	return e.rules[i], true
}
