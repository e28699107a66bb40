package gamification

import (
	"fmt"
	"math"
	"sort"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// defaultThresholds is the single level table for the platform
var defaultThresholds = []domain.LevelThreshold{
	{Level: 1, MinXP: 0, Title: TitleNovice},
	{Level: 2, MinXP: 100, Title: TitleNovice},
	{Level: 3, MinXP: 250, Title: TitleNovice},
	{Level: 4, MinXP: 500, Title: TitleNovice},
	{Level: 5, MinXP: 1000, Title: TitleApprentice},
	{Level: 6, MinXP: 2000, Title: TitleApprentice},
	{Level: 7, MinXP: 3500, Title: TitleApprentice},
	{Level: 8, MinXP: 5500, Title: TitleApprentice},
	{Level: 9, MinXP: 8000, Title: TitleApprentice},
	{Level: 10, MinXP: 12000, Title: TitlePractitioner},
}

// LevelTable is an immutable, validated ordering of level thresholds
type LevelTable struct {
	thresholds []domain.LevelThreshold
}

// NewLevelTable validates and copies thresholds. Levels must start at 1 with
// min_xp 0, be contiguous, and have strictly increasing min_xp.
func NewLevelTable(thresholds []domain.LevelThreshold) (*LevelTable, error) {
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("%w: level table is empty", domain.ErrInvalidInput)
	}

	t := make([]domain.LevelThreshold, len(thresholds))
	copy(t, thresholds)

	for i, th := range t {
		if th.Level != i+1 {
			return nil, fmt.Errorf("%w: level table entry %d has level %d, want %d", domain.ErrInvalidInput, i, th.Level, i+1)
		}
		if th.Title == "" {
			return nil, fmt.Errorf("%w: level %d has no title", domain.ErrInvalidInput, th.Level)
		}
		if i == 0 {
			if th.MinXP != 0 {
				return nil, fmt.Errorf("%w: level 1 must start at 0 xp, got %d", domain.ErrInvalidInput, th.MinXP)
			}
			continue
		}
		if th.MinXP <= t[i-1].MinXP {
			return nil, fmt.Errorf("%w: level %d min_xp %d is not above level %d min_xp %d",
				domain.ErrInvalidInput, th.Level, th.MinXP, t[i-1].Level, t[i-1].MinXP)
		}
	}

	return &LevelTable{thresholds: t}, nil
}

// DefaultLevelTable returns the built-in table
func DefaultLevelTable() *LevelTable {
	t, err := NewLevelTable(defaultThresholds)
	if err != nil {
		panic(err)
	}
	return t
}

// Thresholds returns a copy of the table
func (t *LevelTable) Thresholds() []domain.LevelThreshold {
	out := make([]domain.LevelThreshold, len(t.thresholds))
	copy(out, t.thresholds)
	return out
}

// MaxLevel is the highest defined level
func (t *LevelTable) MaxLevel() int {
	return t.thresholds[len(t.thresholds)-1].Level
}

// LevelFor returns the level number for totalXP
func (t *LevelTable) LevelFor(totalXP int64) (int, error) {
	idx, err := t.index(totalXP)
	if err != nil {
		return 0, err
	}
	return t.thresholds[idx].Level, nil
}

// index finds the highest threshold whose min_xp <= totalXP
func (t *LevelTable) index(totalXP int64) (int, error) {
	if totalXP < 0 {
		return 0, fmt.Errorf("%w: total xp %d is negative", domain.ErrInvalidInput, totalXP)
	}
	// first entry strictly above totalXP, minus one
	i := sort.Search(len(t.thresholds), func(i int) bool {
		return t.thresholds[i].MinXP > totalXP
	})
	return i - 1, nil
}

// Resolve places totalXP in the table. Above the last threshold the level is
// clamped; NextLevelMinXP and XPToNextLevel are then nil and progress is 100.
func (t *LevelTable) Resolve(totalXP int64) (domain.LevelInfo, error) {
	idx, err := t.index(totalXP)
	if err != nil {
		return domain.LevelInfo{}, err
	}

	cur := t.thresholds[idx]
	info := domain.LevelInfo{
		Level:             cur.Level,
		Title:             cur.Title,
		TotalXP:           totalXP,
		CurrentLevelMinXP: cur.MinXP,
		XPIntoLevel:       totalXP - cur.MinXP,
	}

	if idx == len(t.thresholds)-1 {
		info.MaxLevel = true
		info.ProgressPercentage = 100
		return info, nil
	}

	next := t.thresholds[idx+1].MinXP
	width := next - cur.MinXP
	remaining := next - totalXP
	info.NextLevelMinXP = &next
	info.XPToNextLevel = &width
	info.XPRemaining = &remaining
	info.ProgressPercentage = progressPercent(info.XPIntoLevel, width)

	return info, nil
}

// progressPercent rounds to one decimal and stays below 100 until the level is reached
func progressPercent(into, width int64) float64 {
	if into <= 0 {
		return 0
	}
	p := math.Round(float64(into)*1000/float64(width)) / 10
	if p >= 100 {
		return maxPartialProgress
	}
	return p
}
