package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// Series bounds for DailyProgress
const (
	DefaultDays = 7
	MaxDays     = 90
)

const dateLayout = "2006-01-02"

// Service reports on a user's learning activity
type Service interface {
	Summary(ctx context.Context, userID string) (*domain.AnalyticsSummary, error)
	// DailyProgress returns one entry per UTC day, oldest first, ending today.
	// Days without activity are present with zero values.
	DailyProgress(ctx context.Context, userID string, days int) ([]domain.DailyProgress, error)
}

type service struct {
	repo  repository.Analytics
	clock clock.Clock
}

// NewService creates a new analytics service
func NewService(repo repository.Analytics, clk clock.Clock) Service {
	return &service{repo: repo, clock: clk}
}

func (s *service) Summary(ctx context.Context, userID string) (*domain.AnalyticsSummary, error) {
	return s.repo.GetSummary(ctx, userID)
}

func (s *service) DailyProgress(ctx context.Context, userID string, days int) ([]domain.DailyProgress, error) {
	if days <= 0 {
		days = DefaultDays
	}
	if days > MaxDays {
		return nil, fmt.Errorf("%w: at most %d days", domain.ErrInvalidInput, MaxDays)
	}

	now := s.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(days - 1))

	rows, err := s.repo.GetDailyXP(ctx, userID, start)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]domain.DailyProgress, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	series := make([]domain.DailyProgress, 0, days)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		if row, ok := byDate[key]; ok {
			series = append(series, row)
			continue
		}
		series = append(series, domain.DailyProgress{Date: key})
	}
	return series, nil
}
