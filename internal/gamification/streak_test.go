package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestUpdateStreak(t *testing.T) {
	tests := []struct {
		name  string
		state StreakState
		now   time.Time
		want  StreakUpdate
	}{
		{
			name:  "first activity",
			state: StreakState{},
			now:   *at("2024-03-10T15:00:00Z"),
			want:  StreakUpdate{Current: 1, Longest: 1, Changed: true},
		},
		{
			name:  "first activity keeps a larger longest",
			state: StreakState{Longest: 5},
			now:   *at("2024-03-10T15:00:00Z"),
			want:  StreakUpdate{Current: 1, Longest: 5, Changed: true},
		},
		{
			name:  "same day is idempotent",
			state: StreakState{Current: 3, Longest: 5, LastActivity: at("2024-03-10T00:01:00Z")},
			now:   *at("2024-03-10T23:59:00Z"),
			want:  StreakUpdate{Current: 3, Longest: 5},
		},
		{
			name:  "next day across midnight extends",
			state: StreakState{Current: 3, Longest: 5, LastActivity: at("2024-03-09T23:59:00Z")},
			now:   *at("2024-03-10T00:01:00Z"),
			want:  StreakUpdate{Current: 4, Longest: 5, Changed: true},
		},
		{
			name:  "extension raises longest",
			state: StreakState{Current: 6, Longest: 6, LastActivity: at("2024-03-09T08:00:00Z")},
			now:   *at("2024-03-10T20:00:00Z"),
			want:  StreakUpdate{Current: 7, Longest: 7, Changed: true},
		},
		{
			name:  "two day gap resets to one",
			state: StreakState{Current: 4, Longest: 5, LastActivity: at("2024-03-08T12:00:00Z")},
			now:   *at("2024-03-10T12:00:00Z"),
			want:  StreakUpdate{Current: 1, Longest: 5, Changed: true},
		},
		{
			name:  "reset never lowers longest below the broken streak",
			state: StreakState{Current: 9, Longest: 5, LastActivity: at("2024-02-01T12:00:00Z")},
			now:   *at("2024-03-10T12:00:00Z"),
			want:  StreakUpdate{Current: 1, Longest: 9, Changed: true},
		},
		{
			name:  "event earlier than last activity is ignored",
			state: StreakState{Current: 2, Longest: 2, LastActivity: at("2024-03-11T09:00:00Z")},
			now:   *at("2024-03-10T09:00:00Z"),
			want:  StreakUpdate{Current: 2, Longest: 2},
		},
		{
			// 23:30 at UTC-5 is 04:30 the next UTC day; compared in UTC it is the same day as now
			name:  "calendar days are UTC",
			state: StreakState{Current: 2, Longest: 2, LastActivity: at("2024-03-10T23:30:00-05:00")},
			now:   *at("2024-03-11T10:00:00Z"),
			want:  StreakUpdate{Current: 2, Longest: 2},
		},
		{
			name:  "month boundary",
			state: StreakState{Current: 1, Longest: 1, LastActivity: at("2024-02-29T18:00:00Z")},
			now:   *at("2024-03-01T06:00:00Z"),
			want:  StreakUpdate{Current: 2, Longest: 2, Changed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UpdateStreak(tt.state, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdateStreak_InvalidInput(t *testing.T) {
	_, err := UpdateStreak(StreakState{Current: -1}, *at("2024-03-10T00:00:00Z"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = UpdateStreak(StreakState{Longest: -1}, *at("2024-03-10T00:00:00Z"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = UpdateStreak(StreakState{}, time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStreak_ConsecutiveDays(t *testing.T) {
	state := StreakState{}
	now := *at("2024-01-01T09:00:00Z")

	for day := 1; day <= 10; day++ {
		// two events per day; the second must not count
		for i := 0; i < 2; i++ {
			ts := now.Add(time.Duration(i) * time.Hour)
			upd, err := UpdateStreak(state, ts)
			require.NoError(t, err)
			state = StreakState{Current: upd.Current, Longest: upd.Longest, LastActivity: &ts}
		}
		assert.Equal(t, day, state.Current)
		now = now.Add(24 * time.Hour)
	}
	assert.Equal(t, 10, state.Longest)
}

func TestStreakStatus(t *testing.T) {
	now := *at("2024-03-10T12:00:00Z")

	tests := []struct {
		name  string
		state StreakState
		want  domain.StreakInfo
	}{
		{"no activity", StreakState{}, domain.StreakInfo{}},
		{
			"active today",
			StreakState{Current: 3, Longest: 4, LastActivity: at("2024-03-10T01:00:00Z")},
			domain.StreakInfo{CurrentStreak: 3, LongestStreak: 4, LastActivity: at("2024-03-10T01:00:00Z"), ActiveToday: true},
		},
		{
			"at risk",
			StreakState{Current: 3, Longest: 4, LastActivity: at("2024-03-09T22:00:00Z")},
			domain.StreakInfo{CurrentStreak: 3, LongestStreak: 4, LastActivity: at("2024-03-09T22:00:00Z"), AtRisk: true},
		},
		{
			"broken",
			StreakState{Current: 3, Longest: 4, LastActivity: at("2024-03-07T22:00:00Z")},
			domain.StreakInfo{CurrentStreak: 0, LongestStreak: 4, LastActivity: at("2024-03-07T22:00:00Z")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StreakStatus(tt.state, now))
		})
	}
}
