package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

func TestChallengeXP(t *testing.T) {
	tests := []struct {
		difficulty string
		minutes    int
		want       int64
	}{
		{domain.DifficultyBeginner, 45, 50},
		{domain.DifficultyBeginner, 10, 75},
		{domain.DifficultyIntermediate, 30, 100},
		{domain.DifficultyIntermediate, 29, 150},
		{domain.DifficultyAdvanced, 60, 200},
		{domain.DifficultyAdvanced, 5, 300},
		{"legendary", 60, 50},
		{domain.DifficultyAdvanced, 0, 200},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChallengeXP(tt.difficulty, tt.minutes), "%s/%d", tt.difficulty, tt.minutes)
	}
}

func TestTutorialXP(t *testing.T) {
	tests := []struct {
		name   string
		reward int64
		score  float64
		want   int64
	}{
		{"perfect", 100, 100, 100},
		{"pass mark gets full reward", 125, 70, 125},
		{"below pass is proportional", 150, 50, 75},
		{"proportional floors", 75, 33.3, 24},
		{"zero", 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TutorialXP(tt.reward, tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := TutorialXP(50, 101)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = TutorialXP(50, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = TutorialXP(-1, 80)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContributionXP(t *testing.T) {
	got, err := ContributionXP(3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(350), got)

	_, err = ContributionXP(-1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
