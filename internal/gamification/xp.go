package gamification

import (
	"fmt"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// ChallengeXP rewards a solved challenge by difficulty, with a speed bonus
// when minutes is positive and under FastCompletionMinutes. Unknown
// difficulties earn the beginner amount.
func ChallengeXP(difficulty string, minutes int) int64 {
	base := ChallengeXPBeginner
	switch difficulty {
	case domain.DifficultyIntermediate:
		base = ChallengeXPIntermediate
	case domain.DifficultyAdvanced:
		base = ChallengeXPAdvanced
	}
	if minutes > 0 && minutes < FastCompletionMinutes {
		return int64(float64(base) * FastCompletionMultiplier)
	}
	return base
}

// TutorialXP returns the full reward at or above the pass score and a
// proportional (floored) share below it.
func TutorialXP(reward int64, quizScore float64) (int64, error) {
	if reward < 0 {
		return 0, fmt.Errorf("%w: negative tutorial reward", domain.ErrInvalidInput)
	}
	if quizScore < 0 || quizScore > 100 {
		return 0, fmt.Errorf("%w: quiz score %.1f outside 0..100", domain.ErrInvalidInput, quizScore)
	}
	if quizScore >= domain.TutorialPassScore {
		return reward, nil
	}
	return int64(float64(reward) * quizScore / 100), nil
}

// ContributionXP credits commits and pull requests
func ContributionXP(commits, pullRequests int) (int64, error) {
	if commits < 0 || pullRequests < 0 {
		return 0, fmt.Errorf("%w: negative contribution counts", domain.ErrInvalidInput)
	}
	return int64(commits)*domain.CommitXP + int64(pullRequests)*domain.PullRequestXP, nil
}
