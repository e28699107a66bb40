package gamification

import (
	"testing"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

func BenchmarkLevelTable_Resolve(b *testing.B) {
	table := DefaultLevelTable()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = table.Resolve(int64(i % 15000))
	}
}

func BenchmarkBadgeEvaluator_Evaluate(b *testing.B) {
	eval := DefaultBadgeEvaluator()
	stats := Stats{TotalXP: 4200, Level: 7, CompletedQuests: 3, CurrentStreak: 9, Contributions: 2}
	earned := []string{BadgeFirstQuest, BadgeThousandXP}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = eval.Evaluate(stats, earned)
	}
}

func BenchmarkEngine_ApplyProgressEvent(b *testing.B) {
	engine := NewDefaultEngine()
	last := time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)
	now := last.Add(20 * time.Hour)
	snap := &domain.UserProgress{UserID: "bench", TotalXP: 950, Level: 4, CurrentStreak: 3, LongestStreak: 5, LastActivity: &last}
	in := ProgressInput{XPDelta: 100, CompletedQuests: 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.ApplyProgressEvent(snap, in, now); err != nil {
			b.Fatal(err)
		}
	}
}
