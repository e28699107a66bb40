package gamification

// Level titles
const (
	TitleNovice       = "Novice"
	TitleApprentice   = "Apprentice"
	TitlePractitioner = "Practitioner"
)

// maxPartialProgress is reported when rounding would otherwise show 100% below the next level
const maxPartialProgress = 99.9

// Badge categories
const (
	CategoryQuest       = "quest"
	CategoryMilestone   = "milestone"
	CategoryLevel       = "level"
	CategoryStreak      = "streak"
	CategoryAchievement = "achievement"
)

// Badge identifiers
const (
	BadgeFirstQuest        = "first_quest"
	BadgeThreeQuests       = "three_quests"
	BadgeTenQuests         = "ten_quests"
	BadgeThousandXP        = "thousand_xp"
	BadgeLevelFive         = "level_five"
	BadgeLevelTen          = "level_ten"
	BadgeSevenDayStreak    = "seven_day_streak"
	BadgeThirtyDayStreak   = "thirty_day_streak"
	BadgeFirstContribution = "first_contribution"
)

// Challenge XP by difficulty
const (
	ChallengeXPBeginner     int64 = 50
	ChallengeXPIntermediate int64 = 100
	ChallengeXPAdvanced     int64 = 200

	// FastCompletionMinutes is the cutoff for the speed bonus
	FastCompletionMinutes = 30
	// FastCompletionMultiplier is applied to challenges finished under the cutoff
	FastCompletionMultiplier = 1.5
)

// Log messages
const (
	LogMsgXPAwarded         = "Awarded XP"
	LogMsgXPStaged          = "XP staged in caller transaction"
	LogMsgLevelUp           = "User leveled up"
	LogMsgBadgesEarned      = "Badges earned"
	LogMsgProgressionFailed = "Progression event failed"
)
