package discord

// Embed colors
const (
	ColorGold   = 0xFFD700
	ColorPurple = 0x9B59B6
	ColorGreen  = 0x2ECC71
)

// Embed footers
const (
	FooterLevels = "CodeQuest Levels"
	FooterBadges = "CodeQuest Badges"
	FooterQuests = "CodeQuest Quests"
)

// Log messages
const (
	LogMsgAnnouncerReady    = "Discord announcer connected"
	LogMsgAnnouncementSent  = "Discord announcement sent"
	LogMsgAnnouncementError = "Failed to send Discord announcement"
	LogMsgPayloadError      = "Failed to decode event payload for Discord"
	LogMsgNameLookupFailed  = "Failed to resolve username for announcement"
)

// unknownLearner is shown when the username cannot be resolved
const unknownLearner = "A learner"
