package domain

import "time"

// Contribution kinds credited from the code-hosting platform
const (
	ContributionCommit      = "commit"
	ContributionPullRequest = "pull_request"
)

// Per-contribution XP rewards
const (
	CommitXP      int64 = 50
	PullRequestXP int64 = 100
)

// GithubProfile is the public profile of a code-hosting account
type GithubProfile struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	Followers   int    `json:"followers"`
	PublicRepos int    `json:"public_repos"`
}

// Contribution is one commit or pull request on the code-hosting platform
type Contribution struct {
	// Ref is the commit SHA or the pull request number
	Ref string
	// At is the commit time or the pull request creation time
	At time.Time
}

// ContributionCursor records what has been credited for one user, repository
// and kind. Contributions at or before At are never credited again.
type ContributionCursor struct {
	Credited int
	At       *time.Time
	Ref      string
}

// Covers reports whether item was credited by an earlier call
func (c ContributionCursor) Covers(item Contribution) bool {
	return c.At != nil && !item.At.After(*c.At)
}

// ContributionCredit is the outcome of a tracking call. Counted is how many
// contributions the platform reported for the request.
type ContributionCredit struct {
	Kind          string             `json:"kind"`
	Repository    string             `json:"repository"`
	Counted       int                `json:"counted"`
	NewlyCredit   int                `json:"newly_credited"`
	CreditedTotal int                `json:"credited_total"`
	XPEarned      int64              `json:"xp_earned"`
	Progression   *ProgressionResult `json:"progression,omitempty"`
}
