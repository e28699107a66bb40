package contribution

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,100}$`)

// Service credits code-hosting contributions as XP
type Service interface {
	Profile(ctx context.Context, username string) (*domain.GithubProfile, error)
	// TrackCommits credits the user's commits to owner/repo from the last days
	// that are newer than anything credited before
	TrackCommits(ctx context.Context, userID, owner, repo string, days int) (*domain.ContributionCredit, error)
	// TrackPullRequests credits the user's pull requests to owner/repo opened
	// after anything credited before
	TrackPullRequests(ctx context.Context, userID, owner, repo string) (*domain.ContributionCredit, error)
}

type service struct {
	client      Client
	users       repository.User
	repo        repository.Contribution
	progression gamification.Service
	clock       clock.Clock
}

// NewService creates the contribution tracker. A nil client disables it.
func NewService(client Client, users repository.User, repo repository.Contribution, progression gamification.Service, clk clock.Clock) Service {
	return &service{
		client:      client,
		users:       users,
		repo:        repo,
		progression: progression,
		clock:       clk,
	}
}

func (s *service) Profile(ctx context.Context, username string) (*domain.GithubProfile, error) {
	if s.client == nil {
		return nil, domain.ErrContributionsUnavailable
	}
	if !namePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: invalid GitHub username", domain.ErrInvalidInput)
	}
	return s.client.Profile(ctx, username)
}

func (s *service) TrackCommits(ctx context.Context, userID, owner, repo string, days int) (*domain.ContributionCredit, error) {
	if days <= 0 {
		days = DefaultCommitWindowDays
	}
	if days > MaxCommitWindowDays {
		return nil, fmt.Errorf("%w: window is at most %d days", domain.ErrInvalidInput, MaxCommitWindowDays)
	}
	author, err := s.prepare(ctx, userID, owner, repo)
	if err != nil {
		return nil, err
	}

	repoKey := owner + "/" + repo
	cursor, err := s.repo.GetCursor(ctx, userID, repoKey, domain.ContributionCommit)
	if err != nil {
		return nil, err
	}

	since := s.clock.Now().AddDate(0, 0, -days)
	if cursor.At != nil && cursor.At.After(since) {
		since = *cursor.At
	}
	commits, err := s.client.ListCommits(ctx, owner, repo, author, since)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgGitHubRequestError, "owner", owner, "repo", repo, "error", err)
		return nil, err
	}
	return s.credit(ctx, userID, repoKey, domain.ContributionCommit, commits)
}

func (s *service) TrackPullRequests(ctx context.Context, userID, owner, repo string) (*domain.ContributionCredit, error) {
	author, err := s.prepare(ctx, userID, owner, repo)
	if err != nil {
		return nil, err
	}

	repoKey := owner + "/" + repo
	cursor, err := s.repo.GetCursor(ctx, userID, repoKey, domain.ContributionPullRequest)
	if err != nil {
		return nil, err
	}

	var since time.Time
	if cursor.At != nil {
		since = *cursor.At
	}
	prs, err := s.client.ListPullRequests(ctx, owner, repo, author, since)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgGitHubRequestError, "owner", owner, "repo", repo, "error", err)
		return nil, err
	}
	return s.credit(ctx, userID, repoKey, domain.ContributionPullRequest, prs)
}

// prepare validates the target repository and returns the user's linked GitHub login
func (s *service) prepare(ctx context.Context, userID, owner, repo string) (string, error) {
	if s.client == nil {
		return "", domain.ErrContributionsUnavailable
	}
	if !namePattern.MatchString(owner) || !namePattern.MatchString(repo) {
		return "", fmt.Errorf("%w: invalid repository %q", domain.ErrInvalidInput, owner+"/"+repo)
	}
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	login := strings.TrimSpace(u.GithubUsername)
	if login == "" {
		return "", fmt.Errorf("%w: link a GitHub username to your profile first", domain.ErrInvalidInput)
	}
	return login, nil
}

// credit awards XP for the listed contributions newer than the stored cursor
// and moves the cursor to the newest of them. The cursor and the XP commit in
// one transaction.
func (s *service) credit(ctx context.Context, userID, repoKey, kind string, items []domain.Contribution) (*domain.ContributionCredit, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	cursor, err := tx.GetCursorForUpdate(ctx, userID, repoKey, kind)
	if err != nil {
		return nil, err
	}

	out := &domain.ContributionCredit{
		Kind:          kind,
		Repository:    repoKey,
		Counted:       len(items),
		CreditedTotal: cursor.Credited,
	}

	var fresh []domain.Contribution
	for _, item := range items {
		if !cursor.Covers(item) {
			fresh = append(fresh, item)
		}
	}
	if len(fresh) == 0 {
		log.Debug(LogMsgNothingNew, "user_id", userID, "repository", repoKey, "kind", kind)
		return out, nil
	}

	newest := fresh[0]
	for _, item := range fresh[1:] {
		if item.At.After(newest.At) {
			newest = item
		}
	}
	next := domain.ContributionCursor{
		Credited: cursor.Credited + len(fresh),
		At:       &newest.At,
		Ref:      newest.Ref,
	}
	if err := tx.AdvanceCursor(ctx, userID, repoKey, kind, next, s.clock.Now()); err != nil {
		return nil, err
	}

	var xp int64
	if kind == domain.ContributionCommit {
		xp, err = gamification.ContributionXP(len(fresh), 0)
	} else {
		xp, err = gamification.ContributionXP(0, len(fresh))
	}
	if err != nil {
		return nil, err
	}

	award := domain.XPAward{
		Amount:   xp,
		Source:   domain.XPSourceContribution,
		SourceID: kind + ":" + repoKey + "@" + newest.Ref,
	}
	result, err := s.progression.StageXP(ctx, tx, userID, award, gamification.FreshOnMissing())
	if err != nil {
		log.Error(LogMsgXPAwardFailed, "user_id", userID, "repository", repoKey, "error", err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit contribution credit: %w", err)
	}
	s.progression.Announce(ctx, award, result)

	log.Info(LogMsgCredited, "user_id", userID, "repository", repoKey, "kind", kind, "count", len(fresh), "xp", xp)

	out.NewlyCredit = len(fresh)
	out.CreditedTotal = next.Credited
	out.XPEarned = xp
	out.Progression = result
	return out, nil
}
