package contribution

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Client reads contribution data from the code-hosting platform
type Client interface {
	Profile(ctx context.Context, username string) (*domain.GithubProfile, error)
	// ListCommits returns commits by author in owner/repo committed at or after since
	ListCommits(ctx context.Context, owner, repo, author string, since time.Time) ([]domain.Contribution, error)
	// ListPullRequests returns pull requests opened by author in owner/repo
	// after since, in any state. A zero since lists them all.
	ListPullRequests(ctx context.Context, owner, repo, author string, since time.Time) ([]domain.Contribution, error)
}

// GitHubClient implements Client on the GitHub REST API
type GitHubClient struct {
	gh *github.Client
}

// NewGitHubClient creates a client. An empty token makes unauthenticated,
// heavily rate limited requests.
func NewGitHubClient(token string, httpClient *http.Client) *GitHubClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}
	gh := github.NewClient(httpClient)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	return &GitHubClient{gh: gh}
}

func (c *GitHubClient) Profile(ctx context.Context, username string) (*domain.GithubProfile, error) {
	u, _, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		return nil, classify(err, "user "+username)
	}
	return &domain.GithubProfile{
		Username:    u.GetLogin(),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		Bio:         u.GetBio(),
		Followers:   u.GetFollowers(),
		PublicRepos: u.GetPublicRepos(),
	}, nil
}

func (c *GitHubClient) ListCommits(ctx context.Context, owner, repo, author string, since time.Time) ([]domain.Contribution, error) {
	opts := &github.CommitsListOptions{
		Author:      author,
		Since:       since,
		ListOptions: github.ListOptions{PerPage: PageSize},
	}
	var out []domain.Contribution
	for page := 0; page < MaxPages; page++ {
		commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		if statusOf(err) == http.StatusConflict {
			// empty repository
			return nil, nil
		}
		if err != nil {
			return nil, classify(err, "repository "+owner+"/"+repo)
		}
		for _, commit := range commits {
			out = append(out, domain.Contribution{
				Ref: commit.GetSHA(),
				At:  commit.GetCommit().GetCommitter().GetDate().Time.UTC(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (c *GitHubClient) ListPullRequests(ctx context.Context, owner, repo, author string, since time.Time) ([]domain.Contribution, error) {
	opts := &github.PullRequestListOptions{
		State:       PullRequestStateAll,
		Sort:        PullRequestSortCreated,
		Direction:   PullRequestDirectionDesc,
		ListOptions: github.ListOptions{PerPage: PageSize},
	}
	var out []domain.Contribution
	for page := 0; page < MaxPages; page++ {
		prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, classify(err, "repository "+owner+"/"+repo)
		}
		for _, pr := range prs {
			created := pr.GetCreatedAt().Time.UTC()
			if !since.IsZero() && !created.After(since) {
				// newest first, so everything after this is older still
				return out, nil
			}
			if strings.EqualFold(pr.GetUser().GetLogin(), author) {
				out = append(out, domain.Contribution{Ref: strconv.Itoa(pr.GetNumber()), At: created})
			}
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

// classify maps GitHub failures onto domain errors
func classify(err error, what string) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: rate limited: %v", domain.ErrContributionsUnavailable, err)
	}
	if statusOf(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %s not found on GitHub", domain.ErrInvalidInput, what)
	}
	return fmt.Errorf("%w: %v", domain.ErrContributionsUnavailable, err)
}

func statusOf(err error) int {
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode
	}
	return 0
}
