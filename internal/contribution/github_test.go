package contribution

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

func newTestGitHub(t *testing.T, mux *http.ServeMux) *GitHubClient {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewGitHubClient("", srv.Client())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	c.gh.BaseURL = base
	return c
}

func TestGitHubClient_Profile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"octocat","name":"The Octocat","avatar_url":"https://a/b.png","followers":10,"public_repos":8}`)
	})
	c := newTestGitHub(t, mux)

	p, err := c.Profile(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, &domain.GithubProfile{
		Username:    "octocat",
		Name:        "The Octocat",
		AvatarURL:   "https://a/b.png",
		Followers:   10,
		PublicRepos: 8,
	}, p)
}

func TestGitHubClient_ProfileNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/nobody", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	c := newTestGitHub(t, mux)

	_, err := c.Profile(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGitHubClient_ListCommits(t *testing.T) {
	since := time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "octocat", r.URL.Query().Get("author"))
		assert.Equal(t, since.Format(time.RFC3339), r.URL.Query().Get("since"))
		fmt.Fprint(w, `[
			{"sha":"c3","commit":{"committer":{"date":"2024-05-15T08:00:00Z"}}},
			{"sha":"b2","commit":{"committer":{"date":"2024-05-14T08:00:00Z"}}}
		]`)
	})
	c := newTestGitHub(t, mux)

	got, err := c.ListCommits(context.Background(), "octo", "hello", "octocat", since)
	require.NoError(t, err)
	assert.Equal(t, []domain.Contribution{
		{Ref: "c3", At: time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)},
		{Ref: "b2", At: time.Date(2024, 5, 14, 8, 0, 0, 0, time.UTC)},
	}, got)
}

func TestGitHubClient_ListCommitsEmptyRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/empty/commits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"message":"Git Repository is empty."}`)
	})
	c := newTestGitHub(t, mux)

	got, err := c.ListCommits(context.Background(), "octo", "empty", "octocat", time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGitHubClient_ListPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PullRequestStateAll, r.URL.Query().Get("state"))
		assert.Equal(t, PullRequestSortCreated, r.URL.Query().Get("sort"))
		assert.Equal(t, PullRequestDirectionDesc, r.URL.Query().Get("direction"))
		fmt.Fprint(w, `[
			{"number":9,"created_at":"2024-05-20T09:00:00Z","user":{"login":"OctoCat"}},
			{"number":8,"created_at":"2024-05-19T09:00:00Z","user":{"login":"someone"}},
			{"number":7,"created_at":"2024-05-18T09:00:00Z","user":{"login":"octocat"}},
			{"number":3,"created_at":"2024-05-01T09:00:00Z","user":{"login":"octocat"}}
		]`)
	})
	c := newTestGitHub(t, mux)

	tests := []struct {
		name  string
		since time.Time
		want  []string
	}{
		{"all", time.Time{}, []string{"9", "7", "3"}},
		{"stops at the cursor", time.Date(2024, 5, 18, 9, 0, 0, 0, time.UTC), []string{"9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ListPullRequests(context.Background(), "octo", "hello", "octocat", tt.since)
			require.NoError(t, err)
			refs := make([]string, len(got))
			for i, pr := range got {
				refs[i] = pr.Ref
			}
			assert.Equal(t, tt.want, refs)
		})
	}
}

func TestGitHubClient_ServerErrorIsUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/pulls", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newTestGitHub(t, mux)

	_, err := c.ListPullRequests(context.Background(), "octo", "hello", "octocat", time.Time{})
	assert.ErrorIs(t, err, domain.ErrContributionsUnavailable)
}
