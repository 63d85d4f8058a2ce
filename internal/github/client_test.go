package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gnomegl/commitmonth/internal/logger"
	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Initialize("error")
}

// setup starts a fake API and returns a client pointed at it.
func setup(t *testing.T) (*github.Client, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := GetGithubClient("test-token", server.URL)
	require.NoError(t, err)
	return client, mux
}

func page(r *http.Request) int {
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return p
}

func TestGetGithubClient(t *testing.T) {
	client, err := GetGithubClient("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, client.BaseURL.String())

	client, err = GetGithubClient("abc", "http://ghe.local/api/v3")
	require.NoError(t, err)
	assert.Equal(t, "http://ghe.local/api/v3/", client.BaseURL.String())
}

func TestAuthorizationHeader(t *testing.T) {
	client, mux := setup(t)

	mux.HandleFunc("/orgs/acme/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	})

	repos, err := FetchOrgRepos(context.Background(), client, "acme", nil)
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestFetchOrgRepos(t *testing.T) {
	client, mux := setup(t)

	var pages []int
	mux.HandleFunc("/orgs/acme/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		p := page(r)
		pages = append(pages, p)
		switch p {
		case 1:
			fmt.Fprint(w, `[{"name":"api","updated_at":"2024-05-01T10:00:00Z"},{"name":"web","updated_at":"2024-04-01T10:00:00Z"}]`)
		case 2:
			fmt.Fprint(w, `[{"name":"docs","updated_at":"2024-05-02T10:00:00Z"}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	})

	repos, err := FetchOrgRepos(context.Background(), client, "acme", nil)
	require.NoError(t, err)
	require.Len(t, repos, 3)
	assert.Equal(t, []int{1, 2, 3}, pages)
	assert.Equal(t, "docs", repos[2].GetName())
	assert.Equal(t, time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC), repos[1].GetUpdatedAt().Time.UTC())
}

func TestFetchOrgReposError(t *testing.T) {
	client, mux := setup(t)

	mux.HandleFunc("/orgs/acme/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"boom"}`)
	})

	_, err := FetchOrgRepos(context.Background(), client, "acme", nil)
	assert.Error(t, err)
}

func TestFetchBranches(t *testing.T) {
	client, mux := setup(t)

	mux.HandleFunc("/repos/acme/api/branches", func(w http.ResponseWriter, r *http.Request) {
		if page(r) == 1 {
			fmt.Fprint(w, `[{"name":"main"},{"name":"dev"}]`)
			return
		}
		fmt.Fprint(w, `[]`)
	})

	branches, err := FetchBranches(context.Background(), client, "acme", "api", nil)
	require.NoError(t, err)
	require.Len(t, branches, 2)
	assert.Equal(t, "main", branches[0].GetName())
	assert.Equal(t, "dev", branches[1].GetName())
}

func TestFetchBranchesNotFound(t *testing.T) {
	client, mux := setup(t)

	mux.HandleFunc("/repos/acme/gone/branches", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	_, err := FetchBranches(context.Background(), client, "acme", "gone", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchAuthorCommits(t *testing.T) {
	client, mux := setup(t)

	mux.HandleFunc("/repos/acme/api/commits", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "octocat", q.Get("author"))
		assert.Equal(t, "main", q.Get("sha"))
		assert.Equal(t, "100", q.Get("per_page"))
		assert.False(t, q.Has("since"))

		switch page(r) {
		case 1:
			fmt.Fprint(w, `[{"html_url":"https://github.com/acme/api/commit/1","commit":{"message":"first","author":{"date":"2024-05-03T08:00:00Z"}}}]`)
		case 2:
			fmt.Fprint(w, `[{"html_url":"https://github.com/acme/api/commit/2","commit":{"message":"second","author":{"date":"2024-05-02T08:00:00Z"}}}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	})

	commits, err := FetchAuthorCommits(context.Background(), client, "acme", "api", "octocat", "main", nil)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "first", commits[0].GetCommit().GetMessage())
	assert.Equal(t, "https://github.com/acme/api/commit/2", commits[1].GetHTMLURL())
	assert.Equal(t, time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC), commits[1].GetCommit().GetAuthor().GetDate().Time.UTC())
}

func TestFetchAuthorCommitsPageCap(t *testing.T) {
	client, mux := setup(t)

	requests := 0
	mux.HandleFunc("/repos/acme/api/commits", func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprintf(w, `[{"html_url":"https://github.com/acme/api/commit/%d","commit":{"message":"m","author":{"date":"2024-05-02T08:00:00Z"}}}]`, page(r))
	})

	cfg := DefaultConfig()
	cfg.MaxCommitPages = 2
	commits, err := FetchAuthorCommits(context.Background(), client, "acme", "api", "octocat", "main", cfg)
	require.NoError(t, err)
	assert.Len(t, commits, 2)
	assert.Equal(t, 2, requests)
}

func TestFetchAuthorCommitsErrors(t *testing.T) {
	client, mux := setup(t)

	mux.HandleFunc("/repos/acme/missing/commits", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/repos/acme/empty/commits", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Git Repository is empty."}`, http.StatusConflict)
	})

	_, err := FetchAuthorCommits(context.Background(), client, "acme", "missing", "octocat", "main", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = FetchAuthorCommits(context.Background(), client, "acme", "empty", "octocat", "main", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
		anyErr  bool
	}{
		{name: "accepted", status: http.StatusOK},
		{name: "rejected", status: http.StatusUnauthorized, wantErr: ErrInvalidToken},
		{name: "forbidden tolerated", status: http.StatusForbidden},
		{name: "server error", status: http.StatusBadGateway, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mux := setup(t)
			mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"login":"octocat"}`)
			})

			err := ValidateToken(context.Background(), client)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
