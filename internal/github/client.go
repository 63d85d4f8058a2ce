package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gnomegl/commitmonth/internal/logger"
	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const DefaultAPIURL = "https://api.github.com/"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidToken = errors.New("invalid GitHub token")
)

// GetGithubClient returns a client that sends "Authorization: token <token>"
// to baseURL. An empty baseURL means the public API.
func GetGithubClient(token, baseURL string) (*github.Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "token"})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	client := github.NewClient(httpClient)

	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	client.BaseURL = u

	logger.Debug("GitHub client ready", zap.String("base_url", u.String()))
	return client, nil
}

func ValidateToken(ctx context.Context, client *github.Client) error {
	user, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return ErrInvalidToken
			case http.StatusForbidden:
				// rate limited or scoped token; the listing calls will tell
				logger.Warn("Token check returned 403, continuing")
				return nil
			}
		}
		return fmt.Errorf("error validating token: %w", err)
	}
	logger.Debug("Token accepted", zap.String("login", user.GetLogin()))
	return nil
}

func isNotFound(resp *github.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}
