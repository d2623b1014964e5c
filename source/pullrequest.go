package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shu-go/git-prnotes/notes"
)

const commitsPerPage = 100

var ErrUnexpectedStatus = errors.New("unexpected status")

// GitHub fetches pull requests from the GitHub REST API.
type GitHub struct {
	Client *http.Client
	// Token is optional for public repositories.
	Token string
}

// PullRequest is a pull request with its commits already fetched.
type PullRequest struct {
	Number     int    `json:"number"`
	HTMLURL    string `json:"html_url"`
	Body       string `json:"body"`
	CommitsURL string `json:"commits_url"`

	commits []notes.RawCommit
}

// Commits returns the commits of the pull request.
func (pr *PullRequest) Commits(ctx context.Context) ([]notes.RawCommit, error) {
	return pr.commits, nil
}

type apiCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
	} `json:"commit"`
}

// PullRequest fetches the pull request at url (an API URL such as
// https://api.github.com/repos/OWNER/REPO/pulls/1) and every page of its commits.
func (g GitHub) PullRequest(ctx context.Context, url string) (*PullRequest, error) {
	var pr PullRequest
	if _, err := g.get(ctx, url, &pr); err != nil {
		return nil, err
	}

	var commits []apiCommit
	next := fmt.Sprintf("%s?per_page=%d", pr.CommitsURL, commitsPerPage)
	for next != "" {
		var page []apiCommit
		h, err := g.get(ctx, next, &page)
		if err != nil {
			return nil, err
		}
		commits = append(commits, page...)
		next = nextLink(h.Get("Link"))
	}

	for _, c := range commits {
		pr.commits = append(pr.commits, notes.NewRawCommit(c.SHA, c.Commit.Message))
	}
	return &pr, nil
}

func (g GitHub) get(ctx context.Context, url string, v any) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.Token != "" {
		req.Header.Set("Authorization", "token "+g.Token)
	}

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get %s: %w %d: %s", url, ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(text)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return resp.Header, nil
}

// nextLink returns the rel="next" target of a Link header.
func nextLink(header string) string {
	for _, link := range strings.Split(header, ",") {
		target, params, found := strings.Cut(link, ";")
		if !found {
			continue
		}
		for _, p := range strings.Split(params, ";") {
			if strings.TrimSpace(p) == `rel="next"` {
				return strings.Trim(strings.TrimSpace(target), "<>")
			}
		}
	}
	return ""
}
