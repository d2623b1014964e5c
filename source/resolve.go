// Package source provides the commit sources notes are generated from: the
// local git history (through go-git or the git binary) and GitHub pull requests.
package source

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/shu-go/git-prnotes/notes"
)

type Options struct {
	StopPoint notes.StopPoint

	PullRequestURL string
	APIToken       string
	HTTPClient     *http.Client

	RepoPath  string
	GitBinary bool
	// Local overrides the history source built from RepoPath.
	Local notes.Source

	Logger *zap.Logger
}

// Resolved is the outcome of Resolve.
type Resolved struct {
	Source notes.Source
	// StopPoint may differ from the requested one when the pull request could
	// not be fetched.
	StopPoint   notes.StopPoint
	Previous    string
	PullRequest *PullRequest
}

// Resolve picks the commit source. A pull request is used when its URL is given
// and it can be fetched; otherwise the local history is used and the stop point
// falls back to notes.LastRelease.
func Resolve(ctx context.Context, opts Options) (Resolved, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if opts.PullRequestURL != "" {
		gh := GitHub{Client: opts.HTTPClient, Token: opts.APIToken}
		pr, err := gh.PullRequest(ctx, opts.PullRequestURL)
		if err == nil {
			return Resolved{
				Source:      pr,
				StopPoint:   opts.StopPoint,
				Previous:    pr.Body,
				PullRequest: pr,
			}, nil
		}

		log.Warn("pull request could not be accessed; resorting to the last release stop point",
			zap.String("url", opts.PullRequestURL),
			zap.Error(err),
		)
		opts.StopPoint = notes.LastRelease
	}

	local, err := opts.local()
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Source: local, StopPoint: opts.StopPoint}, nil
}

func (opts Options) local() (notes.Source, error) {
	if opts.Local != nil {
		return opts.Local, nil
	}
	if opts.GitBinary {
		return GitCLI{RepoPath: opts.RepoPath}, nil
	}
	repo, err := OpenRepository(opts.RepoPath)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
