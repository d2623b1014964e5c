// Package notes turns conventional commit messages into pull request
// descriptions and release notes.
//
// Commits are parsed by their "type(scope): subject" prefix, grouped into
// sections by type and sub-grouped by scope, and rendered between the
// StartMarker and EndMarker comment lines. Text outside the markers in a
// previous description is left untouched.
package notes

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Source yields commits, newest first.
type Source interface {
	Commits(ctx context.Context) ([]RawCommit, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]RawCommit, error)

func (f SourceFunc) Commits(ctx context.Context) ([]RawCommit, error) {
	return f(ctx)
}

// Generate renders notes for the commits of src and merges them into previous.
func Generate(ctx context.Context, previous string, src Source, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	if strings.Contains(previous, SkipMarker) {
		cfg.Logger.Info("skip marker found, keeping previous notes")
		return previous, nil
	}

	commits, err := src.Commits(ctx)
	if err != nil {
		return "", fmt.Errorf("read commits: %w", err)
	}

	parsed, unparsed := ParseCommits(commits)
	cfg.Logger.Debug("parsed commits",
		zap.Int("commits", len(commits)),
		zap.Int("parsed", len(parsed)),
		zap.Int("unparsed", len(unparsed)),
		zap.String("stopPoint", string(cfg.StopPoint)),
	)

	store := Categorise(parsed, unparsed, cfg)
	return Merge(previous, Build(store, cfg)), nil
}
