package source

import (
	"context"
	"fmt"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	gitconfig "github.com/go-git/go-git/v5/plumbing/format/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/shu-go/git-prnotes/notes"
)

// Repository reads commits from a git repository with go-git.
type Repository struct {
	Repo *git.Repository
}

// OpenRepository opens the repository containing path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return &Repository{Repo: repo}, nil
}

// Commits walks history from HEAD, newest first. The walk ends with the first
// commit tagged as a release; that commit is included so the parser sees the
// boundary.
func (r *Repository) Commits(ctx context.Context) ([]notes.RawCommit, error) {
	head, err := r.Repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	tags, err := r.tagsByCommit()
	if err != nil {
		return nil, err
	}

	iter, err := r.Repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	defer iter.Close()

	var commits []notes.RawCommit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		subject, body := splitMessage(c.Message)
		raw := notes.RawCommit{
			Hash:       c.Hash.String()[:7],
			Subject:    subject,
			Body:       body,
			Decoration: decoration(tags[c.Hash]),
		}
		commits = append(commits, raw)

		if notes.IsRelease(raw.Decoration) {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}

	return commits, nil
}

// ConfigValue returns the value of key in the given git config section.
func (r *Repository) ConfigValue(section, key string) (string, bool) {
	config, err := r.Repo.Config()
	if err != nil {
		return "", false
	}

	var ss *gitconfig.Section
	for _, s := range config.Raw.Sections {
		if s.Name == section {
			ss = s
		}
	}
	if ss == nil {
		return "", false
	}

	if v := ss.Options.Get(key); v != "" {
		return v, true
	}
	return "", false
}

// Root returns the worktree root, or empty for bare repositories.
func (r *Repository) Root() string {
	wt, err := r.Repo.Worktree()
	if err != nil {
		return ""
	}
	return wt.Filesystem.Root()
}

func (r *Repository) tagsByCommit() (map[plumbing.Hash][]string, error) {
	refs, err := r.Repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer refs.Close()

	tags := make(map[plumbing.Hash][]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()

		// annotated tags point at a tag object
		if tag, err := r.Repo.TagObject(hash); err == nil {
			c, err := tag.Commit()
			if err != nil {
				return nil
			}
			hash = c.Hash
		}

		tags[hash] = append(tags[hash], ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

// decoration formats tag names the way git log %d does.
func decoration(tags []string) string {
	if len(tags) == 0 {
		return ""
	}

	sort.Strings(tags)
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, "tag: "+t)
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// splitMessage splits a commit message the way git log %s and %b do: the
// subject is the first paragraph joined onto one line.
func splitMessage(msg string) (subject, body string) {
	msg = strings.TrimLeft(msg, "\n")
	subject, body, _ = strings.Cut(msg, "\n\n")
	subject = strings.ReplaceAll(strings.TrimSpace(subject), "\n", " ")
	return subject, strings.TrimSpace(body)
}
