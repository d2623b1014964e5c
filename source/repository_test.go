package source

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shu-go/git-prnotes/notes"
)

type testRepo struct {
	t    *testing.T
	repo *git.Repository
	wt   *git.Worktree
	when time.Time
	n    int
}

func newTestRepo(t *testing.T) *testRepo {
	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{t: t, repo: repo, wt: wt, when: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *testRepo) signature() *object.Signature {
	return &object.Signature{Name: "tester", Email: "tester@example.com", When: r.when}
}

func (r *testRepo) commit(msg string) plumbing.Hash {
	r.n++
	r.when = r.when.Add(time.Minute)

	name := fmt.Sprintf("file%d.txt", r.n)
	require.NoError(r.t, util.WriteFile(r.wt.Filesystem, name, []byte(msg), 0o644))
	_, err := r.wt.Add(name)
	require.NoError(r.t, err)

	h, err := r.wt.Commit(msg, &git.CommitOptions{Author: r.signature()})
	require.NoError(r.t, err)
	return h
}

func TestRepositoryCommitsStopAtRelease(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: before release")
	released := r.commit("fix: released")
	_, err := r.repo.CreateTag("1.0.0", released, nil)
	require.NoError(t, err)

	nightly := r.commit("chore: nightly build")
	_, err = r.repo.CreateTag("nightly", nightly, nil)
	require.NoError(t, err)
	r.commit("feat(api): add endpoint\n\nLonger description.\n\nBREAKING CHANGE: call v2")
	r.commit("random commit")

	commits, err := (&Repository{Repo: r.repo}).Commits(context.Background())
	require.NoError(t, err)

	require.Len(t, commits, 4)
	assert.Equal(t, "random commit", commits[0].Subject)
	assert.Equal(t, "feat(api): add endpoint", commits[1].Subject)
	assert.Equal(t, "Longer description.\n\nBREAKING CHANGE: call v2", commits[1].Body)
	assert.Equal(t, " (tag: nightly)", commits[2].Decoration)
	assert.Equal(t, " (tag: 1.0.0)", commits[3].Decoration)
	assert.Len(t, commits[0].Hash, 7)

	parsed, unparsed := notes.ParseCommits(commits)
	assert.Len(t, parsed, 2)
	assert.Equal(t, []string{"random commit"}, unparsed)
}

func TestRepositoryCommitsAnnotatedTag(t *testing.T) {
	r := newTestRepo(t)
	released := r.commit("fix: released")
	_, err := r.repo.CreateTag("2.1.0", released, &git.CreateTagOptions{
		Tagger:  r.signature(),
		Message: "release 2.1.0",
	})
	require.NoError(t, err)
	r.commit("feat: after release")

	commits, err := (&Repository{Repo: r.repo}).Commits(context.Background())
	require.NoError(t, err)

	require.Len(t, commits, 2)
	assert.Equal(t, " (tag: 2.1.0)", commits[1].Decoration)
}

func TestRepositoryCommitsWithoutTags(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: one")
	r.commit("feat: two")
	r.commit("feat: three")

	commits, err := (&Repository{Repo: r.repo}).Commits(context.Background())
	require.NoError(t, err)

	var subjects []string
	for _, c := range commits {
		subjects = append(subjects, c.Subject)
	}
	assert.Equal(t, []string{"feat: three", "feat: two", "feat: one"}, subjects)
}

func TestRepositoryCommitsEmptyRepository(t *testing.T) {
	r := newTestRepo(t)
	_, err := (&Repository{Repo: r.repo}).Commits(context.Background())
	assert.Error(t, err)
}

func TestSplitMessage(t *testing.T) {
	subject, body := splitMessage("feat: wrapped\nsubject line\n\nbody one\n\nbody two\n")
	assert.Equal(t, "feat: wrapped subject line", subject)
	assert.Equal(t, "body one\n\nbody two", body)

	subject, body = splitMessage("fix: only subject\n")
	assert.Equal(t, "fix: only subject", subject)
	assert.Empty(t, body)
}

func TestDecoration(t *testing.T) {
	assert.Empty(t, decoration(nil))
	assert.Equal(t, " (tag: 1.0.0, tag: v1.0.0)", decoration([]string{"v1.0.0", "1.0.0"}))
}
