package source

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/shu-go/git-prnotes/notes"
)

const (
	// LogFormat delimits hash, subject, body and decoration with fieldSep and
	// ends each record with recordSep, since bodies contain newlines.
	LogFormat = "--pretty=format:%h" + fieldSep + "%s" + fieldSep + "%b" + fieldSep + "%d" + recordSep

	fieldSep  = "|§"
	recordSep = "@@@"
)

var ErrMalformedRecord = errors.New("malformed git log record")

// GitCLI reads commits by running the git binary.
type GitCLI struct {
	RepoPath string
}

func (g GitCLI) Commits(ctx context.Context) ([]notes.RawCommit, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", g.RepoPath, "log", LogFormat)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	return ParseLog(string(out))
}

// ParseLog splits git log output produced with LogFormat into commits.
// A record without exactly four fields is an error.
func ParseLog(out string) ([]notes.RawCommit, error) {
	var commits []notes.RawCommit

	for _, record := range strings.Split(strings.TrimSpace(out), recordSep) {
		if strings.TrimSpace(record) == "" {
			continue
		}

		fields := strings.Split(record, fieldSep)
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: want 4 fields, got %d: %q", ErrMalformedRecord, len(fields), record)
		}

		commits = append(commits, notes.RawCommit{
			Hash:       strings.TrimSpace(fields[0]),
			Subject:    fields[1],
			Body:       fields[2],
			Decoration: fields[3],
		})
	}

	return commits, nil
}
