package notes

import (
	"regexp"
	"strings"
)

// RawCommit is a commit as yielded by a commit source.
type RawCommit struct {
	Hash       string
	Subject    string
	Body       string
	Decoration string
}

// NewRawCommit splits a full commit message into subject (first line) and body.
func NewRawCommit(hash, message string) RawCommit {
	subject, body, _ := strings.Cut(message, "\n")
	return RawCommit{
		Hash:    hash,
		Subject: subject,
		Body:    body,
	}
}

// ParsedCommit is a commit whose subject follows the type(scope): convention.
type ParsedCommit struct {
	Type    string
	Scope   string
	Subject string
	Body    string
}

var (
	conventionalCommitPattern = regexp.MustCompile(`^(?P<type>[a-zA-Z]+)(?:\((?P<scope>[^)]+)\))?:`)
	mergeRefPattern           = regexp.MustCompile(`Merge [0-9a-f]+ into [0-9a-f]+`)
	releaseTagPattern         = regexp.MustCompile(`tag: (\d+\.\d+\.\d+)`)
)

// Parse classifies a single commit.
// ok is false when the subject does not follow the convention; unparsed is then
// the trimmed subject, or empty for merge-ref noise that should be dropped.
func Parse(c RawCommit) (parsed ParsedCommit, unparsed string, ok bool) {
	m := conventionalCommitPattern.FindStringSubmatch(c.Subject)
	if m == nil {
		if mergeRefPattern.MatchString(c.Subject) {
			return ParsedCommit{}, "", false
		}
		return ParsedCommit{}, strings.TrimSpace(c.Subject), false
	}

	_, rest, _ := strings.Cut(c.Subject, ":")
	return ParsedCommit{
		Type:    strings.TrimSpace(m[1]),
		Scope:   strings.TrimSpace(m[2]),
		Subject: strings.TrimSpace(rest),
		Body:    strings.TrimSpace(c.Body),
	}, "", true
}

// IsRelease reports whether the decoration carries a semantic version tag.
func IsRelease(decoration string) bool {
	return strings.Contains(decoration, "tag") && releaseTagPattern.MatchString(decoration)
}

// ParseCommits parses commits newest first and stops, exclusively, at the first
// commit tagged with a release.
func ParseCommits(commits []RawCommit) (parsed []ParsedCommit, unparsed []string) {
	for _, c := range commits {
		if IsRelease(c.Decoration) {
			break
		}

		p, u, ok := Parse(c)
		if ok {
			parsed = append(parsed, p)
			continue
		}
		if u != "" {
			unparsed = append(unparsed, u)
		}
	}
	return parsed, unparsed
}
