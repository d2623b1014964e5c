package notes

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const UpgradeInstructionsHeader = "# 🔄 Upgrade instructions"

var (
	ticketPattern   = regexp.MustCompile(`[a-zA-Z]{2,6}-\d+`)
	scopeSeparators = regexp.MustCompile(`[-_]+`)
	letterRun       = regexp.MustCompile(`\pL+`)
)

// Build renders store as an autogenerated block delimited by StartMarker and
// EndMarker. It does not modify store.
func Build(store *Store, cfg Config) string {
	symbol := cfg.ListItemSymbol
	if symbol == "" {
		symbol = "-"
	}

	var b strings.Builder
	b.WriteString(StartMarker + "\n")

	if line := headerLine(cfg); line != "" {
		b.WriteString(line + "\n\n")
	}

	if tickets := Tickets(store); len(tickets) > 0 {
		b.WriteString("# Tickets\n")
		for _, t := range tickets {
			b.WriteString(symbol + " " + t + "\n")
		}
		b.WriteString("\n")
	}

	if store.Breaking > 0 {
		b.WriteString(breakingChangeWarning(store.Breaking))
	}

	for _, heading := range store.Headings() {
		b.WriteString(heading + "\n")
		for _, scope := range store.Scopes(heading) {
			b.WriteString("### " + FormatScope(scope) + "\n")

			lines := make([]string, 0, len(store.Notes(heading, scope)))
			for _, note := range store.Notes(heading, scope) {
				lines = append(lines, " "+symbol+" "+upperFirst(note))
			}
			b.WriteString(strings.Join(lines, "\n") + "\n\n")
		}
	}

	if store.Breaking > 0 {
		b.WriteString("---\n")
		b.WriteString(UpgradeInstructionsHeader + "\n")
		b.WriteString(strings.Join(store.Upgrades, "\n\n") + "\n\n")
	}

	b.WriteString(EndMarker)
	return b.String()
}

// Tickets returns the ticket identifiers mentioned in the notes, in render order
// without duplicates.
func Tickets(store *Store) []string {
	var tickets []string
	seen := make(map[string]struct{})
	for _, heading := range store.Headings() {
		for _, scope := range store.Scopes(heading) {
			for _, note := range store.Notes(heading, scope) {
				for _, t := range ticketPattern.FindAllString(note, -1) {
					if _, dup := seen[t]; dup {
						continue
					}
					seen[t] = struct{}{}
					tickets = append(tickets, t)
				}
			}
		}
	}
	return tickets
}

// FormatScope turns a scope such as "api_client" into "Api Client". Every run
// of letters is a word, so "v2api" becomes "V2Api".
func FormatScope(scope string) string {
	return letterRun.ReplaceAllStringFunc(scopeSeparators.ReplaceAllString(scope, " "), func(word string) string {
		return cases.Title(language.Und).String(word)
	})
}

func breakingChangeWarning(count int) string {
	if count == 1 {
		return "**IMPORTANT:** There is 1 breaking change.\n\n"
	}
	return fmt.Sprintf("**IMPORTANT:** There are %d breaking changes.\n\n", count)
}

func headerLine(cfg Config) string {
	if cfg.Header == "" {
		return ""
	}

	line := cfg.Header
	if cfg.IncludeLinkToPullRequest && cfg.PullRequestURL != "" {
		line += fmt.Sprintf(" ([#%d](%s))", cfg.PullRequestNumber, cfg.PullRequestURL)
	}
	return strings.TrimSpace(line)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
