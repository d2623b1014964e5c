package notes

import (
	"strings"

	"go.uber.org/zap"
)

const BreakingChangeIndicator = "💥 **BREAKING CHANGE:** "

// BreakingChangeMarkers are the body tokens that flag a breaking change.
var BreakingChangeMarkers = []string{"BREAKING-CHANGE", "BREAKING CHANGE"}

// Categorise folds parsed and unparsed commits into a Store.
func Categorise(parsed []ParsedCommit, unparsed []string, cfg Config) *Store {
	if cfg.Headings == nil {
		cfg.Headings = DefaultHeadings()
	}
	log := cfg.logger()
	store := NewStore(cfg)

	for _, c := range parsed {
		scope := c.Scope
		if scope == "" {
			scope = MiscellaneousScope
		}

		heading, found := cfg.Headings.Get(c.Type)
		if !found {
			if _, err := store.Add(cfg.OtherHeading, MiscellaneousScope, c.Subject); err != nil {
				log.Warn("commit with unknown type dropped", zap.String("type", c.Type), zap.Error(err))
			}
			continue
		}

		note := c.Subject
		if isBreaking(c.Body) {
			store.Breaking++
			note = BreakingChangeIndicator + c.Subject
			store.Upgrades = append(store.Upgrades, upgradeInstruction(scope, c.Subject, c.Body))
		}

		if _, err := store.Add(heading, scope, note); err != nil {
			log.Warn("commit dropped", zap.String("type", c.Type), zap.Error(err))
		}
	}

	for _, subject := range unparsed {
		if _, err := store.Add(cfg.UncategorisedHeading, MiscellaneousScope, subject); err != nil {
			log.Warn("uncategorised commits could not be added to the notes", zap.Error(err))
			break
		}
	}

	return store
}

func isBreaking(body string) bool {
	for _, m := range BreakingChangeMarkers {
		if strings.Contains(body, m) {
			return true
		}
	}
	return false
}

// upgradeInstruction renders the body after its marker as a collapsible block.
func upgradeInstruction(scope, subject, body string) string {
	_, instruction, _ := strings.Cut(body, ":")
	return "<details>\n" +
		"<summary>💥 <b>(" + scope + ") " + subject + "</b></summary>\n" +
		"\n" + strings.TrimSpace(instruction) + "\n" +
		"</details>"
}
