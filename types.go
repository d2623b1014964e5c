package main

import (
	"strings"

	"github.com/kyokomi/emoji/v2"
	"github.com/shu-go/orderedmap"

	"github.com/shu-go/git-prnotes/notes"
)

type Rule struct {
	StopPoint string `json:"stopPoint,omitempty" yaml:"stopPoint,omitempty"`

	Header         string `json:"header" yaml:"header"`
	ListItemSymbol string `json:"listItemSymbol" yaml:"listItemSymbol"`

	Headings             *orderedmap.OrderedMap[string, string] `json:"headings" yaml:"headings"` //map[string]string
	OtherHeading         string                                 `json:"otherHeading" yaml:"otherHeading"`
	UncategorisedHeading string                                 `json:"uncategorisedHeading" yaml:"uncategorisedHeading"`

	IncludeLinkToPullRequest bool `json:"includeLinkToPullRequest" yaml:"includeLinkToPullRequest"`
}

func defaultRule() Rule {
	cfg := notes.DefaultConfig()
	return Rule{
		Header:                   cfg.Header,
		ListItemSymbol:           cfg.ListItemSymbol,
		Headings:                 cfg.Headings,
		OtherHeading:             cfg.OtherHeading,
		UncategorisedHeading:     cfg.UncategorisedHeading,
		IncludeLinkToPullRequest: cfg.IncludeLinkToPullRequest,
	}
}

// Config converts the rule into a notes.Config. Emoji shortcodes in headings
// (":sparkles:") are expanded.
func (r Rule) Config() notes.Config {
	cfg := notes.DefaultConfig()
	cfg.StopPoint = notes.StopPoint(r.StopPoint)
	cfg.Header = r.Header
	cfg.IncludeLinkToPullRequest = r.IncludeLinkToPullRequest
	cfg.OtherHeading = emojize(r.OtherHeading)
	cfg.UncategorisedHeading = emojize(r.UncategorisedHeading)

	if r.ListItemSymbol != "" {
		cfg.ListItemSymbol = r.ListItemSymbol
	}

	if r.Headings != nil && len(r.Headings.Keys()) > 0 {
		headings := orderedmap.New[string, string]()
		for _, typ := range r.Headings.Keys() {
			if strings.HasPrefix(typ, "#") {
				continue
			}
			h, _ := r.Headings.Get(typ)
			headings.Set(typ, emojize(h))
		}
		cfg.Headings = headings
	}

	return cfg
}

func emojize(s string) string {
	return strings.TrimSpace(emoji.Sprint(s))
}
