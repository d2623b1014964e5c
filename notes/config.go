package notes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shu-go/orderedmap"
	"go.uber.org/zap"
)

const (
	StartMarker = "<!--- START AUTOGENERATED NOTES --->"
	EndMarker   = "<!--- END AUTOGENERATED NOTES --->"
	SkipMarker  = "<!--- SKIP AUTOGENERATED NOTES --->"

	DefaultOtherHeading         = "### 🔀 Other"
	DefaultUncategorisedHeading = "### ❓ Uncategorised!"

	// MiscellaneousScope groups commits without a scope.
	MiscellaneousScope = "Miscellaneous"
)

// StopPoint is the point in history up to which commits are collected.
type StopPoint string

const (
	LastRelease      StopPoint = "LAST_RELEASE"
	PullRequestStart StopPoint = "PULL_REQUEST_START"
)

// StopPoints lists the accepted stop points.
var StopPoints = []StopPoint{LastRelease, PullRequestStart}

var ErrInvalidStopPoint = errors.New("invalid stop point")

// ParseStopPoint accepts a stop point name in any letter case.
func ParseStopPoint(s string) (StopPoint, error) {
	sp := StopPoint(strings.ToUpper(strings.TrimSpace(s)))
	for _, p := range StopPoints {
		if sp == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: must be one of %v, received %q", ErrInvalidStopPoint, StopPoints, s)
}

// Config controls how notes are categorised and rendered.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	StopPoint StopPoint

	// Header is rendered as the first line of the block when not empty.
	Header         string
	ListItemSymbol string

	// Headings maps commit types to section headings. Iteration order is render order.
	// A type mapped to OtherHeading or UncategorisedHeading shares that section and
	// is rendered with it, after every other section.
	Headings             *orderedmap.OrderedMap[string, string]
	OtherHeading         string
	UncategorisedHeading string

	IncludeLinkToPullRequest bool
	PullRequestNumber        int
	PullRequestURL           string

	Logger *zap.Logger
}

// DefaultConfig returns a Config with the default heading table.
func DefaultConfig() Config {
	return Config{
		StopPoint:                LastRelease,
		ListItemSymbol:           "-",
		Headings:                 DefaultHeadings(),
		OtherHeading:             DefaultOtherHeading,
		UncategorisedHeading:     DefaultUncategorisedHeading,
		IncludeLinkToPullRequest: true,
	}
}

// DefaultHeadings returns a fresh copy of the default type-to-heading table.
func DefaultHeadings() *orderedmap.OrderedMap[string, string] {
	h := orderedmap.New[string, string]()
	h.Set("feat", "## ✨ New Features")
	h.Set("fix", "## 🐛 Bug Fixes")
	h.Set("docs", "## 📚 Documentation")
	h.Set("style", "## 💅 Style")
	h.Set("refactor", "## ♻️ Refactoring")
	h.Set("perf", "## ⚡️ Performance Improvements")
	h.Set("test", "## 🧪 Tests")
	h.Set("build", "## 🏗️ Build System")
	h.Set("ci", "## 🤖 CI")
	h.Set("chore", "## 🧹 Chores")

	// legacy codes
	h.Set("FEA", "## ✨ New features")
	h.Set("ENH", "## 🚀 Enhancements")
	h.Set("FIX", "## 🐛 Fixes")
	h.Set("OPS", "## 🔧 Operations")
	h.Set("DEP", "## 📦 Dependencies")
	h.Set("REF", "## ♻️ Refactoring")
	h.Set("TST", "## 🧪 Testing")
	h.Set("MRG", "## 🔀 Other")
	h.Set("REV", "## ⏮️ Reversions")
	h.Set("CHO", "## 🧹 Chores")
	h.Set("STY", "## 💅 Style")
	h.Set("WIP", "## 🚧 Other")
	h.Set("DOC", "## 📚 Other")
	return h
}

// Validate normalizes the stop point and fills in missing defaults.
func (c *Config) Validate() error {
	sp, err := ParseStopPoint(string(c.StopPoint))
	if err != nil {
		return err
	}
	c.StopPoint = sp

	if c.ListItemSymbol == "" {
		c.ListItemSymbol = "-"
	}
	if c.Headings == nil {
		c.Headings = DefaultHeadings()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
