package notes

import (
	"testing"

	"github.com/shu-go/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRegistersHeadingsOnce(t *testing.T) {
	headings := orderedmap.New[string, string]()
	headings.Set("refactor", "## Refactoring")
	headings.Set("fix", "## Fixes")
	headings.Set("REF", "## Refactoring")
	headings.Set("misc", DefaultOtherHeading)

	cfg := DefaultConfig()
	cfg.Headings = headings
	s := NewStore(cfg)

	for _, h := range []string{"## Fixes", "## Refactoring", DefaultOtherHeading, DefaultUncategorisedHeading} {
		_, err := s.Add(h, MiscellaneousScope, "note")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"## Refactoring", "## Fixes", DefaultOtherHeading, DefaultUncategorisedHeading}, s.Headings())
}

func TestCategoriseTypeMappedToOtherRendersLast(t *testing.T) {
	headings := orderedmap.New[string, string]()
	headings.Set("misc", DefaultOtherHeading)
	headings.Set("fix", "## Fixes")

	cfg := DefaultConfig()
	cfg.Headings = headings
	s := Categorise([]ParsedCommit{
		{Type: "misc", Subject: "tidy up"},
		{Type: "fix", Subject: "repair"},
		{Type: "unknown", Subject: "mystery"},
	}, nil, cfg)

	assert.Equal(t, []string{"## Fixes", DefaultOtherHeading}, s.Headings())
	assert.Equal(t, []string{"tidy up", "mystery"}, s.Notes(DefaultOtherHeading, MiscellaneousScope))
}

func TestStoreAdd(t *testing.T) {
	s := NewStore(DefaultConfig())

	added, err := s.Add("## 🐛 Bug Fixes", "db", "Fix it")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add("## 🐛 Bug Fixes", "db", "fix IT")
	require.NoError(t, err)
	assert.False(t, added)

	_, err = s.Add("## Nope", "db", "Fix it")
	assert.ErrorIs(t, err, ErrUnknownSection)

	assert.Equal(t, []string{"Fix it"}, s.Notes("## 🐛 Bug Fixes", "db"))
	assert.Nil(t, s.Notes("## 🐛 Bug Fixes", "api"))
	assert.Nil(t, s.Scopes("## Nope"))
}

func TestStoreNotesReturnsCopy(t *testing.T) {
	s := NewStore(DefaultConfig())
	_, err := s.Add("## 🐛 Bug Fixes", "db", "one")
	require.NoError(t, err)

	notes := s.Notes("## 🐛 Bug Fixes", "db")
	notes[0] = "changed"

	assert.Equal(t, []string{"one"}, s.Notes("## 🐛 Bug Fixes", "db"))
}

func TestStoreScopesSorted(t *testing.T) {
	s := NewStore(DefaultConfig())
	for _, scope := range []string{"zeta", "alpha", "Miscellaneous", "beta"} {
		_, err := s.Add("## ✨ New Features", scope, "x")
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Miscellaneous", "alpha", "beta", "zeta"}, s.Scopes("## ✨ New Features"))
}
