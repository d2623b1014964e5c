package notes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shu-go/orderedmap"
)

var ErrUnknownSection = errors.New("unknown section")

// Store holds categorised notes: heading -> scope -> notes.
// Headings keep the order they were registered in, notes keep first-seen order.
type Store struct {
	sections *orderedmap.OrderedMap[string, *section]

	other         string
	uncategorised string

	// Breaking counts the breaking changes folded into the store.
	Breaking int
	// Upgrades holds one rendered upgrade instruction per breaking change.
	Upgrades []string
}

type section struct {
	scopes *orderedmap.OrderedMap[string, *bucket]
}

type bucket struct {
	notes []string
	seen  map[string]struct{}
}

// NewStore registers a section for every heading of cfg, in table order, followed
// by the Other and Uncategorised headings. Empty headings are not registered.
func NewStore(cfg Config) *Store {
	s := &Store{
		sections:      orderedmap.New[string, *section](),
		other:         cfg.OtherHeading,
		uncategorised: cfg.UncategorisedHeading,
	}

	if cfg.Headings != nil {
		for _, typ := range cfg.Headings.Keys() {
			h, _ := cfg.Headings.Get(typ)
			s.register(h)
		}
	}
	s.register(s.other)
	s.register(s.uncategorised)

	return s
}

func (s *Store) register(heading string) {
	if heading == "" {
		return
	}
	if _, found := s.sections.Get(heading); found {
		return
	}
	s.sections.Set(heading, &section{scopes: orderedmap.New[string, *bucket]()})
}

// Add appends note to the (heading, scope) bucket unless a note equal to it
// ignoring case is already there. It reports whether the note was added.
func (s *Store) Add(heading, scope, note string) (bool, error) {
	sec, found := s.sections.Get(heading)
	if !found {
		return false, fmt.Errorf("%w: %q", ErrUnknownSection, heading)
	}

	b, found := sec.scopes.Get(scope)
	if !found {
		b = &bucket{seen: make(map[string]struct{})}
		sec.scopes.Set(scope, b)
	}

	key := strings.ToLower(note)
	if _, dup := b.seen[key]; dup {
		return false, nil
	}
	b.seen[key] = struct{}{}
	b.notes = append(b.notes, note)
	return true, nil
}

// Headings returns the non-empty headings in render order: configured headings
// first, then Other, then Uncategorised.
func (s *Store) Headings() []string {
	var headings []string
	for _, h := range s.sections.Keys() {
		if h == s.other || h == s.uncategorised {
			continue
		}
		if !s.empty(h) {
			headings = append(headings, h)
		}
	}
	for _, h := range []string{s.other, s.uncategorised} {
		if h != "" && !s.empty(h) {
			headings = append(headings, h)
		}
	}
	return headings
}

// Scopes returns the non-empty scopes of heading in lexicographic order.
func (s *Store) Scopes(heading string) []string {
	sec, found := s.sections.Get(heading)
	if !found {
		return nil
	}

	var scopes []string
	for _, sc := range sec.scopes.Keys() {
		if b, _ := sec.scopes.Get(sc); len(b.notes) > 0 {
			scopes = append(scopes, sc)
		}
	}
	sort.Strings(scopes)
	return scopes
}

// Notes returns a copy of the notes of a bucket.
func (s *Store) Notes(heading, scope string) []string {
	sec, found := s.sections.Get(heading)
	if !found {
		return nil
	}
	b, found := sec.scopes.Get(scope)
	if !found {
		return nil
	}
	return append([]string(nil), b.notes...)
}

func (s *Store) empty(heading string) bool {
	return len(s.Scopes(heading)) == 0
}
