package grammeme

import "sort"

// Tag is a sorted, deduplicated set of Grammemes: the full grammatical
// description of one word form. Sorting gives it a total order, so two
// parses with the same grammatical content compare and hash identically
// regardless of the order their source XML listed attributes in.
type Tag []Grammeme

// NewTag builds a Tag from raw tokens, resolving aliases and sorting.
func NewTag(tokens ...string) Tag {
	t := make(Tag, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		t = append(t, ParseToken(tok))
	}
	return t.Sorted()
}

// Sorted returns a deduplicated, sorted copy of t.
func (t Tag) Sorted() Tag {
	cp := make(Tag, len(t))
	copy(cp, t)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Less(cp[j]) })

	out := cp[:0]
	var prev *Grammeme
	for _, g := range cp {
		if prev != nil && *prev == g {
			continue
		}
		gg := g
		out = append(out, gg)
		prev = &gg
	}
	return out
}

// Contains reports whether t carries every grammeme in want.
func (t Tag) Contains(want ...Grammeme) bool {
	for _, w := range want {
		found := false
		for _, g := range t {
			if g == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Get returns the grammeme of the given category, if t has one.
func (t Tag) Get(cat Category) (Grammeme, bool) {
	for _, g := range t {
		if g.Category == cat {
			return g, true
		}
	}
	return Grammeme{}, false
}

// PartOfSpeech returns the POS code carried by t, or "" if absent.
func (t Tag) PartOfSpeech() string {
	return PartOfSpeech(t)
}

// IsUnproductive reports whether t belongs to a closed word class.
func (t Tag) IsUnproductive() bool {
	return IsUnproductive(t)
}

// Strip drops grammemes of the given category from t, returning a new Tag.
// Used when extracting OOV paradigms: the Other bucket (Abbr, Geox, ...) is
// too idiosyncratic per-lemma to generalize into a postfix rule.
func (t Tag) Strip(cat Category) Tag {
	out := make(Tag, 0, len(t))
	for _, g := range t {
		if g.Category != cat {
			out = append(out, g)
		}
	}
	return out
}

// String renders t the way the dictionary's textual form does: comma
// separated grammeme codes in tag order.
func (t Tag) String() string {
	s := ""
	for i, g := range t {
		if i > 0 {
			s += ","
		}
		s += g.Code
	}
	return s
}

// Less gives Tag itself a total order (first differing grammeme wins, a
// shorter tag that is a prefix of a longer one sorts first), so tag slices
// can be deduplicated and binary-searched the way the compiler's interning
// step needs.
func (t Tag) Less(other Tag) bool {
	n := len(t)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if t[i] != other[i] {
			return t[i].Less(other[i])
		}
	}
	return len(t) < len(other)
}

// Equal reports whether t and other carry the same grammemes in the same
// order; both are expected to already be Sorted.
func (t Tag) Equal(other Tag) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}
