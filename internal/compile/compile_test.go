package compile

import (
	"sort"
	"strings"
	"testing"

	"github.com/kribrum-os/gomorph/opencorpora"
)

// sampleDictionary builds a small OpenCorpora-shaped fixture exercising a
// plain noun, a linked infinitive/participle pair (so Normalize's
// lemma-row cross-check has something to walk), and a ё-spelled noun (so
// the е-alias pass has something to fold).
func sampleDictionary() *opencorpora.Dictionary {
	g := func(tokens ...string) []opencorpora.Gram {
		out := make([]opencorpora.Gram, len(tokens))
		for i, t := range tokens {
			out[i] = opencorpora.Gram{V: t}
		}
		return out
	}

	return &opencorpora.Dictionary{
		Version:  "0.92",
		Revision: 1,
		Lemmata: opencorpora.Lemmata{
			Lemmas: []opencorpora.Lemma{
				{
					ID:         1,
					NormalForm: opencorpora.NormalForm{Text: "кот", Gram: g("NOUN", "anim", "masc", "nomn", "sing")},
					Forms: []opencorpora.GramWord{
						{Text: "кот", Gram: g("NOUN", "anim", "masc", "nomn", "sing")},
						{Text: "кота", Gram: g("NOUN", "anim", "masc", "gent", "sing")},
						{Text: "коту", Gram: g("NOUN", "anim", "masc", "datv", "sing")},
						{Text: "коты", Gram: g("NOUN", "anim", "masc", "nomn", "plur")},
						{Text: "котов", Gram: g("NOUN", "anim", "masc", "gent", "plur")},
					},
				},
				{
					ID:         2,
					NormalForm: opencorpora.NormalForm{Text: "писать", Gram: g("INFN", "impf", "tran")},
					Forms: []opencorpora.GramWord{
						{Text: "писать", Gram: g("INFN", "impf", "tran")},
						{Text: "пишу", Gram: g("VERB", "impf", "tran", "1per", "sing", "pres", "indc")},
						{Text: "пишет", Gram: g("VERB", "impf", "tran", "3per", "sing", "pres", "indc")},
					},
				},
				{
					ID:         3,
					NormalForm: opencorpora.NormalForm{Text: "пишущий", Gram: g("PRTF", "impf", "tran", "actv", "pres")},
					Forms: []opencorpora.GramWord{
						{Text: "пишущий", Gram: g("PRTF", "impf", "tran", "actv", "pres", "masc", "nomn", "sing")},
						{Text: "пишущего", Gram: g("PRTF", "impf", "tran", "actv", "pres", "masc", "gent", "sing")},
					},
				},
				{
					ID:         4,
					NormalForm: opencorpora.NormalForm{Text: "ёж", Gram: g("NOUN", "anim", "masc", "nomn", "sing")},
					Forms: []opencorpora.GramWord{
						{Text: "ёж", Gram: g("NOUN", "anim", "masc", "nomn", "sing")},
						{Text: "ежа", Gram: g("NOUN", "anim", "masc", "gent", "sing")},
						{Text: "ежу", Gram: g("NOUN", "anim", "masc", "datv", "sing")},
					},
				},
			},
		},
		LinkTypes: opencorpora.LinkTypes{Types: []opencorpora.LinkType{{Text: "INFN-PRTF"}}},
		Links: opencorpora.Links{Links: []opencorpora.Link{
			{TypeID: 1, From: 2, To: 3},
		}},
	}
}

func TestCompile_WordsSortedAndUnique(t *testing.T) {
	_, words, entries, err := Compile(sampleDictionary())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(words) != len(entries) {
		t.Fatalf("words/entries length mismatch: %d vs %d", len(words), len(entries))
	}
	if !sort.StringsAreSorted(words) {
		t.Fatalf("words not sorted: %v", words)
	}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if seen[w] {
			t.Fatalf("duplicate word %q in FST word list", w)
		}
		seen[w] = true
	}
}

func TestCompile_YoAliasInsertion(t *testing.T) {
	_, words, _, err := Compile(sampleDictionary())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []string{"еж", "ежа", "ежу"}
	for _, w := range want {
		found := false
		for _, have := range words {
			if have == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected е-folded alias %q in word list, got %v", w, words)
		}
	}
}

func TestCompile_LinkedLemmaSharesRow(t *testing.T) {
	art, words, entries, err := Compile(sampleDictionary())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	idx := func(w string) int {
		for i, have := range words {
			if have == w {
				return int(entries[i])
			}
		}
		t.Fatalf("word %q not found", w)
		return -1
	}

	participleEntry := idx("пишущий")
	infinitiveEntry := idx("писать")
	participleParses := art.WordParses[participleEntry]
	infinitiveParses := art.WordParses[infinitiveEntry]
	if len(participleParses) == 0 || len(infinitiveParses) == 0 {
		t.Fatalf("expected parses for both forms")
	}
	if participleParses[0].LemmaRowID != infinitiveParses[0].LemmaRowID {
		t.Errorf("expected пишущий and писать to share a lemma row, got %d vs %d",
			participleParses[0].LemmaRowID, infinitiveParses[0].LemmaRowID)
	}
	if participleParses[0].Form.IsNormal() {
		t.Errorf("пишущий's own listed form should not be flagged Normal (writer's true normal form is писать)")
	}
}

func TestCompile_TagsSortedAndDeduplicated(t *testing.T) {
	art, _, _, err := Compile(sampleDictionary())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for i := 1; i < len(art.Tags); i++ {
		if !art.Tags[i-1].Less(art.Tags[i]) {
			t.Fatalf("tags table not strictly sorted at %d: %v >= %v", i, art.Tags[i-1], art.Tags[i])
		}
	}
}

func TestCompile_ParadigmsPopularityThreshold(t *testing.T) {
	art, _, _, err := Compile(sampleDictionary())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, p := range art.Paradigms {
		if p.Popularity < 3 {
			t.Errorf("paradigm with popularity %d should have been dropped", p.Popularity)
		}
		for _, item := range p.Postfixes {
			for _, tid := range item.TagIDs {
				if int(tid) >= len(art.Tags) {
					t.Errorf("paradigm tag id %d out of bounds (%d tags)", tid, len(art.Tags))
				}
			}
		}
	}
}

func TestLongestCommonSubstring_FoldsYo(t *testing.T) {
	got := longestCommonSubstring([]string{"ёж", "ежа", "ежу"})
	want := "еж"
	if !strings.Contains(got, want) && got != want {
		t.Errorf("longestCommonSubstring(ёж-cluster) = %q, want substring %q", got, want)
	}
}

// rowOfID finds the cluster containing id among rows, failing the test if
// id never appears (every lemma ID passed to NewLinkResolver must end up in
// exactly one row).
func rowOfID(t *testing.T, rows [][]uint64, id uint64) []uint64 {
	t.Helper()
	for _, row := range rows {
		for _, member := range row {
			if member == id {
				return row
			}
		}
	}
	t.Fatalf("lemma %d not found in any row: %v", id, rows)
	return nil
}

func assertRowMembers(t *testing.T, row []uint64, want ...uint64) {
	t.Helper()
	sorted := append([]uint64(nil), row...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	wantSorted := append([]uint64(nil), want...)
	sort.Slice(wantSorted, func(i, j int) bool { return wantSorted[i] < wantSorted[j] })
	if len(sorted) != len(wantSorted) {
		t.Fatalf("row = %v, want %v", sorted, wantSorted)
	}
	for i := range sorted {
		if sorted[i] != wantSorted[i] {
			t.Fatalf("row = %v, want %v", sorted, wantSorted)
		}
	}
}

// TestLinkResolver_DoubleHop_OuterFound covers §4.1's double-hop policy when
// a link feeds into the double-hop link's `from` side: a short participle
// (11) linked from its full participle (10) via a generic link, with 11
// itself double-hop-linked (type 6) to a target (12). Both 11 and 12 must
// end up attached as variants of the outer lemma 10, not just 12.
func TestLinkResolver_DoubleHop_OuterFound(t *testing.T) {
	lemmaIDs := []uint64{10, 11, 12}
	links := []opencorpora.Link{
		{TypeID: 1, From: 10, To: 11},
		{TypeID: 6, From: 11, To: 12},
	}
	resolver, err := NewLinkResolver(lemmaIDs, links)
	if err != nil {
		t.Fatalf("NewLinkResolver: %v", err)
	}
	rows, _ := resolver.Rows()
	row := rowOfID(t, rows, 10)
	assertRowMembers(t, row, 10, 11, 12)
}

// TestLinkResolver_DoubleHop_OuterAbsent covers §4.1's fallback double-hop
// policy when no link feeds into the double-hop link's `from` side: 21
// attaches directly as a variant of 20.
func TestLinkResolver_DoubleHop_OuterAbsent(t *testing.T) {
	lemmaIDs := []uint64{20, 21}
	links := []opencorpora.Link{
		{TypeID: 22, From: 20, To: 21},
	}
	resolver, err := NewLinkResolver(lemmaIDs, links)
	if err != nil {
		t.Fatalf("NewLinkResolver: %v", err)
	}
	rows, _ := resolver.Rows()
	row := rowOfID(t, rows, 20)
	assertRowMembers(t, row, 20, 21)
}

// TestLinkResolver_DoubleHop_OuterExcluded exercises the fix for the case
// the outer-found branch must not silently depend on: the outer link's own
// TypeID is itself in excludedLinkTypes, so it is never unioned by the
// generic path, and only the double-hop branch's explicit r.union(outer.From,
// l.From) pulls the double-hop link's `from` side into the cluster.
func TestLinkResolver_DoubleHop_OuterExcluded(t *testing.T) {
	lemmaIDs := []uint64{30, 31, 32}
	links := []opencorpora.Link{
		{TypeID: 7, From: 30, To: 31}, // excluded link type, never unioned directly
		{TypeID: 6, From: 31, To: 32},
	}
	resolver, err := NewLinkResolver(lemmaIDs, links)
	if err != nil {
		t.Fatalf("NewLinkResolver: %v", err)
	}
	rows, _ := resolver.Rows()
	row := rowOfID(t, rows, 30)
	assertRowMembers(t, row, 30, 31, 32)
}
