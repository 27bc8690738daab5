package compile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kribrum-os/gomorph/dictionary"
	"github.com/kribrum-os/gomorph/grammeme"
	"github.com/kribrum-os/gomorph/morpherr"
	"github.com/kribrum-os/gomorph/opencorpora"
)

// parseIntermediate is one (tag, form, normal form) triple collected before
// tags and lemmas have been interned into their final table indexes.
type parseIntermediate struct {
	tag           grammeme.Tag
	form          grammeme.FormOrigin
	normalForm    string
	lemmaRowID    uint32
	sourceLemmaID uint32
}

// rowVariant is one spelling produced by a lemma row, kept around for the
// paradigm extractor alongside the word-table pass.
type rowVariant struct {
	word string
	form grammeme.FormOrigin
	tag  grammeme.Tag
}

// Compile turns a decoded OpenCorpora dictionary into a dictionary.Artifact
// plus the parallel (words, entries) slices Save needs to build the FST.
//
// The pipeline runs in two passes: first collect every
// (word -> tag/form/lemma) triple while discovering the unique tag and lemma
// universes, then intern everything into indexes and flatten to the final
// per-word parse table. The extra step here, absent from a single bare
// OpenCorpora lemma, is resolving the link graph into LemmaRows first so
// that a lemma whose own dictionary-listed form is not its true normal form
// (a participle, a gerundive) still reports the right cross-lemma lemma text.
func Compile(dict *opencorpora.Dictionary) (*dictionary.Artifact, []string, []uint64, error) {
	lemmaByID := make(map[uint64]*opencorpora.Lemma, len(dict.Lemmata.Lemmas))
	lemmaIDs := make([]uint64, 0, len(dict.Lemmata.Lemmas))
	for i := range dict.Lemmata.Lemmas {
		l := &dict.Lemmata.Lemmas[i]
		lemmaByID[l.ID] = l
		lemmaIDs = append(lemmaIDs, l.ID)
	}

	resolver, err := NewLinkResolver(lemmaIDs, dict.Links.Links)
	if err != nil {
		return nil, nil, nil, err
	}
	rows, rowOf := resolver.Rows()

	wordMap := make(map[string][]parseIntermediate)
	tagSet := make(map[string]grammeme.Tag)
	rowVariants := make([][]rowVariant, len(rows))

	for _, l := range dict.Lemmata.Lemmas {
		rowIdx, ok := rowOf[l.ID]
		if !ok {
			continue
		}
		anchorID := rows[rowIdx][0]
		anchor := lemmaByID[anchorID]
		isAnchor := l.ID == anchorID

		variants, err := collectLemma(&l, uint32(rowIdx), anchor.NormalForm.Text, isAnchor, wordMap, tagSet)
		if err != nil {
			return nil, nil, nil, err
		}
		rowVariants[rowIdx] = append(rowVariants[rowIdx], variants...)
	}

	tags := make([]grammeme.Tag, 0, len(tagSet))
	for _, t := range tagSet {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Less(tags[j]) })
	tagIndex := func(t grammeme.Tag) (int, error) {
		i := sort.Search(len(tags), func(i int) bool { return !tags[i].Less(t) })
		if i < len(tags) && tags[i].Equal(t) {
			return i, nil
		}
		return 0, &morpherr.BinarySearchError{Table: "tags", Value: t.String()}
	}

	lemmaSet := make(map[string]struct{})
	for _, l := range dict.Lemmata.Lemmas {
		lemmaSet[l.NormalForm.Text] = struct{}{}
	}
	lemmas := make([]string, 0, len(lemmaSet))
	for l := range lemmaSet {
		lemmas = append(lemmas, l)
	}
	sort.Strings(lemmas)
	lemmaIndex := func(l string) (int, error) {
		i := sort.SearchStrings(lemmas, l)
		if i < len(lemmas) && lemmas[i] == l {
			return i, nil
		}
		return 0, &morpherr.BinarySearchError{Table: "lemmas", Value: l}
	}

	// Add the ё-substituted alias of every word containing ё, mapping to the
	// identical intermediate parse list as its canonical spelling (§4.2 pass 2
	// step 5): the е-spelling is searchable, but the parses still carry the ё
	// normal form. An е-spelling that is already a word of its own keeps its
	// own parse list and gets no alias.
	for w, ints := range wordMap {
		if !strings.ContainsRune(w, 'ё') {
			continue
		}
		alt := strings.ReplaceAll(w, "ё", "е")
		if _, exists := wordMap[alt]; !exists {
			wordMap[alt] = ints
		}
	}

	words := make([]string, 0, len(wordMap))
	for w := range wordMap {
		words = append(words, w)
	}
	sort.Strings(words)

	perWordParses := make([][]dictionary.Parse, len(words))
	for i, w := range words {
		ints := wordMap[w]
		parses := make([]dictionary.Parse, 0, len(ints))
		for _, pi := range ints {
			tid, err := tagIndex(pi.tag)
			if err != nil {
				return nil, nil, nil, err
			}
			lid, err := lemmaIndex(pi.normalForm)
			if err != nil {
				return nil, nil, nil, err
			}
			parses = append(parses, dictionary.Parse{
				Form:          pi.form,
				TagID:         uint32(tid),
				LemmaID:       uint32(lid),
				LemmaRowID:    pi.lemmaRowID,
				SourceLemmaID: pi.sourceLemmaID,
			})
		}
		sort.Slice(parses, func(a, b int) bool { return parseLess(parses[a], parses[b]) })
		perWordParses[i] = parses
	}

	// Pass 2 step 6: collapse identical parse-lists into one shared table so
	// the FST value is an index into it, not a per-word slot -- two surface
	// forms with the same grammatical analysis (e.g. a word and its
	// ё-substituted twin) dedupe to a single wordParses entry.
	wordParses, entries := internWordParses(perWordParses)

	lemmaRows := make([]dictionary.LemmaRow, len(rows))
	for i, r := range rows {
		row := make(dictionary.LemmaRow, len(r))
		for j, id := range r {
			row[j] = uint32(id)
		}
		lemmaRows[i] = row
	}

	paradigms, err := extractParadigms(rowVariants, tags, tagIndex)
	if err != nil {
		return nil, nil, nil, err
	}

	art := &dictionary.Artifact{
		Meta: dictionary.Meta{
			Version:    dict.Version,
			Revision:   dict.Revision,
			WordCount:  len(words),
			LemmaCount: len(lemmas),
		},
		WordParses: wordParses,
		Tags:       tags,
		Lemmas:     lemmas,
		LemmaRows:  lemmaRows,
		Paradigms:  paradigms,
	}

	return art, words, entries, nil
}

// collectLemma assembles every (word, tag) pair one OpenCorpora lemma
// contributes to the dictionary, given the lemma row it belongs to and
// whether it is that row's anchor (true normal form) or a linked lemma whose
// own dictionary entry should be reported as Inizio/Different instead.
func collectLemma(
	l *opencorpora.Lemma,
	rowID uint32,
	normalFormText string,
	isAnchor bool,
	words map[string][]parseIntermediate,
	tagSet map[string]grammeme.Tag,
) ([]rowVariant, error) {
	inizioTag := lemmaGram(l.NormalForm.Gram)

	firstForm := grammeme.FormWordNormal
	restForm := grammeme.FormWordDifferent
	if !isAnchor {
		firstForm = grammeme.FormWordInizio
	}

	var variants []rowVariant
	add := func(text string, tag grammeme.Tag, form grammeme.FormOrigin) {
		sorted := tag.Sorted()
		tagSet[sorted.String()] = sorted
		word := strings.ToLower(text)
		words[word] = append(words[word], parseIntermediate{
			tag:           sorted,
			form:          form,
			normalForm:    normalFormText,
			lemmaRowID:    rowID,
			sourceLemmaID: uint32(l.ID),
		})
		variants = append(variants, rowVariant{word: word, form: form, tag: sorted})
	}

	if len(l.Forms) == 0 {
		add(l.NormalForm.Text, inizioTag, firstForm)
		return variants, nil
	}

	for i, f := range l.Forms {
		tag := append(gramTag(f.Gram), inizioTag...)
		if i == 0 {
			add(f.Text, tag, firstForm)
		} else {
			add(f.Text, tag, restForm)
		}
	}
	return variants, nil
}

// parseLess gives a single word's Parse list the canonical order the lookup
// engine's dictionary-path results must come out in: (form, tagIndex,
// lemmaIndex).
func parseLess(a, b dictionary.Parse) bool {
	if a.Form != b.Form {
		return a.Form < b.Form
	}
	if a.TagID != b.TagID {
		return a.TagID < b.TagID
	}
	return a.LemmaID < b.LemmaID
}

// internWordParses deduplicates per-word parse lists into the shared
// wordParses table an Artifact stores, returning it alongside the FST value
// (index into that table) for each input word, in the same order.
func internWordParses(perWord [][]dictionary.Parse) ([][]dictionary.Parse, []uint64) {
	keyOf := func(parses []dictionary.Parse) string {
		var sb strings.Builder
		for _, p := range parses {
			fmt.Fprintf(&sb, "%d,%d,%d,%d,%d;", p.Form, p.TagID, p.LemmaID, p.LemmaRowID, p.SourceLemmaID)
		}
		return sb.String()
	}

	indexOf := make(map[string]int)
	var unique [][]dictionary.Parse
	var keys []string
	rawIdx := make([]int, len(perWord))
	for i, parses := range perWord {
		k := keyOf(parses)
		idx, ok := indexOf[k]
		if !ok {
			idx = len(unique)
			indexOf[k] = idx
			unique = append(unique, parses)
			keys = append(keys, k)
		}
		rawIdx[i] = idx
	}

	// Sort the unique parse-lists themselves (by their dedup key, which is
	// already derived from the canonically-ordered per-list fields) so the
	// table is the strictly sorted, duplicate-free vector the artifact
	// invariants require, then remap each word's FST value to its new slot.
	order := make([]int, len(unique))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return keys[order[a]] < keys[order[b]] })
	newPos := make([]int, len(unique))
	sorted := make([][]dictionary.Parse, len(unique))
	for newIdx, oldIdx := range order {
		newPos[oldIdx] = newIdx
		sorted[newIdx] = unique[oldIdx]
	}

	entries := make([]uint64, len(perWord))
	for i, old := range rawIdx {
		entries[i] = uint64(newPos[old])
	}
	return sorted, entries
}

func lemmaGram(gs []opencorpora.Gram) grammeme.Tag {
	return gramTag(gs)
}

func gramTag(gs []opencorpora.Gram) grammeme.Tag {
	t := make(grammeme.Tag, 0, len(gs))
	for _, g := range gs {
		t = append(t, grammeme.ParseToken(g.V))
	}
	return t
}
