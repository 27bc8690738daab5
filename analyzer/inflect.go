package analyzer

import (
	"sort"
	"strings"

	"github.com/blevesearch/vellum"

	"github.com/kribrum-os/gomorph/dictionary"
	"github.com/kribrum-os/gomorph/grammeme"
	"github.com/kribrum-os/gomorph/morpherr"
)

// russianAlphabet is the ordering the §4.4.1 alphabet-stream range
// construction walks to find the symbol immediately after a prefix's last
// character.
var russianAlphabet = []rune("абвгдеёжзийклмнопрстуфхцчшщъыьэюя")

// nextAlphabetSymbol reports the letter after r in the Russian alphabet.
// found is false if r isn't one of its letters at all (the range bound
// can't be built); hasNext is false if r is the alphabet's last letter (the
// range has no upper bound, only a lower one).
func nextAlphabetSymbol(r rune) (next rune, hasNext bool, found bool) {
	for i, c := range russianAlphabet {
		if c == r {
			if i+1 < len(russianAlphabet) {
				return russianAlphabet[i+1], true, true
			}
			return 0, false, true
		}
	}
	return 0, false, false
}

// prefixRange computes the [lower, upper) FST key bound used to stream only
// the region of the dictionary that could hold forms of word's paradigm,
// per §4.4.1 step 3: lower is the longest common prefix of word and lemma;
// upper is that prefix with its last character bumped to the next alphabet
// symbol. If the prefix ends on the alphabet's last letter, there is no next
// symbol to bound the range with, and the match collapses to lower itself:
// hasUpper is false and the caller must treat it as an exact-key check
// (ge(lower).le(lower)), never an unbounded scan to the end of the FST.
func prefixRange(word, lemma string) (lower, upper string, hasUpper bool, err error) {
	wr, lr := []rune(word), []rune(lemma)
	n := len(wr)
	if len(lr) < n {
		n = len(lr)
	}
	i := 0
	for i < n && wr[i] == lr[i] {
		i++
	}
	if i == 0 {
		return "", "", false, nil
	}

	prefix := wr[:i]
	last := prefix[i-1]
	next, hasNext, found := nextAlphabetSymbol(last)
	if !found {
		return "", "", false, &morpherr.SymbolNotFoundError{Symbol: last}
	}
	if !hasNext {
		return string(prefix), "", false, nil
	}
	upperRunes := append(append([]rune{}, prefix[:i-1]...), next)
	return string(prefix), string(upperRunes), true, nil
}

// inflectionTarget is one parse, drawn from the global wordParses table,
// that survived the §4.4.1 step 2 grammeme filter -- it still needs its
// surface spelling(s) recovered by streaming the FST.
type inflectionTarget struct {
	listIndex int
	parse     dictionary.Parse
	lemma     string
}

// collectTargets implements §4.4.1 step 2: scan every parse in the
// dictionary's parse-list table, keep the ones whose SourceLemmaID belongs
// to the row, and apply the grammeme filter -- initialOnly requires the
// Inizio/Normal form of the *same* source lemma as wid (no desired-grammeme
// set given), otherwise require the tag to carry every grammeme in want.
func (a *Analyzer) collectTargets(ids map[uint32]bool, want grammeme.Tag, wid uint32, initialOnly bool) ([]inflectionTarget, error) {
	var out []inflectionTarget
	for li, list := range a.loaded.Artifact.WordParses {
		for _, p := range list {
			if !ids[p.SourceLemmaID] {
				continue
			}
			if initialOnly {
				if !(p.Form.IsNormal() || p.Form.IsInizio()) || p.SourceLemmaID != wid {
					continue
				}
			} else {
				tag, err := a.tagAt(p.TagID)
				if err != nil {
					return nil, err
				}
				if !tag.Contains(want...) {
					continue
				}
			}
			lemma, err := a.lemmaAt(p.LemmaID)
			if err != nil {
				return nil, err
			}
			out = append(out, inflectionTarget{listIndex: li, parse: p, lemma: lemma})
		}
	}
	return out, nil
}

// streamMatches implements §4.4.1 steps 3-5: for each target, bound the FST
// scan to the alphabet range its (sourceWord, lemma) pair implies, stream
// it, and keep the keys whose FST value is the target's own parse-list.
func (a *Analyzer) streamMatches(sourceWord string, targets []inflectionTarget) (InflectWords, error) {
	seen := make(map[string]bool)
	var out InflectWords
	addMatch := func(key []byte, val uint64, tgt inflectionTarget) error {
		if int(val) != tgt.listIndex {
			return nil
		}
		tag, err := a.tagAt(tgt.parse.TagID)
		if err != nil {
			return err
		}
		word := string(key)
		dedupeKey := word + "|" + tag.String() + "|" + tgt.lemma
		if !seen[dedupeKey] {
			seen[dedupeKey] = true
			out = append(out, InflectWord{Word: word, Tag: tag, NormalForm: tgt.lemma, Method: Method{Kind: MethodDictionary}})
		}
		return nil
	}

	for _, tgt := range targets {
		lower, upper, hasUpper, err := prefixRange(sourceWord, tgt.lemma)
		if err != nil {
			return nil, err
		}

		if !hasUpper {
			// No next alphabet symbol exists to bound the range with; the
			// match is an exact key lookup on lower, not an unbounded scan
			// to the end of the FST.
			val, exists, err := a.loaded.FST.Get([]byte(lower))
			if err != nil {
				return nil, err
			}
			if !exists {
				continue
			}
			if err := addMatch([]byte(lower), val, tgt); err != nil {
				return nil, err
			}
			continue
		}

		itr, err := a.loaded.FST.Iterator([]byte(lower), []byte(upper))
		if err == vellum.ErrIteratorDone {
			continue
		}
		if err != nil {
			return nil, err
		}

		for err == nil {
			key, val := itr.Current()
			if merr := addMatch(key, val, tgt); merr != nil {
				_ = itr.Close()
				return nil, merr
			}
			err = itr.Next()
		}
		if err != vellum.ErrIteratorDone {
			_ = itr.Close()
			return nil, err
		}
		if err := itr.Close(); err != nil {
			return nil, err
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Word != out[j].Word {
			return out[i].Word < out[j].Word
		}
		return out[i].Tag.Less(out[j].Tag)
	})
	return out, nil
}

func (a *Analyzer) inflectFromParse(sourceWord string, p dictionary.Parse, want grammeme.Tag, initialOnly bool) (InflectWords, error) {
	row, err := a.rowAt(p.LemmaRowID)
	if err != nil {
		return nil, err
	}
	ids := make(map[uint32]bool, len(row))
	for _, id := range row {
		ids[id] = true
	}

	targets, err := a.collectTargets(ids, want, p.SourceLemmaID, initialOnly)
	if err != nil {
		return nil, err
	}
	return a.streamMatches(sourceWord, targets)
}

// InflectInizio computes the initial form of every parse of word: the form
// a dictionary lemma presents "by itself", which may differ from its
// normal form (a gerundive's own listed form, say).
func (a *Analyzer) InflectInizio(word string) (InflectWords, error) {
	return a.InflectForms(word, nil)
}

// InflectForms returns, for every parse of word, every form in that parse's
// LemmaRow whose tag carries every grammeme in want; these need not be
// initial forms. A nil/empty want reduces to InflectInizio.
func (a *Analyzer) InflectForms(word string, want grammeme.Tag) (InflectWords, error) {
	lower := strings.ToLower(word)
	if lower == "" {
		return nil, morpherr.ErrEmptyWord
	}
	parses, ok, err := a.lookup(lower)
	if err != nil || !ok {
		return nil, err
	}

	seen := make(map[string]bool)
	var out InflectWords
	for _, p := range parses {
		var words InflectWords
		if len(want) == 0 {
			words, err = a.inflectFromParse(lower, p, nil, true)
		} else {
			words, err = a.inflectFromParse(lower, p, want, false)
		}
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			key := w.Word + "|" + w.Tag.String()
			if !seen[key] {
				seen[key] = true
				out = append(out, w)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out, nil
}

// InflectParsed behaves like InflectForms, but the caller has already
// selected one ParsedWord (e.g. to disambiguate a homograph) instead of
// letting every parse of word contribute. Only dictionary-origin parses
// carry the lemma-row bookkeeping this needs; a vangovanie-origin
// ParsedWord returns an empty result.
func (a *Analyzer) InflectParsed(p ParsedWord, want grammeme.Tag) (InflectWords, error) {
	if !p.hasRow {
		return nil, nil
	}
	dp := dictionary.Parse{LemmaRowID: p.rowID, SourceLemmaID: p.sourceLemmaID}
	if len(want) == 0 {
		return a.inflectFromParse(strings.ToLower(p.Word), dp, nil, true)
	}
	return a.inflectFromParse(strings.ToLower(p.Word), dp, want, false)
}

// Declension enumerates every form sharing a LemmaRow with any parse of
// word: one call covers every row a homograph belongs to.
func (a *Analyzer) Declension(word string) (InflectWords, error) {
	lower := strings.ToLower(word)
	if lower == "" {
		return nil, morpherr.ErrEmptyWord
	}
	parses, ok, err := a.lookup(lower)
	if err != nil || !ok {
		return nil, err
	}

	seen := make(map[string]bool)
	var out InflectWords
	for _, p := range parses {
		words, err := a.inflectFromParse(lower, p, nil, false)
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			key := w.Word + "|" + w.Tag.String() + "|" + w.NormalForm
			if !seen[key] {
				seen[key] = true
				out = append(out, w)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out, nil
}

// DeclensionParsed behaves like Declension, restricted to the single row
// the given (dictionary-origin) ParsedWord belongs to.
func (a *Analyzer) DeclensionParsed(p ParsedWord) (InflectWords, error) {
	if !p.hasRow {
		return nil, nil
	}
	dp := dictionary.Parse{LemmaRowID: p.rowID, SourceLemmaID: p.sourceLemmaID}
	return a.inflectFromParse(strings.ToLower(p.Word), dp, nil, false)
}
