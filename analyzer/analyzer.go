package analyzer

import (
	"sort"
	"strings"

	"github.com/kribrum-os/gomorph/dictionary"
	"github.com/kribrum-os/gomorph/grammeme"
	"github.com/kribrum-os/gomorph/morpherr"
)

// Analyzer is the compiled-dictionary lookup engine: parse, normalize,
// inflect and decline queries against a loaded FST plus its parse/tag/lemma
// tables. Immutable after Open; safe for concurrent use.
type Analyzer struct {
	loaded *dictionary.Loaded
}

// Open loads the two-file artifact at dir the fast way (see
// dictionary.Load): the FST is mmap'd, the JSON tables are read whole.
func Open(dir string) (*Analyzer, error) {
	loaded, err := dictionary.Load(dir)
	if err != nil {
		return nil, err
	}
	return &Analyzer{loaded: loaded}, nil
}

// OpenBuffered loads the artifact via dictionary.LoadBuffered, trading load
// latency for a lower peak-RAM footprint -- the construction-time choice
// §5 calls out for memory-constrained hosts.
func OpenBuffered(dir string) (*Analyzer, error) {
	loaded, err := dictionary.LoadBuffered(dir)
	if err != nil {
		return nil, err
	}
	return &Analyzer{loaded: loaded}, nil
}

// Close releases the mmap'd FST. Safe to call once the Analyzer is no
// longer in use.
func (a *Analyzer) Close() error {
	return a.loaded.Close()
}

// IsKnown reports whether word (case-folded) has an FST entry.
func (a *Analyzer) IsKnown(word string) bool {
	_, exists, err := a.loaded.FST.Contains([]byte(strings.ToLower(word)))
	return err == nil && exists
}

// lookup returns the (already canonically sorted, see parseLess in
// internal/compile) parse list the FST maps lower to, if any.
func (a *Analyzer) lookup(lower string) ([]dictionary.Parse, bool, error) {
	val, exists, err := a.loaded.FST.Get([]byte(lower))
	if err != nil || !exists {
		return nil, false, err
	}
	if int(val) >= len(a.loaded.Artifact.WordParses) {
		return nil, false, &morpherr.OutOfBoundError{Idx: val, Table: morpherr.BoundWordParses}
	}
	return a.loaded.Artifact.WordParses[val], true, nil
}

func (a *Analyzer) tagAt(id uint32) (grammeme.Tag, error) {
	if int(id) >= len(a.loaded.Artifact.Tags) {
		return nil, &morpherr.OutOfBoundError{Idx: uint64(id), Table: morpherr.BoundTags}
	}
	return a.loaded.Artifact.Tags[id], nil
}

func (a *Analyzer) lemmaAt(id uint32) (string, error) {
	if int(id) >= len(a.loaded.Artifact.Lemmas) {
		return "", &morpherr.OutOfBoundError{Idx: uint64(id), Table: morpherr.BoundLemmas}
	}
	return a.loaded.Artifact.Lemmas[id], nil
}

func (a *Analyzer) rowAt(id uint32) (dictionary.LemmaRow, error) {
	if int(id) >= len(a.loaded.Artifact.LemmaRows) {
		return nil, &morpherr.OutOfBoundError{Idx: uint64(id), Table: morpherr.BoundLemmaRows}
	}
	return a.loaded.Artifact.LemmaRows[id], nil
}

func (a *Analyzer) toParsedWord(surface string, p dictionary.Parse) (ParsedWord, error) {
	tag, err := a.tagAt(p.TagID)
	if err != nil {
		return ParsedWord{}, err
	}
	lemma, err := a.lemmaAt(p.LemmaID)
	if err != nil {
		return ParsedWord{}, err
	}
	return ParsedWord{
		Word: surface, Tag: tag, NormalForm: lemma, Method: Method{Kind: MethodDictionary},
		rowID: p.LemmaRowID, sourceLemmaID: p.SourceLemmaID, hasRow: true,
	}, nil
}

// Parse returns every grammatical analysis of word: dictionary.WordParses
// for an FST hit, otherwise the vangovanie OOV predictor's candidates.
// Dictionary-path results are sorted by (form, tagIndex, lemmaIndex);
// predictor-path results are sorted by descending score.
func (a *Analyzer) Parse(word string) (ParsedWords, error) {
	lower := strings.ToLower(word)
	parses, ok, err := a.lookup(lower)
	if err != nil {
		return nil, err
	}
	if !ok {
		return a.predict(lower)
	}

	out := make(ParsedWords, 0, len(parses))
	for _, p := range parses {
		pw, err := a.toParsedWord(lower, p)
		if err != nil {
			return nil, err
		}
		out = append(out, pw)
	}
	return out, nil
}

// ParseGet returns the i-th entry of Parse(word), or ok=false if out of range.
func (a *Analyzer) ParseGet(word string, i int) (ParsedWord, bool, error) {
	ps, err := a.Parse(word)
	if err != nil || i < 0 || i >= len(ps) {
		return ParsedWord{}, false, err
	}
	return ps[i], true, nil
}

// ParseGrammemes filters Parse(word) to entries whose tag carries every
// grammeme in want.
func (a *Analyzer) ParseGrammemes(word string, want ...grammeme.Grammeme) (ParsedWords, error) {
	ps, err := a.Parse(word)
	if err != nil {
		return nil, err
	}
	var out ParsedWords
	for _, p := range ps {
		if p.Tag.Contains(want...) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Normalize returns one ParsedWord per distinct (lemma, tag) pair word
// could normalize to. A dictionary hit whose own form is not normal follows
// its normalForm pointer back to the normal-form entries sharing its
// LemmaRow, which excludes same-spelled homographs from an unrelated
// paradigm cluster (§4.4's cross-check).
func (a *Analyzer) Normalize(word string) (ParsedWords, error) {
	lower := strings.ToLower(word)
	parses, ok, err := a.lookup(lower)
	if err != nil {
		return nil, err
	}
	if !ok {
		predicted, err := a.predict(lower)
		if err != nil {
			return nil, err
		}
		for _, p := range predicted {
			if p.Method.Kind == MethodPostfix {
				return nil, morpherr.ErrFutureRelease
			}
		}
		return dedupeByLemmaTag(predicted), nil
	}

	seen := make(map[string]bool)
	var out ParsedWords
	addNormal := func(lemma string, p dictionary.Parse) error {
		key := lemma + "|" + tagKey(a, p.TagID)
		if seen[key] {
			return nil
		}
		seen[key] = true
		pw, err := a.toParsedWord(lemma, p)
		if err != nil {
			return err
		}
		out = append(out, pw)
		return nil
	}

	for _, p := range parses {
		lemma, err := a.lemmaAt(p.LemmaID)
		if err != nil {
			return nil, err
		}
		if p.Form.IsNormal() {
			if err := addNormal(lemma, p); err != nil {
				return nil, err
			}
			continue
		}

		normalParses, normalOK, err := a.lookup(strings.ToLower(lemma))
		if err != nil {
			return nil, err
		}
		if !normalOK {
			return nil, &morpherr.LostNormalFormError{Word: lemma}
		}
		for _, np := range normalParses {
			if !np.Form.IsNormal() || np.LemmaRowID != p.LemmaRowID {
				continue
			}
			if err := addNormal(lemma, np); err != nil {
				return nil, err
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].NormalForm < out[j].NormalForm })
	return out, nil
}

func tagKey(a *Analyzer, tagID uint32) string {
	t, err := a.tagAt(tagID)
	if err != nil {
		return ""
	}
	return t.String()
}

func dedupeByLemmaTag(ps ParsedWords) ParsedWords {
	seen := make(map[string]bool, len(ps))
	var out ParsedWords
	for _, p := range ps {
		key := p.NormalForm + "|" + p.Tag.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// NormalizeGet returns the i-th entry of Normalize(word).
func (a *Analyzer) NormalizeGet(word string, i int) (ParsedWord, bool, error) {
	ps, err := a.Normalize(word)
	if err != nil || i < 0 || i >= len(ps) {
		return ParsedWord{}, false, err
	}
	return ps[i], true, nil
}

// NormalizeGrammemes filters Normalize(word) to entries whose tag carries
// every grammeme in want.
func (a *Analyzer) NormalizeGrammemes(word string, want ...grammeme.Grammeme) (ParsedWords, error) {
	ps, err := a.Normalize(word)
	if err != nil {
		return nil, err
	}
	var out ParsedWords
	for _, p := range ps {
		if p.Tag.Contains(want...) {
			out = append(out, p)
		}
	}
	return out, nil
}
