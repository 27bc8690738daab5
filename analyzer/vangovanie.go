package analyzer

import (
	"sort"
	"strings"

	"github.com/kribrum-os/gomorph/grammeme"
)

// knownPrefixSet is knownPrefixes as a lookup set, built once.
var knownPrefixSet = func() map[string]bool {
	m := make(map[string]bool, len(knownPrefixes))
	for _, p := range knownPrefixes {
		m[p] = true
	}
	return m
}()

// predict is the §4.5 OOV guesser (vangovanie): invoked by Parse/Normalize
// whenever lower has no FST entry. Phase 1 strips a listed productive
// prefix, Phase 2 tries every prefix length 1-4 not already on that list,
// and Phase 3 (paradigm-postfix matching) is reserved -- the table is
// populated by the compiler's extractor, but no candidate consults it yet.
func (a *Analyzer) predict(lower string) (ParsedWords, error) {
	var out ParsedWords

	known, err := a.predictKnownPrefix(lower)
	if err != nil {
		return nil, err
	}
	out = append(out, known...)

	unknown, err := a.predictUnknownPrefix(lower)
	if err != nil {
		return nil, err
	}
	out = append(out, unknown...)

	if len(out) == 0 {
		return nil, nil
	}

	total := float64(len(out))
	for i := range out {
		out[i].Score /= total
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// predictKnownPrefix implements §4.5 Phase 1: for every prefix on the fixed
// list that word starts with, if the remaining stem is >= 3 runes and in
// the FST, emit a candidate per stem parse that doesn't carry an
// unproductive grammeme.
func (a *Analyzer) predictKnownPrefix(word string) (ParsedWords, error) {
	var out ParsedWords
	for _, p := range knownPrefixes {
		if !strings.HasPrefix(word, p) {
			continue
		}
		stem := word[len(p):]
		if len([]rune(stem)) < 3 {
			continue
		}
		cands, err := a.predictionCandidates(stem, p, MethodKnownPrefix, 0.75)
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}
	return out, nil
}

// predictUnknownPrefix implements §4.5 Phase 2: try every prefix length
// 1..4 (runes) not already on the known list, same stem/FST/unproductive
// filter as Phase 1 but a lower base score.
func (a *Analyzer) predictUnknownPrefix(word string) (ParsedWords, error) {
	runes := []rune(word)
	var out ParsedWords
	for i := 1; i < 5 && i < len(runes); i++ {
		prefix := string(runes[:i])
		if knownPrefixSet[prefix] {
			continue
		}
		stem := string(runes[i:])
		if len([]rune(stem)) < 3 {
			continue
		}
		cands, err := a.predictionCandidates(stem, prefix, MethodUnknownPrefix, 0.5)
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}
	return out, nil
}

// predictionCandidates looks stem up in the FST and, for each of its
// parses that doesn't carry an UNPRODUCTIVE grammeme, emits a ParsedWord
// whose word/normalForm/tag come from the stem's own parse and whose
// method records the stripped prefix. ParsedWord has no form-origin field,
// so the stem parse's Form is not carried over to the candidate.
func (a *Analyzer) predictionCandidates(stem, prefix string, kind MethodKind, score float64) (ParsedWords, error) {
	parses, ok, err := a.lookup(strings.ToLower(stem))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var out ParsedWords
	for _, p := range parses {
		tag, err := a.tagAt(p.TagID)
		if err != nil {
			return nil, err
		}
		if grammeme.IsUnproductive(tag) {
			continue
		}
		lemma, err := a.lemmaAt(p.LemmaID)
		if err != nil {
			return nil, err
		}
		out = append(out, ParsedWord{
			Word:       prefix + stem,
			Tag:        tag,
			NormalForm: lemma,
			Method:     Method{Kind: kind, Prefix: prefix},
			Score:      score,
		})
	}
	return out, nil
}
