// Package analyzer is the lookup engine: it loads a compiled
// dictionary.Loaded artifact and answers parse/normalize/inflect/declension
// queries against it, falling back to the OOV predictor (vangovanie) when
// the FST has no entry for a word.
//
// Everything here is read-only after construction -- Open mmaps the FST
// once and every query method is safe to call from multiple goroutines
// without locking.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/kribrum-os/gomorph/grammeme"
)

// MethodKind distinguishes a dictionary hit from the three vangovanie
// (OOV-prediction) strategies.
type MethodKind uint8

const (
	// MethodDictionary marks a result read directly off the FST.
	MethodDictionary MethodKind = iota
	// MethodKnownPrefix marks a prediction made by stripping a listed
	// productive Russian prefix and finding the remaining stem in the FST.
	MethodKnownPrefix
	// MethodUnknownPrefix marks the same strategy applied with a prefix not
	// on the known list.
	MethodUnknownPrefix
	// MethodPostfix marks the paradigm-postfix prediction strategy. Reserved:
	// the extractor fills Paradigms but the predictor does not yet consult
	// them (§4.5 phase 3 is a stub pending the scoring formula).
	MethodPostfix
)

// Method records how a ParsedWord/InflectWord was produced: a straight
// dictionary hit, or one of the vangovanie OOV strategies with the prefix it
// stripped.
type Method struct {
	Kind   MethodKind
	Prefix string
}

func (m Method) String() string {
	switch m.Kind {
	case MethodDictionary:
		return "Dictionary"
	case MethodKnownPrefix:
		return fmt.Sprintf("Vangovanie(KnownPrefix(%s))", m.Prefix)
	case MethodUnknownPrefix:
		return fmt.Sprintf("Vangovanie(UnknownPrefix(%s))", m.Prefix)
	case MethodPostfix:
		return "Vangovanie(Postfix)"
	default:
		return "Unknown"
	}
}

// ParsedWord is one grammatical analysis of a surface word: its tag set,
// the lemma it normalizes to, how the analysis was produced, and -- for
// vangovanie results only -- a confidence score in (0, 1].
type ParsedWord struct {
	Word       string
	Tag        grammeme.Tag
	NormalForm string
	Method     Method
	Score      float64

	// rowID and sourceLemmaID are populated for Method.Kind ==
	// MethodDictionary only: they are the LemmaRowID/SourceLemmaID the
	// originating dictionary.Parse carried, letting InflectParsed and
	// DeclensionParsed resume the §4.4.1 search without re-looking-up word.
	rowID, sourceLemmaID uint32
	hasRow                bool
}

// String renders the display contract from §7: `'WORD', tags: [...],
// normal_form = 'LEMMA', Method::KIND`.
func (p ParsedWord) String() string {
	codes := make([]string, len(p.Tag))
	for i, g := range p.Tag {
		codes[i] = g.Code
	}
	return fmt.Sprintf("'%s', tags: [%s], normal_form = '%s', Method::%s",
		p.Word, strings.Join(codes, ", "), p.NormalForm, p.Method)
}

// ParsedWords is a list of ParsedWord with the display contract's
// list-separator rule: entries separated by ",\n".
type ParsedWords []ParsedWord

func (ps ParsedWords) String() string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",\n")
}

// InflectWord is one generated word form: its spelling, tag set, the lemma
// it belongs to, and how it was produced.
type InflectWord struct {
	Word       string
	Tag        grammeme.Tag
	NormalForm string
	Method     Method
}

func (w InflectWord) String() string {
	codes := make([]string, len(w.Tag))
	for i, g := range w.Tag {
		codes[i] = g.Code
	}
	return fmt.Sprintf("'%s', tags: [%s], normal_form = '%s', Method::%s",
		w.Word, strings.Join(codes, ", "), w.NormalForm, w.Method)
}

// InflectWords is a list of InflectWord sharing the same display contract.
type InflectWords []InflectWord

func (ws InflectWords) String() string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.String()
	}
	return strings.Join(parts, ",\n")
}
