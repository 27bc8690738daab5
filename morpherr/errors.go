// Package morpherr collects the error types raised across the compiler and
// lookup engine, so callers can errors.As/errors.Is on a stable, typed
// taxonomy instead of matching on message text.
package morpherr

import (
	"errors"
	"fmt"
)

// Bound names which interned table an out-of-range index pointed past.
type Bound int

const (
	BoundWordParses Bound = iota
	BoundTags
	BoundLemmas
	BoundLemmaRows
	BoundParadigms
)

func (b Bound) String() string {
	switch b {
	case BoundWordParses:
		return "word_parses"
	case BoundTags:
		return "tags"
	case BoundLemmas:
		return "lemmas"
	case BoundLemmaRows:
		return "lemma_rows"
	case BoundParadigms:
		return "paradigms"
	default:
		return "unknown"
	}
}

// OutOfBoundError is raised when an FST hit or a Parse record points at an
// index past the end of the corresponding interned table -- normally a sign
// that the .fst and .json halves of an artifact were built from different
// dictionary revisions.
type OutOfBoundError struct {
	Idx   uint64
	Table Bound
}

func (e *OutOfBoundError) Error() string {
	return fmt.Sprintf("index %d out of bounds for %s table", e.Idx, e.Table)
}

// ErrFutureRelease is returned by Normalize when the OOV predictor yields a
// postfix (paradigm-match) candidate, whose normal form cannot be
// reconstructed. A word that neither the FST nor the predictor recognizes
// is not an error: it yields an empty result.
var ErrFutureRelease = errors.New("future release: normalizing a postfix-predicted word is not implemented")

// LostNormalFormError is raised when a Parse's normal-form lemma text cannot
// itself be found in the FST, which should never happen for a dictionary
// built by this module's own compiler.
type LostNormalFormError struct {
	Word string
}

func (e *LostNormalFormError) Error() string {
	return fmt.Sprintf("dictionary word %q lost its own normal form entry", e.Word)
}

// LinkLostError is raised by the link resolver when a link references a
// lemma ID absent from the dictionary's lemma table.
type LinkLostError struct {
	LinkType uint64
	LemmaID  uint64
}

func (e *LinkLostError) Error() string {
	return fmt.Sprintf("link type %d references missing lemma %d", e.LinkType, e.LemmaID)
}

// BinarySearchError is raised by the compiler's interning step when a tag,
// lemma or parse set that was supposed to already be present in a sorted
// table cannot be found there -- an invariant violation in the compile
// pipeline, not a data problem.
type BinarySearchError struct {
	Table string
	Value any
}

func (e *BinarySearchError) Error() string {
	return fmt.Sprintf("binary search in %s table did not find %v", e.Table, e.Value)
}

// NoFormsError is raised when a lemma has no non-empty forms list to derive
// a paradigm or link resolution from.
type NoFormsError struct {
	LemmaID uint64
}

func (e *NoFormsError) Error() string {
	return fmt.Sprintf("lemma %d has no word forms", e.LemmaID)
}

// StemMismatchError is raised by the paradigm extractor when a word form
// does not actually contain the stem computed for its lemma cluster.
type StemMismatchError struct {
	Stem string
	Word string
}

func (e *StemMismatchError) Error() string {
	return fmt.Sprintf("stem %q not found in word %q", e.Stem, e.Word)
}

// ErrEmptyWord is returned by Declension and InflectForms when asked to
// inflect the empty string.
var ErrEmptyWord = errors.New("declension: word must not be empty")

// SymbolNotFoundError is raised when the alphabet-range scan underlying
// inflection meets a common-prefix character that is not a letter of its
// alphabet, so no search bound can be built from it.
type SymbolNotFoundError struct {
	Symbol rune
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("declension: alphabet symbol %q not found while building range bound", e.Symbol)
}
