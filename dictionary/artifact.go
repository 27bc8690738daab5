// Package dictionary defines the on-disk artifact produced by the compiler
// and consumed by the analyzer: a byte-key sorted FST mapping surface words
// to an index into a parse table, plus the parse/tag/lemma/paradigm tables
// themselves.
package dictionary

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/blevesearch/vellum"
	mmap "github.com/edsrzf/mmap-go"
	"github.com/rs/zerolog/log"

	"github.com/kribrum-os/gomorph/grammeme"
)

// FSTFileName and TablesFileName are the two files an Artifact is split
// across: the FST needs to be its own file so it can be mmap'd directly,
// while everything else is plain JSON.
const (
	FSTFileName    = "dict.fst"
	TablesFileName = "dict.json"
)

// Meta describes the dictionary revision an Artifact was compiled from.
type Meta struct {
	Version    string `json:"version"`
	Revision   uint64 `json:"revision"`
	WordCount  int    `json:"word_count"`
	LemmaCount int    `json:"lemma_count"`
}

// Parse is one grammatical analysis of a word: its form origin plus indexes
// into the Tags, Lemmas and LemmaRows tables.
//
// SourceLemmaID is the OpenCorpora lemma ID the Form origin is keyed to (the
// embedded parameter of WordNormal(lemmaId)/WordInizio(lemmaId)/... in the
// design's tagged-Form model): constant across every surface form a single
// OpenCorpora <lemma> contributed, but distinct between lemmas sharing a
// LemmaRow. Inflection's "initial form" search needs it to stay within the
// same source lemma instead of spilling onto a row-mate.
type Parse struct {
	Form          grammeme.FormOrigin `json:"form"`
	TagID         uint32              `json:"tag_id"`
	LemmaID       uint32              `json:"lemma_id"`
	LemmaRowID    uint32              `json:"lemma_row_id"`
	SourceLemmaID uint32              `json:"source_lemma_id"`
}

// LemmaRow is a sorted group of lemma IDs that the link resolver has tied
// together (e.g. a verb infinitive with its personal forms, participles and
// gerundives), so a lookup on any member can reach every related lemma.
type LemmaRow []uint32

// ParadigmItem is one (postfix, form, tags) triple belonging to a
// paradigm: a rule of the form "a lemma whose forms end in these postfixes,
// in this shape, probably takes these tags".
type ParadigmItem struct {
	Postfix string   `json:"postfix"`
	Form    grammeme.FormOrigin `json:"form"`
	TagIDs  []uint32 `json:"tag_ids"`
}

// Paradigm is a postfix-signature cluster extracted from the dictionary by
// the paradigm extractor. The analyzer's OOV predictor does not read this
// table; its prefix-based phases work off the FST alone.
type Paradigm struct {
	Popularity uint64         `json:"popularity"`
	Postfixes  []ParadigmItem `json:"postfixes"`
}

// Artifact is the full compiled dictionary, minus the FST itself (that half
// lives in its own mmap'd file).
type Artifact struct {
	Meta       Meta       `json:"meta"`
	WordParses [][]Parse  `json:"word_parses"`
	Tags       []grammeme.Tag `json:"tags"`
	Lemmas     []string   `json:"lemmas"`
	LemmaRows  []LemmaRow `json:"lemma_rows"`
	Paradigms  []Paradigm `json:"paradigms"`
}

// Save writes the two-file artifact to dir: dir/dict.fst and dir/dict.json.
// words must be supplied in strictly increasing byte-key order and entries
// must be parallel to words (entries[i] is the WordParses index for
// words[i]) -- this is the same increasing-key contract vellum's
// builder itself enforces.
func Save(dir string, art *Artifact, words []string, entries []uint64) error {
	if len(words) != len(entries) {
		return fmt.Errorf("dictionary.Save: %d words but %d entries", len(words), len(entries))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	fstPath := dir + string(os.PathSeparator) + FSTFileName
	f, err := os.Create(fstPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fstPath, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	builder, err := vellum.New(bw, nil)
	if err != nil {
		return fmt.Errorf("creating fst builder: %w", err)
	}
	for i, w := range words {
		if err := builder.Insert([]byte(w), entries[i]); err != nil {
			return fmt.Errorf("inserting %q into fst: %w", w, err)
		}
	}
	if err := builder.Close(); err != nil {
		return fmt.Errorf("finalizing fst: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing fst writer: %w", err)
	}

	tablesPath := dir + string(os.PathSeparator) + TablesFileName
	tf, err := os.Create(tablesPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tablesPath, err)
	}
	defer tf.Close()

	enc := json.NewEncoder(bufio.NewWriter(tf))
	if err := enc.Encode(art); err != nil {
		return fmt.Errorf("encoding tables: %w", err)
	}

	log.Info().Str("dir", dir).Int("words", len(words)).Msg("dictionary: artifact written")
	return nil
}

// Loaded is an Artifact plus its backing FST, ready for lookups. Close
// releases the mmap once the analyzer built on top of it is done.
type Loaded struct {
	Artifact *Artifact
	FST      *vellum.FST
	mm       mmap.MMap
}

// Close unmaps the FST file. Safe to call once; subsequent calls are no-ops.
func (l *Loaded) Close() error {
	if l.mm == nil {
		return nil
	}
	if err := l.FST.Close(); err != nil {
		return err
	}
	err := l.mm.Unmap()
	l.mm = nil
	return err
}

// Load reads dir/dict.fst and dir/dict.json, favoring peak throughput: the
// FST is mmap'd zero-copy as usual, and the JSON tables are read into a
// single buffer before decoding. Use LoadBuffered instead when RAM is the
// tighter constraint than load latency.
func Load(dir string) (*Loaded, error) {
	return load(dir, func(path string) (*Artifact, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var art Artifact
		if err := json.Unmarshal(data, &art); err != nil {
			return nil, err
		}
		return &art, nil
	})
}

// LoadBuffered behaves like Load but decodes the JSON tables through a
// buffered streaming reader instead of reading the whole file into memory
// first, trading load latency for a lower memory high-water mark.
func LoadBuffered(dir string) (*Loaded, error) {
	return load(dir, func(path string) (*Artifact, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		var art Artifact
		dec := json.NewDecoder(bufio.NewReaderSize(f, 1<<20))
		if err := dec.Decode(&art); err != nil {
			return nil, err
		}
		return &art, nil
	})
}

func load(dir string, readTables func(string) (*Artifact, error)) (*Loaded, error) {
	fstPath := dir + string(os.PathSeparator) + FSTFileName
	f, err := os.Open(fstPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", fstPath, err)
	}
	defer f.Close()

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", fstPath, err)
	}

	fst, err := vellum.Load(mm)
	if err != nil {
		_ = mm.Unmap()
		return nil, fmt.Errorf("loading fst: %w", err)
	}

	art, err := readTables(dir + string(os.PathSeparator) + TablesFileName)
	if err != nil {
		_ = fst.Close()
		_ = mm.Unmap()
		return nil, fmt.Errorf("reading tables: %w", err)
	}

	log.Debug().Str("dir", dir).Str("version", art.Meta.Version).Msg("dictionary: artifact loaded")
	return &Loaded{Artifact: art, FST: fst, mm: mm}, nil
}

// SortWords is a small helper for compilers assembling the word list: vellum
// requires strictly increasing byte-key insertion order.
func SortWords(words []string) {
	sort.Strings(words)
}
