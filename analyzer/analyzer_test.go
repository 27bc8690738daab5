package analyzer

import (
	"testing"

	"github.com/kribrum-os/gomorph/dictionary"
	"github.com/kribrum-os/gomorph/internal/compile"
	"github.com/kribrum-os/gomorph/opencorpora"
)

// buildAnalyzer compiles a small fixture dictionary and opens it the way a
// real caller would: compile -> save the two-file artifact -> Open.
func buildAnalyzer(t *testing.T) *Analyzer {
	t.Helper()

	g := func(tokens ...string) []opencorpora.Gram {
		out := make([]opencorpora.Gram, len(tokens))
		for i, tok := range tokens {
			out[i] = opencorpora.Gram{V: tok}
		}
		return out
	}

	dict := &opencorpora.Dictionary{
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

	art, words, entries, err := compile.Compile(dict)
	if err != nil {
		t.Fatalf("compile.Compile: %v", err)
	}

	dir := t.TempDir()
	if err := dictionary.Save(dir, art, words, entries); err != nil {
		t.Fatalf("saving artifact: %v", err)
	}

	a, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestParse_DictionaryHit(t *testing.T) {
	a := buildAnalyzer(t)
	ps, err := a.Parse("кота")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ps) == 0 {
		t.Fatalf("expected at least one parse for кота")
	}
	for _, p := range ps {
		if p.NormalForm != "кот" {
			t.Errorf("Parse(кота) normal form = %q, want кот", p.NormalForm)
		}
		if p.Method.Kind != MethodDictionary {
			t.Errorf("Parse(кота) method = %v, want Dictionary", p.Method)
		}
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	a := buildAnalyzer(t)
	lower, err := a.Parse("кота")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	upper, err := a.Parse("КОТА")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lower) != len(upper) {
		t.Fatalf("Parse(кота) and Parse(КОТА) disagree: %d vs %d results", len(lower), len(upper))
	}
}

func TestParse_UnknownWord(t *testing.T) {
	a := buildAnalyzer(t)
	ps, err := a.Parse("ъъъqqq")
	if err != nil {
		t.Fatalf("Parse should not error on an unrecognized word, got %v", err)
	}
	if len(ps) != 0 {
		t.Errorf("Parse(ъъъqqq) = %v, want no candidates", ps)
	}
}

func TestNormalize_LinkedParticipleReachesInfinitive(t *testing.T) {
	a := buildAnalyzer(t)
	ps, err := a.Normalize("пишущего")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	found := false
	for _, p := range ps {
		if p.NormalForm == "писать" {
			found = true
		}
	}
	if !found {
		t.Errorf("Normalize(пишущего) = %v, want писать among the normal forms", ps)
	}
}

func TestNormalize_YoSpellingPreserved(t *testing.T) {
	a := buildAnalyzer(t)
	ps, err := a.Normalize("ежа")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(ps) == 0 {
		t.Fatalf("expected at least one normalization of ежа")
	}
	if ps[0].NormalForm != "ёж" {
		t.Errorf("Normalize(ежа) normal form = %q, want ёж (the е-fold alias must still report the ё spelling)", ps[0].NormalForm)
	}
}

func TestInflectInizio_FollowsSameSourceLemma(t *testing.T) {
	a := buildAnalyzer(t)
	ws, err := a.InflectInizio("пишущего")
	if err != nil {
		t.Fatalf("InflectInizio: %v", err)
	}
	found := false
	for _, w := range ws {
		if w.Word == "пишущий" {
			found = true
		}
	}
	if !found {
		t.Errorf("InflectInizio(пишущего) = %v, want пишущий (its own lemma's initial form, not писать)", ws)
	}
}

func TestDeclension_CoversWholeParadigm(t *testing.T) {
	a := buildAnalyzer(t)
	ws, err := a.Declension("кота")
	if err != nil {
		t.Fatalf("Declension: %v", err)
	}
	want := map[string]bool{"кот": false, "кота": false, "коту": false, "коты": false, "котов": false}
	for _, w := range ws {
		if _, ok := want[w.Word]; ok {
			want[w.Word] = true
		}
	}
	for w, seen := range want {
		if !seen {
			t.Errorf("Declension(кота) missing expected form %q, got %v", w, ws)
		}
	}
}

func TestPredict_KnownPrefix(t *testing.T) {
	a := buildAnalyzer(t)
	ps, err := a.Parse("переписать")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ps) == 0 {
		t.Fatalf("expected переписать to predict via the known-prefix пере+писать split")
	}
	for _, p := range ps {
		if p.Method.Kind != MethodKnownPrefix {
			t.Errorf("Parse(переписать) method = %v, want KnownPrefix", p.Method)
		}
		if p.Score <= 0 {
			t.Errorf("predicted candidate score = %v, want > 0", p.Score)
		}
	}
}

func TestNormalize_PredictedWordIsNotFutureRelease(t *testing.T) {
	a := buildAnalyzer(t)
	if _, err := a.Normalize("переписать"); err != nil {
		t.Errorf("Normalize of a known-prefix prediction should succeed, got %v", err)
	}
}
