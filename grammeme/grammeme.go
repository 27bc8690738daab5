// Package grammeme defines the grammatical-category vocabulary used by the
// analyzer: parts of speech, case, gender, number and the rest of the
// OpenCorpora attribute set, plus the Tag and Form types built on top of it.
package grammeme

import "fmt"

// Category groups a Grammeme the way OpenCorpora's own attribute table does:
// every surface token belongs to exactly one category, and a Tag carries at
// most one Grammeme per category (Other is the exception, see Tag).
type Category uint8

const (
	CategoryPartOfSpeech Category = iota
	CategoryAnimacy
	CategoryAspect
	CategoryCase
	CategoryGender
	CategoryInvolvement
	CategoryMood
	CategoryNumber
	CategoryTransitivity
	CategoryTense
	CategoryVoice
	CategoryPerson
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryPartOfSpeech:
		return "PartOfSpeech"
	case CategoryAnimacy:
		return "Animacy"
	case CategoryAspect:
		return "Aspect"
	case CategoryCase:
		return "Case"
	case CategoryGender:
		return "Gender"
	case CategoryInvolvement:
		return "Involvement"
	case CategoryMood:
		return "Mood"
	case CategoryNumber:
		return "Number"
	case CategoryTransitivity:
		return "Transitivity"
	case CategoryTense:
		return "Tense"
	case CategoryVoice:
		return "Voice"
	case CategoryPerson:
		return "Person"
	case CategoryOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Grammeme is one OpenCorpora grammatical tag. Code is the canonical XML
// token (e.g. "NOUN", "nomn", "Arch") after alias resolution, so two
// Grammemes are equal iff they denote the same grammatical fact.
//
// Grammeme is a plain comparable struct rather than a Rust-style tagged
// union: Go has no sum types, and a (Category, Code) pair sorts, hashes and
// compares exactly the way the set-membership rules in Tag need.
type Grammeme struct {
	Category Category
	Code     string
}

func (g Grammeme) String() string {
	return g.Code
}

// Less orders Grammemes first by Category, then by Code, giving Tag a
// total order independent of the order grammemes were collected in.
func (g Grammeme) Less(other Grammeme) bool {
	if g.Category != other.Category {
		return g.Category < other.Category
	}
	return g.Code < other.Code
}

// entry pairs a surface XML token (and its Pymorphy2-era aliases) with the
// Grammeme it denotes.
type entry struct {
	codes []string
	g     Grammeme
}

func mk(cat Category, canonical string, aliases ...string) entry {
	return entry{codes: append([]string{canonical}, aliases...), g: Grammeme{Category: cat, Code: canonical}}
}

var table = []entry{
	// Part of speech.
	mk(CategoryPartOfSpeech, "NOUN"),
	mk(CategoryPartOfSpeech, "ADJF"),
	mk(CategoryPartOfSpeech, "ADJS"),
	mk(CategoryPartOfSpeech, "COMP"),
	mk(CategoryPartOfSpeech, "VERB"),
	mk(CategoryPartOfSpeech, "INFN"),
	mk(CategoryPartOfSpeech, "PRTF"),
	mk(CategoryPartOfSpeech, "PRTS"),
	mk(CategoryPartOfSpeech, "GRND"),
	mk(CategoryPartOfSpeech, "NUMR"),
	mk(CategoryPartOfSpeech, "ADVB"),
	mk(CategoryPartOfSpeech, "NPRO"),
	mk(CategoryPartOfSpeech, "PRED"),
	mk(CategoryPartOfSpeech, "PREP"),
	mk(CategoryPartOfSpeech, "CONJ"),
	mk(CategoryPartOfSpeech, "PRCL"),
	mk(CategoryPartOfSpeech, "INTJ"),

	// Animacy.
	mk(CategoryAnimacy, "anim"),
	mk(CategoryAnimacy, "inan"),
	mk(CategoryAnimacy, "Inmx"),

	// Aspect.
	mk(CategoryAspect, "perf"),
	mk(CategoryAspect, "impf"),

	// Case. gen1/acc1/loc1 are the Pymorphy2-era aliases folded into the
	// canonical OpenCorpora token.
	mk(CategoryCase, "Fixd"),
	mk(CategoryCase, "nomn"),
	mk(CategoryCase, "gent", "gen1"),
	mk(CategoryCase, "datv"),
	mk(CategoryCase, "accs", "acc1"),
	mk(CategoryCase, "ablt"),
	mk(CategoryCase, "loct", "loc1"),
	mk(CategoryCase, "voct"),
	mk(CategoryCase, "gen2"),
	mk(CategoryCase, "acc2"),
	mk(CategoryCase, "loc2"),

	// Gender.
	mk(CategoryGender, "masc"),
	mk(CategoryGender, "femn"),
	mk(CategoryGender, "neut"),
	mk(CategoryGender, "ms-f"),
	mk(CategoryGender, "Ms-f"),
	mk(CategoryGender, "GNdr"),

	// Involvement.
	mk(CategoryInvolvement, "incl"),
	mk(CategoryInvolvement, "excl"),

	// Mood.
	mk(CategoryMood, "indc"),
	mk(CategoryMood, "impr"),

	// Number.
	mk(CategoryNumber, "sing"),
	mk(CategoryNumber, "plur"),
	mk(CategoryNumber, "Sgtm"),
	mk(CategoryNumber, "Pltm"),

	// Transitivity.
	mk(CategoryTransitivity, "tran"),
	mk(CategoryTransitivity, "intr"),

	// Tense.
	mk(CategoryTense, "past"),
	mk(CategoryTense, "pres"),
	mk(CategoryTense, "futr"),

	// Voice.
	mk(CategoryVoice, "actv"),
	mk(CategoryVoice, "pssv"),

	// Person.
	mk(CategoryPerson, "1per"),
	mk(CategoryPerson, "2per"),
	mk(CategoryPerson, "3per"),
	mk(CategoryPerson, "Impe"),
	mk(CategoryPerson, "Impx"),

	// Other: the OpenCorpora catch-all attribute set. Anything not listed
	// here still resolves to CategoryOther via ParseToken's fallback, the
	// same way Other's #[serde(other)] variant worked upstream.
	mk(CategoryOther, "Abbr"),
	mk(CategoryOther, "Name"),
	mk(CategoryOther, "Surn"),
	mk(CategoryOther, "Patr"),
	mk(CategoryOther, "Geox"),
	mk(CategoryOther, "Orgn"),
	mk(CategoryOther, "Trad"),
	mk(CategoryOther, "Subx"),
	mk(CategoryOther, "Supr"),
	mk(CategoryOther, "Qual"),
	mk(CategoryOther, "Apro"),
	mk(CategoryOther, "Anum"),
	mk(CategoryOther, "Poss"),
	mk(CategoryOther, "Ques"),
	mk(CategoryOther, "Dmns"),
	mk(CategoryOther, "Anph"),
	mk(CategoryOther, "Cmp2"),
	mk(CategoryOther, "V-ey"),
	mk(CategoryOther, "V-oy"),
	mk(CategoryOther, "V-ej"),
	mk(CategoryOther, "V-be"),
	mk(CategoryOther, "V-en"),
	mk(CategoryOther, "V-ie"),
	mk(CategoryOther, "V-bi"),
	mk(CategoryOther, "V-sh"),
	mk(CategoryOther, "Mult"),
	mk(CategoryOther, "Refl"),
	mk(CategoryOther, "Infr"),
	mk(CategoryOther, "Slng"),
	mk(CategoryOther, "Arch"),
	mk(CategoryOther, "Litr"),
	mk(CategoryOther, "Erro"),
	mk(CategoryOther, "Dist"),
	mk(CategoryOther, "Prnt"),
	mk(CategoryOther, "Fimp"),
	mk(CategoryOther, "Prdx"),
	mk(CategoryOther, "Coun"),
	mk(CategoryOther, "Coll"),
	mk(CategoryOther, "Af-p"),
	mk(CategoryOther, "Vpre"),
	mk(CategoryOther, "Init"),
	mk(CategoryOther, "Adjx"),
	mk(CategoryOther, "Hypo"),
}

var byToken map[string]Grammeme

func init() {
	byToken = make(map[string]Grammeme, len(table)*2)
	for _, e := range table {
		for _, code := range e.codes {
			byToken[code] = e.g
		}
	}
}

// ParseToken resolves a single raw OpenCorpora/Pymorphy2 XML token (e.g.
// "NOUN", "gen1", "Geox") into its Grammeme, aliases included. Tokens not
// present in the fixed category tables fall back to CategoryOther, mirroring
// the upstream catch-all so a dictionary revision that adds new attributes
// never fails to load.
func ParseToken(token string) Grammeme {
	if g, ok := byToken[token]; ok {
		return g
	}
	return Grammeme{Category: CategoryOther, Code: token}
}

// Default applies the few grammemes that have a natural default when
// collapsing inflected forms to a normal form (a normal-form noun is always
// reported in the singular, regardless of which plural form it was parsed
// from).
func (g Grammeme) Default() Grammeme {
	switch g.Category {
	case CategoryNumber:
		if g.Code == "plur" {
			return Grammeme{Category: CategoryNumber, Code: "sing"}
		}
	case CategoryCase:
		return Grammeme{Category: CategoryCase, Code: "nomn"}
	}
	return g
}

// PartOfSpeech returns the part-of-speech code (e.g. "VERB") from a grammeme
// slice, or "" if none is present.
func PartOfSpeech(gs []Grammeme) string {
	for _, g := range gs {
		if g.Category == CategoryPartOfSpeech {
			return g.Code
		}
	}
	return ""
}

// unproductive lists the grammemes treated as never worth predicting a
// paradigm for: closed word classes and pronominal forms that dictionary
// coverage is already exhaustive for.
var unproductive = []Grammeme{
	{Category: CategoryPartOfSpeech, Code: "NUMR"},
	{Category: CategoryPartOfSpeech, Code: "NPRO"},
	{Category: CategoryPartOfSpeech, Code: "PRED"},
	{Category: CategoryPartOfSpeech, Code: "PREP"},
	{Category: CategoryPartOfSpeech, Code: "CONJ"},
	{Category: CategoryPartOfSpeech, Code: "PRCL"},
	{Category: CategoryPartOfSpeech, Code: "INTJ"},
	{Category: CategoryOther, Code: "Apro"},
}

// IsUnproductive reports whether any grammeme in the tag belongs to a closed,
// non-paradigm-generating class.
func IsUnproductive(gs []Grammeme) bool {
	for _, g := range gs {
		for _, u := range unproductive {
			if g == u {
				return true
			}
		}
	}
	return false
}

func (g Grammeme) GoString() string {
	return fmt.Sprintf("grammeme.Grammeme{%s:%s}", g.Category, g.Code)
}
