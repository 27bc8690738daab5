package grammeme

// FormOrigin distinguishes where a word form sits relative to its lemma's
// dictionary entry (Word*) or a predicted paradigm (Vanga*). The Inizio
// variants matter for forms whose dictionary-listed "initial" spelling is
// not itself the normal form: a gerundive's own first-listed form links
// back to the verb infinitive as its normal form, for instance.
type FormOrigin uint8

const (
	// FormWordNormal marks a form that is itself the lemma's normal form.
	FormWordNormal FormOrigin = iota
	// FormWordInizio marks the lemma's first-listed dictionary form when
	// that form is not the normal form (e.g. a participle's own lemma
	// entry, whose normal form is the parent verb).
	FormWordInizio
	// FormWordDifferent marks any other inflected dictionary form.
	FormWordDifferent
	// FormVangaNormal/Inizio/Different mirror the Word* values for forms
	// produced by OOV paradigm prediction instead of dictionary lookup.
	FormVangaNormal
	FormVangaInizio
	FormVangaDifferent
)

// IsDictionary reports whether the form came from a dictionary lemma as
// opposed to a predicted (vanga) paradigm.
func (f FormOrigin) IsDictionary() bool {
	return f == FormWordNormal || f == FormWordInizio || f == FormWordDifferent
}

// IsNormal reports whether this is the form that doubles as the lemma's
// normal form.
func (f FormOrigin) IsNormal() bool {
	return f == FormWordNormal || f == FormVangaNormal
}

// IsInizio reports whether this is a lemma's first-listed form that is not
// itself the normal form.
func (f FormOrigin) IsInizio() bool {
	return f == FormWordInizio || f == FormVangaInizio
}

// ToVanga downgrades a Word* origin to its Vanga* counterpart, used when a
// dictionary-derived paradigm sample is reused as the basis of an OOV
// prediction rather than cited as a literal dictionary hit.
func (f FormOrigin) ToVanga() FormOrigin {
	switch f {
	case FormWordNormal:
		return FormVangaNormal
	case FormWordInizio:
		return FormVangaInizio
	case FormWordDifferent:
		return FormVangaDifferent
	default:
		return f
	}
}

func (f FormOrigin) String() string {
	switch f {
	case FormWordNormal:
		return "Word(Normal)"
	case FormWordInizio:
		return "Word(Inizio)"
	case FormWordDifferent:
		return "Word(Different)"
	case FormVangaNormal:
		return "Vanga(Normal)"
	case FormVangaInizio:
		return "Vanga(Inizio)"
	case FormVangaDifferent:
		return "Vanga(Different)"
	default:
		return "Unknown"
	}
}
