// Package opencorpora decodes the OpenCorpora dict.opcorpora.xml dump into
// plain Go structs. Deserialization itself is treated as an external
// collaborator's format (encoding/xml, same as the rest of the ecosystem
// reaches for on plain XML-to-struct decoding), so this package only owns
// the shape of the data, not a hand-rolled parser.
package opencorpora

import "encoding/xml"

// Dictionary is the root <dictionary> element: lemmas plus the link graph
// connecting related lemmas (ADJF-COMP, INFN-PRTF, PERF-IMPF, ...).
type Dictionary struct {
	XMLName  xml.Name  `xml:"dictionary"`
	Version  string    `xml:"version,attr"`
	Revision uint64    `xml:"revision,attr"`
	Lemmata  Lemmata   `xml:"lemmata"`
	LinkTypes LinkTypes `xml:"link_types"`
	Links    Links     `xml:"links"`
}

// Lemmata is the <lemmata> container.
type Lemmata struct {
	Lemmas []Lemma `xml:"lemma"`
}

// Lemma is one dictionary entry: a normal form plus every inflected form
// OpenCorpora lists for it.
type Lemma struct {
	ID         uint64     `xml:"id,attr"`
	NormalForm NormalForm `xml:"l"`
	Forms      []GramWord `xml:"f"`
}

// NormalForm is the <l> element: the lemma's canonical spelling and its own
// grammeme set.
type NormalForm struct {
	Text string `xml:"t,attr"`
	Gram []Gram `xml:"g"`
}

// GramWord is an <f> element: one inflected spelling and its grammemes.
type GramWord struct {
	Text string `xml:"t,attr"`
	Gram []Gram `xml:"g"`
}

// Gram is a single <g v="..."/> grammeme token.
type Gram struct {
	V string `xml:"v,attr"`
}

// LinkTypes is the <link_types> container naming the link-type catalogue
// (ADJF-ADJS, INFN-VERB, PERF-IMPF, ...); kept for documentation/debugging,
// the compiler works off the numeric type IDs in Links.
type LinkTypes struct {
	Types []LinkType `xml:"type"`
}

// LinkType is one named link type, text content is its connotation label
// (e.g. "ADJF-ADJS").
type LinkType struct {
	Text string `xml:",chardata"`
}

// Links is the <links> container: the edges of the lemma graph.
type Links struct {
	Links []Link `xml:"link"`
}

// Link connects two lemma IDs by link-type ID; see internal/compile for the
// excluded and double-hop type-ID handling.
type Link struct {
	TypeID uint64 `xml:"type,attr"`
	From   uint64 `xml:"from,attr"`
	To     uint64 `xml:"to,attr"`
}
