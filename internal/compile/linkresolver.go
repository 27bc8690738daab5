// Package compile turns a parsed OpenCorpora dictionary into a dictionary.Artifact:
// resolving the lemma link graph into LemmaRows, interning tags/lemmas/parses,
// building the FST, and extracting postfix paradigms for OOV prediction.
package compile

import (
	"sort"

	"github.com/kribrum-os/gomorph/morpherr"
	"github.com/kribrum-os/gomorph/opencorpora"
)

// excludedLinkTypes are OpenCorpora link types that do not describe a
// grammatical relationship worth clustering lemmas over (orthographic
// variants, slang forms and the like produce too much lemma-row noise).
var excludedLinkTypes = map[uint64]bool{
	7: true, 8: true, 9: true, 11: true,
	16: true, 18: true, 21: true, 23: true, 27: true,
}

// doubleHopLinkTypes need an extra indirection: the link itself only
// connects an intermediate lemma to its target, and the lemma that should
// actually be clustered with the target is whatever lemma the intermediate
// one was itself linked *from*.
var doubleHopLinkTypes = map[uint64]bool{6: true, 22: true}

// LinkResolver clusters OpenCorpora lemma IDs into LemmaRows by walking the
// dictionary's link graph, applying the excluded/double-hop rules above.
type LinkResolver struct {
	parent map[uint64]uint64
}

// NewLinkResolver builds a resolver from every lemma ID present in the
// dictionary (so singleton lemmas with no links still get their own row)
// and the raw <links> edges. A link whose `from`/`to` side names a lemma ID
// absent from lemmaIDs reports LinkLostError rather than silently fabricating
// a singleton row for the missing side.
func NewLinkResolver(lemmaIDs []uint64, links []opencorpora.Link) (*LinkResolver, error) {
	r := &LinkResolver{parent: make(map[uint64]uint64, len(lemmaIDs))}
	for _, id := range lemmaIDs {
		r.parent[id] = id
	}

	known := func(typeID, id uint64) error {
		if _, ok := r.parent[id]; !ok {
			return &morpherr.LinkLostError{LinkType: typeID, LemmaID: id}
		}
		return nil
	}

	for _, l := range links {
		if excludedLinkTypes[l.TypeID] {
			continue
		}
		if doubleHopLinkTypes[l.TypeID] {
			if err := known(l.TypeID, l.From); err != nil {
				return nil, err
			}
			if err := known(l.TypeID, l.To); err != nil {
				return nil, err
			}
			outer := findOuterLink(links, l.From)
			if outer == nil {
				// No link feeds into l.From: fall back to attaching l.To as
				// a variant of l.From directly.
				r.union(l.From, l.To)
				continue
			}
			if err := known(l.TypeID, outer.From); err != nil {
				return nil, err
			}
			// Attach both l.From and l.To as variants of the outer lemma.
			r.union(outer.From, l.From)
			r.union(outer.From, l.To)
			continue
		}
		if err := known(l.TypeID, l.From); err != nil {
			return nil, err
		}
		if err := known(l.TypeID, l.To); err != nil {
			return nil, err
		}
		r.union(l.From, l.To)
	}

	return r, nil
}

// findOuterLink finds a link whose `to` equals the given lemma ID -- the
// link that feeds into a double-hop link's `from` side.
func findOuterLink(links []opencorpora.Link, to uint64) *opencorpora.Link {
	for i := range links {
		if links[i].To == to {
			return &links[i]
		}
	}
	return nil
}

// find assumes id is already a key of r.parent -- true for every id reaching
// this call, since NewLinkResolver rejects any link naming an id outside
// lemmaIDs before union ever runs.
func (r *LinkResolver) find(id uint64) uint64 {
	root := r.parent[id]
	if root == id {
		return id
	}
	root = r.find(root)
	r.parent[id] = root
	return root
}

func (r *LinkResolver) union(a, b uint64) {
	ra, rb := r.find(a), r.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		r.parent[rb] = ra
	} else {
		r.parent[ra] = rb
	}
}

// Rows returns every cluster of linked lemma IDs as a sorted LemmaRow, plus
// a lookup from lemma ID to the index of its row in the returned slice.
func (r *LinkResolver) Rows() (rows [][]uint64, rowOf map[uint64]int) {
	groups := make(map[uint64][]uint64)
	for id := range r.parent {
		root := r.find(id)
		groups[root] = append(groups[root], id)
	}

	roots := make([]uint64, 0, len(groups))
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	rows = make([][]uint64, 0, len(roots))
	rowOf = make(map[uint64]int, len(r.parent))
	for i, root := range roots {
		members := groups[root]
		sort.Slice(members, func(a, b int) bool { return members[a] < members[b] })
		rows = append(rows, members)
		for _, id := range members {
			rowOf[id] = i
		}
	}
	return rows, rowOf
}
