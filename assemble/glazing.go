package assemble

import "github.com/cielu/bonbon/ledger"

// ApplyCreatorVerification implements §4.5.3: clone the tip Glazing, flip
// the verified flag on the first creator matching address, and append,
// tagged with at. If the Bonbon has no Glazing yet, it gains one whose
// only creator is the given address.
func (b *Bonbon) ApplyCreatorVerification(creator ledger.Key, verified bool, at Coordinates) {
	if len(b.Glazing) == 0 {
		b.Glazing = append(b.Glazing, Glazing{
			Creators: []Creator{{Address: creator, Verified: verified, Share: 0}},
			At:       at,
		})
		return
	}
	clone := cloneGlazing(b.Glazing[len(b.Glazing)-1])
	for i := range clone.Creators {
		if clone.Creators[i].Address == creator {
			clone.Creators[i].Verified = verified
			break
		}
	}
	clone.At = at
	b.Glazing = append(b.Glazing, clone)
}

// ApplyCollectionVerification implements §4.5.3: clone the tip Glazing (or
// a zero Glazing if there isn't one yet), replace its collection, and
// append, tagged with at. Every call produces a new tip, even when nothing
// else changed.
func (b *Bonbon) ApplyCollectionVerification(collection ledger.Key, verified bool, at Coordinates) {
	var base Glazing
	if len(b.Glazing) > 0 {
		base = cloneGlazing(b.Glazing[len(b.Glazing)-1])
	}
	base.Collection = &Collection{Address: collection, Verified: verified}
	base.At = at
	b.Glazing = append(b.Glazing, base)
}

func cloneGlazing(g Glazing) Glazing {
	clone := Glazing{
		Uri:      append([]byte(nil), g.Uri...),
		Creators: append([]Creator(nil), g.Creators...),
	}
	if g.Collection != nil {
		c := *g.Collection
		clone.Collection = &c
	}
	return clone
}
