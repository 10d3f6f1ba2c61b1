package catalog

import "fmt"

// Ranks maps an external id to its zero-based position in an externally
// supplied order list. Department ranks come from one global list, aisle
// ranks from their department's list, product ranks from their aisle's list.
type Ranks map[int]int

// RanksFromOrder builds the rank table for one order list. A duplicated id
// keeps its first position.
func RanksFromOrder(order []int) Ranks {
	r := make(Ranks, len(order))
	for pos, id := range order {
		if _, seen := r[id]; seen {
			continue
		}
		r[id] = pos
	}
	return r
}

// Rank returns the position assigned to id. An id absent from the order
// list is a hard error rather than a silent default, so sibling ordering is
// never left ambiguous.
func (r Ranks) Rank(id int) (int, error) {
	pos, ok := r[id]
	if !ok {
		return 0, fmt.Errorf("%w: id %d not present in order list", ErrValidation, id)
	}
	return pos, nil
}
