package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type OptionSelection struct {
	PriceDelta int64
	Names      []string
}

// SelectOptions checks chosen option ids against an item's groups and sums their deltas.
func SelectOptions(groups []OptionGroup, optionIDs []uuid.UUID) (OptionSelection, error) {
	type ref struct {
		group  int
		option Option
	}
	index := map[uuid.UUID]ref{}
	for gi, g := range groups {
		for _, o := range g.Options {
			index[o.ID] = ref{group: gi, option: o}
		}
	}

	var sel OptionSelection
	counts := make([]int, len(groups))
	seen := map[uuid.UUID]bool{}
	for _, id := range optionIDs {
		if seen[id] {
			return OptionSelection{}, fmt.Errorf("option %s selected more than once", id)
		}
		seen[id] = true

		r, ok := index[id]
		if !ok {
			return OptionSelection{}, fmt.Errorf("option %s does not belong to this item", id)
		}
		counts[r.group]++
		sel.PriceDelta += r.option.PriceDelta
		sel.Names = append(sel.Names, r.option.Name)
	}

	for gi, g := range groups {
		n := counts[gi]
		minimum := g.MinSelect
		if g.IsRequired && minimum < 1 {
			minimum = 1
		}
		if n < minimum {
			return OptionSelection{}, fmt.Errorf("%s: select at least %d", g.Name, minimum)
		}
		if g.MaxSelect > 0 && n > g.MaxSelect {
			return OptionSelection{}, fmt.Errorf("%s: select at most %d", g.Name, g.MaxSelect)
		}
	}

	return sel, nil
}
