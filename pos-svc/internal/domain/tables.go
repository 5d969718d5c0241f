package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const DefaultTableCapacity = 4

// TablePlan is the set of writes that brings a restaurant's tables to a desired count.
type TablePlan struct {
	Create     []Table
	Delete     []uuid.UUID
	Capacities map[uuid.UUID]int
}

// PlanTableResize diffs existing tables (oldest first) against the desired total.
// Missing tables are appended as "Table {index+1}" with the default capacity, surplus
// tables are taken from the newest end. Positional capacities then apply to the final
// list, followed by the per-id overrides for tables that survive.
func PlanTableResize(existing []Table, total int, capacities []int, byID map[uuid.UUID]int, newToken func() string) (TablePlan, error) {
	if total < 0 {
		return TablePlan{}, errors.New("total must not be negative")
	}
	for i, c := range capacities {
		if c < 1 {
			return TablePlan{}, fmt.Errorf("capacity at position %d must be positive", i)
		}
	}
	for id, c := range byID {
		if c < 1 {
			return TablePlan{}, fmt.Errorf("capacity for table %s must be positive", id)
		}
	}

	plan := TablePlan{Capacities: map[uuid.UUID]int{}}

	kept := existing
	if total < len(existing) {
		kept = existing[:total]
		for _, t := range existing[total:] {
			plan.Delete = append(plan.Delete, t.ID)
		}
	}

	for i := len(existing); i < total; i++ {
		capacity := DefaultTableCapacity
		if i < len(capacities) {
			capacity = capacities[i]
		}
		plan.Create = append(plan.Create, Table{
			Name:     fmt.Sprintf("Table %d", i+1),
			Capacity: capacity,
			Token:    newToken(),
		})
	}

	for i, t := range kept {
		capacity := t.Capacity
		if i < len(capacities) {
			capacity = capacities[i]
		}
		if c, ok := byID[t.ID]; ok {
			capacity = c
		}
		if capacity != t.Capacity {
			plan.Capacities[t.ID] = capacity
		}
	}

	return plan, nil
}
