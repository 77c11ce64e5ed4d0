package compiler

import (
	"strconv"

	"github.com/viant/stepflow/model/graph"
)

// allocator hands out <type>-<n> names for inline states, counting per type from 1.
// Names equal to a declared task name are skipped.
type allocator struct {
	counts   map[graph.StateType]int
	reserved func(name string) bool
}

func (a *allocator) allocate(stateType graph.StateType) string {
	for {
		a.counts[stateType]++
		name := string(stateType) + "-" + strconv.Itoa(a.counts[stateType])
		if a.reserved == nil || !a.reserved(name) {
			return name
		}
	}
}

func newAllocator(reserved func(name string) bool) *allocator {
	return &allocator{counts: map[graph.StateType]int{}, reserved: reserved}
}
