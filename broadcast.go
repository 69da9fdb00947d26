package gufunc

import (
	"fmt"
	"slices"

	"pgregory.net/rapid"
)

// Absent marks, in an ExtraDimsPlan slot, an argument that doesn't have that extra dimension.
// It is equivalent to the implicit size 1 padding on the left that NumPy applies when broadcasting.
const Absent = -1

// ExtraDimsPlan holds the extra leading (broadcast) dimensions of every argument of one example.
//
// Slots are ordered most significant first, and each slot holds one size (>= 1) per argument, or Absent.
// An argument with k extra dimensions occupies the last k slots. The present sizes of a slot are
// always broadcast compatible: all equal, except for those that are 1.
type ExtraDimsPlan struct {
	Slots [][]int
}

// NumSlots returns the number of extra dimensions of the argument with the most extra dimensions.
func (p ExtraDimsPlan) NumSlots() int {
	return len(p.Slots)
}

// ArgDims returns the extra dimensions of the given argument, most significant first.
// Absent slots are omitted.
func (p ExtraDimsPlan) ArgDims(arg int) []int {
	var dims []int
	for _, slot := range p.Slots {
		if slot[arg] != Absent {
			dims = append(dims, slot[arg])
		}
	}
	return dims
}

// BroadcastDims returns the dimensions resulting from broadcasting the extra dimensions of all
// arguments: for each slot the anchor size, or 1 if all present sizes are 1.
func (p ExtraDimsPlan) BroadcastDims() []int {
	dims := make([]int, len(p.Slots))
	for ii, slot := range p.Slots {
		dims[ii] = 1
		for _, size := range slot {
			if size != Absent && size != 1 {
				dims[ii] = size
				break
			}
		}
	}
	return dims
}

// String implements fmt.Stringer.
func (p ExtraDimsPlan) String() string {
	return fmt.Sprintf("ExtraDimsPlan%v", p.Slots)
}

// drawExtraDims draws the extra dimensions of every argument.
//
// The plan is built broadcast compatible by construction, so nothing is ever filtered out:
//
//  1. The number of slots and, per argument, how many of the trailing slots it occupies.
//  2. Per slot, a candidate size for each present argument.
//  3. The anchor of the slot is the first candidate that is not 1 (or 1 if there is none), and
//     every candidate that is not 1 is replaced by the anchor.
//
// Sizes are at least 1. All draws shrink towards fewer extra dimensions and smaller sizes.
func (s *Strategy) drawExtraDims(t *rapid.T) ExtraDimsPlan {
	if s.maxSlots == 0 {
		return ExtraDimsPlan{}
	}
	numSlots := rapid.IntRange(s.minSlots, s.maxSlots).Draw(t, "num_extra_dims")
	numArgs := len(s.argMaxExtra)
	counts := make([]int, numArgs)
	for arg := range numArgs {
		counts[arg] = rapid.IntRange(s.argMinExtra[arg], min(numSlots, s.argMaxExtra[arg])).
			Draw(t, fmt.Sprintf("num_extra_dims_arg%d", arg))
	}

	// Slots no argument occupies are dropped.
	numSlots = slices.Max(counts)
	plan := ExtraDimsPlan{Slots: make([][]int, numSlots)}
	for slotIdx := range numSlots {
		slot := make([]int, numArgs)
		anchor := 1
		for arg := range numArgs {
			if slotIdx < numSlots-counts[arg] {
				slot[arg] = Absent
				continue
			}
			candidate := rapid.IntRange(s.extraSides.Min, s.extraSides.Max).
				Draw(t, fmt.Sprintf("extra_dim%d_arg%d", slotIdx, arg))
			if candidate != 1 && anchor == 1 {
				anchor = candidate
			}
			slot[arg] = candidate
		}
		for arg, size := range slot {
			if size != Absent && size != 1 {
				slot[arg] = anchor
			}
		}
		plan.Slots[slotIdx] = slot
	}
	return plan
}
