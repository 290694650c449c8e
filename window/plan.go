package window

// The functions in this file are the window arithmetic with no I/O. The
// Reader applies their results to real views.

// span is a window's placement in the file.
type span struct {
	base int64
	cap  int64
}

func (s span) end() int64 { return s.base + s.cap }

// pair is the dual-window layout. primary sits on block lowest and
// secondary starts where primary ends.
type pair struct {
	lowest    int64
	primary   span
	secondary span
}

// geometry is the window arithmetic for one capacity and file length.
type geometry struct {
	capacity int64
	size     int64
}

// block returns the window aligned on block index, clamped to the file end.
func (g geometry) block(index int64) span {
	base := index * g.capacity
	c := g.capacity
	if base+c > g.size {
		c = g.size - base
	}
	if c < 0 {
		c = 0
	}
	return span{base: base, cap: c}
}

// initial plans the first windows for a file. Files that fit in one
// window get a single span covering all of it.
func (g geometry) initial() (single span, dual pair, isDual bool) {
	if g.size <= g.capacity {
		return span{base: 0, cap: g.size}, pair{}, false
	}
	return span{}, pair{lowest: 0, primary: g.block(0), secondary: g.block(1)}, true
}

type action int

const (
	actionCopy action = iota
	actionForward
	actionBackward
)

func (a action) String() string {
	switch a {
	case actionForward:
		return "forward"
	case actionBackward:
		return "backward"
	default:
		return "copy"
	}
}

// classify decides what the dual layout p must do to serve [start, start+n).
// Forward wins over backward, matching the order the checks are made in.
func (g geometry) classify(p pair, start, n int64) action {
	if start+n > (p.lowest+1)*g.capacity+p.secondary.cap {
		return actionForward
	}
	if start < p.lowest*g.capacity {
		return actionBackward
	}
	return actionCopy
}

// forward plans the layout after a forward slide. The new secondary is the
// block holding the last requested byte, so a range straddling a block
// boundary is covered in one slide. When the range does not straddle, this
// is the block holding start.
func (g geometry) forward(start, n int64) pair {
	idx := (start + n - 1) / g.capacity
	if idx < 1 {
		idx = 1
	}
	return pair{lowest: idx - 1, primary: g.block(idx - 1), secondary: g.block(idx)}
}

// backward plans the layout after a backward slide: primary on the block
// holding start, secondary right after it.
func (g geometry) backward(start int64) pair {
	idx := start / g.capacity
	return pair{lowest: idx, primary: g.block(idx), secondary: g.block(idx + 1)}
}

// reuse maps each target slot (0 primary, 1 secondary) to the index of a
// current window with the identical span, or -1 when a new view is needed.
// dispose lists current windows that survive into neither slot, secondary
// first.
func reuse(current, target [2]span, live [2]bool) (keep [2]int, dispose []int) {
	keep = [2]int{-1, -1}
	var used [2]bool
	for i, want := range target {
		for j, have := range current {
			if live[j] && !used[j] && have == want {
				keep[i] = j
				used[j] = true
				break
			}
		}
	}
	for j := len(current) - 1; j >= 0; j-- {
		if live[j] && !used[j] {
			dispose = append(dispose, j)
		}
	}
	return keep, dispose
}

// copyPlan says how a covered range is split across the two windows.
type copyPlan struct {
	primaryOff   int64
	primaryLen   int64
	secondaryOff int64
	secondaryLen int64
}

// split computes the copy for [start, start+n) already covered by p.
func (g geometry) split(p pair, start, n int64) copyPlan {
	primaryBase := p.lowest * g.capacity
	if start+n < primaryBase+p.primary.cap {
		return copyPlan{primaryOff: start - primaryBase, primaryLen: n}
	}
	breakPoint := primaryBase + p.primary.cap - start
	if breakPoint <= 0 {
		return copyPlan{secondaryOff: start - (p.lowest+1)*g.capacity, secondaryLen: n}
	}
	return copyPlan{
		primaryOff:   start - primaryBase,
		primaryLen:   breakPoint,
		secondaryOff: 0,
		secondaryLen: n - breakPoint,
	}
}

// clampLength trims n so [start, start+n) does not pass size.
func clampLength(start, n, size int64) int64 {
	if start >= size {
		return 0
	}
	if start+n > size {
		return size - start
	}
	return n
}
