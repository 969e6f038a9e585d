// Package selection holds the wrap-around cursor arithmetic shared by the
// note, tag and task lists.
package selection

// None marks an empty selection.
const None = -1

func Valid(sel, n int) bool {
	return sel >= 0 && sel < n
}

// Next moves one element forward, wrapping to the first. An empty selection
// counts as index 0.
func Next(sel, n int) int {
	if n == 0 {
		return sel
	}
	return (orZero(sel) + 1) % n
}

func Previous(sel, n int) int {
	if n == 0 {
		return sel
	}
	return (orZero(sel) + n - 1) % n
}

// AfterRemove returns the selection after the element at removed was taken
// out of a list that now holds n elements.
func AfterRemove(removed, n int) int {
	switch {
	case n == 0:
		return None
	case removed >= n:
		return n - 1
	default:
		return removed
	}
}

// Clamp keeps sel inside [0, n). Empty lists and empty selections yield None.
func Clamp(sel, n int) int {
	if n == 0 || sel < 0 {
		return None
	}
	if sel >= n {
		return n - 1
	}
	return sel
}

// NextIn steps forward through visible, a subset of indexes of the full
// list, and returns the chosen full-list index. A selection outside visible
// counts as the first visible element.
func NextIn(sel int, visible []int) int {
	if len(visible) == 0 {
		return sel
	}
	return visible[Next(indexOf(visible, sel), len(visible))]
}

func PreviousIn(sel int, visible []int) int {
	if len(visible) == 0 {
		return sel
	}
	return visible[Previous(indexOf(visible, sel), len(visible))]
}

func indexOf(visible []int, sel int) int {
	for i, v := range visible {
		if v == sel {
			return i
		}
	}
	return None
}

func orZero(sel int) int {
	if sel < 0 {
		return 0
	}
	return sel
}
