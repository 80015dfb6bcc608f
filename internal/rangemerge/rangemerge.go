// Package rangemerge implements the one range-merging rule shared by the
// content processor (pad around each match) and the line extractor (pad
// zero, merging only specs that already overlap or touch): given a set of
// 0-based indices and a pad, produce the minimal set of disjoint,
// non-adjacent inclusive intervals covering them.
package rangemerge

import "sort"

// Range is an inclusive, 0-based [Start, End] interval.
type Range struct {
	Start int
	End   int
}

// FromMatches builds windows of [max(0,i-pad), min(n-1,i+pad)] around each
// sorted match index and merges any that touch or overlap.
func FromMatches(matches []int, pad, n int) []Range {
	if len(matches) == 0 {
		return nil
	}
	windows := make([]Range, len(matches))
	for i, m := range matches {
		start := m - pad
		if start < 0 {
			start = 0
		}
		end := m + pad
		if end > n-1 {
			end = n - 1
		}
		windows[i] = Range{Start: start, End: end}
	}
	return Merge(windows)
}

// Merge sorts a copy of ranges by Start (the line extractor passes them in
// spec order) and collapses it into the minimal disjoint, non-adjacent set:
// a range merges into the previous one whenever its start is
// <= previous.End + 1.
func Merge(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := append([]Range(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := make([]Range, 0, len(sorted))
	cur := sorted[0]
	for _, r := range sorted[1:] {
		if r.Start <= cur.End+1 {
			if r.End > cur.End {
				cur.End = r.End
			}
			continue
		}
		out = append(out, cur)
		cur = r
	}
	out = append(out, cur)
	return out
}
