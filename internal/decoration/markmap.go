package decoration

import "sort"

// Interval is a run of characters [Start, End) sharing one mark value.
type Interval struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Value string `json:"value"`
}

// MarkMap maps rune offsets to mark values. Runs are sorted, disjoint, and
// adjacent runs never share a value. Mutations build a new run slice, so a
// copied MarkMap is never affected by later changes to the original.
type MarkMap struct {
	runs []Interval
}

// Set assigns value to every offset in [start, end).
func (m *MarkMap) Set(start, end int, value string) {
	start = max(start, 0)
	if start >= end {
		return
	}
	next := m.without(start, end)
	i := sort.Search(len(next), func(i int) bool { return next[i].Start >= end })
	next = append(next, Interval{})
	copy(next[i+1:], next[i:])
	next[i] = Interval{Start: start, End: end, Value: value}
	m.runs = coalesce(next)
}

// Clear removes the marks on [start, end).
func (m *MarkMap) Clear(start, end int) {
	start = max(start, 0)
	if start >= end {
		return
	}
	m.runs = m.without(start, end)
}

// At returns the value at offset.
func (m MarkMap) At(offset int) (string, bool) {
	i := sort.Search(len(m.runs), func(i int) bool { return m.runs[i].End > offset })
	if i < len(m.runs) && m.runs[i].Start <= offset {
		return m.runs[i].Value, true
	}
	return "", false
}

// Runs returns a copy of the coalesced runs.
func (m MarkMap) Runs() []Interval {
	return append([]Interval(nil), m.runs...)
}

// Len returns the number of marked offsets.
func (m MarkMap) Len() int {
	n := 0
	for _, run := range m.runs {
		n += run.End - run.Start
	}
	return n
}

// overlapping returns the runs that intersect [start, end).
func (m MarkMap) overlapping(start, end int) []Interval {
	lo := sort.Search(len(m.runs), func(i int) bool { return m.runs[i].End > start })
	hi := lo
	for hi < len(m.runs) && m.runs[hi].Start < end {
		hi++
	}
	return m.runs[lo:hi]
}

// without returns a fresh run slice with [start, end) cut out.
func (m MarkMap) without(start, end int) []Interval {
	out := make([]Interval, 0, len(m.runs)+1)
	for _, run := range m.runs {
		if run.End <= start || run.Start >= end {
			out = append(out, run)
			continue
		}
		if run.Start < start {
			out = append(out, Interval{Start: run.Start, End: start, Value: run.Value})
		}
		if run.End > end {
			out = append(out, Interval{Start: end, End: run.End, Value: run.Value})
		}
	}
	return out
}

func coalesce(runs []Interval) []Interval {
	out := runs[:0]
	for _, run := range runs {
		if n := len(out); n > 0 && out[n-1].End == run.Start && out[n-1].Value == run.Value {
			out[n-1].End = run.End
			continue
		}
		out = append(out, run)
	}
	return out
}
