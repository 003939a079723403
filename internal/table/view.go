package table

import "fmt"

// Header is a column heading.
type Header struct {
	Key   string
	Label string
}

// Row is one rendered row along with the record it came from.
type Row[T any] struct {
	Record T
	Cells  []any
}

// View is an immutable rendering of a table for templates and the CLI.
type View[T any] struct {
	Name       string
	Headers    []Header
	Rows       []Row[T]
	Empty      bool
	Loading    bool
	PageIndex  int
	PageSize   int
	TotalPages int
	Total      int
	Search     string
	CanPrev    bool
	CanNext    bool
	PageSizes  []int
	Error      string
}

// PageLabel returns "Page X of Y".
func (v View[T]) PageLabel() string {
	return fmt.Sprintf("Page %d of %d", v.PageIndex+1, v.TotalPages)
}

// ColSpan is the number of columns an empty-state row must span.
func (v View[T]) ColSpan() int {
	return len(v.Headers)
}

// Snapshot renders the current state.
func (t *Table[T]) Snapshot() View[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.state
	pages := s.TotalPages()
	// A failed fetch leaves Total at 0 while the index stays put.
	index := min(s.PageIndex, pages-1)
	v := View[T]{
		Name:       t.name,
		Headers:    make([]Header, len(t.columns)),
		Rows:       make([]Row[T], 0, len(s.Rows)),
		Empty:      len(s.Rows) == 0,
		Loading:    t.inflight > 0,
		PageIndex:  index,
		PageSize:   s.PageSize,
		TotalPages: pages,
		Total:      s.Total,
		Search:     s.Search,
		CanPrev:    s.PageIndex > 0,
		CanNext:    index < pages-1,
		PageSizes:  append([]int(nil), PageSizes...),
		Error:      t.lastErr,
	}
	for i, c := range t.columns {
		v.Headers[i] = Header{Key: c.Key, Label: c.Label}
	}
	for i, rec := range s.Rows {
		cells := make([]any, len(t.columns))
		for j, c := range t.columns {
			cells[j] = c.cell(rec, i, s.PageIndex, s.PageSize)
		}
		v.Rows = append(v.Rows, Row[T]{Record: rec, Cells: cells})
	}
	return v
}
