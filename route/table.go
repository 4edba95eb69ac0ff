package route

import "sort"

// Table maps (method, path) to the entry answering it. It is filled once
// by NewTable or a Loader and only read afterwards, so concurrent lookups
// need no locking.
type Table struct {
	entries map[Key]*Entry
}

// NewTable builds a table from entries in order. A later entry with the same
// key replaces the earlier one.
func NewTable(entries ...Entry) *Table {
	t := &Table{entries: make(map[Key]*Entry, len(entries))}
	for _, e := range entries {
		t.add(e)
	}

	return t
}

// add registers e and returns the entry it replaced, if any.
func (t *Table) add(e Entry) *Entry {
	prev := t.entries[e.Key]
	t.entries[e.Key] = &e

	return prev
}

// Resolve looks up the entry for an exact method and path.
func (t *Table) Resolve(method, path string) (*Entry, bool) {
	e, ok := t.entries[Key{Method: method, Path: path}]
	return e, ok
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of all entries sorted by path, then method.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, *e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})

	return out
}
