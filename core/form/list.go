package form

import (
	"github.com/pkg/errors"

	"github.com/trezcool/aimforms/core"
)

var ErrOutOfRange = errors.New("index out of range")

// List is an editable list of free-text entries (requirements, tags, links...).
// It always holds at least one entry: removing the last one is a no-op.
type List struct {
	entries []string
}

// NewList returns a List seeded with `entries`, or with a single empty entry.
func NewList(entries ...string) *List {
	l := &List{}
	l.Reset(entries)
	return l
}

// Reset replaces every entry, keeping the one-entry minimum.
func (l *List) Reset(entries []string) {
	if len(entries) == 0 {
		l.entries = []string{""}
		return
	}
	l.entries = append(make([]string, 0, len(entries)), entries...)
}

func (l *List) Len() int {
	return len(l.entries)
}

// Values returns a copy of the entries, blanks included.
func (l *List) Values() []string {
	return append([]string(nil), l.entries...)
}

// Edit replaces the entry at `i` in place.
func (l *List) Edit(i int, v string) error {
	if i < 0 || i >= len(l.entries) {
		return errors.Wrapf(ErrOutOfRange, "edit %d", i)
	}
	l.entries[i] = v
	return nil
}

// Append adds an empty entry at the end.
func (l *List) Append() {
	l.entries = append(l.entries, "")
}

// CanRemove reports whether an entry may be removed (more than one left).
func (l *List) CanRemove() bool {
	return len(l.entries) > 1
}

// Remove deletes the entry at `i`, unless it is the only one left.
func (l *List) Remove(i int) error {
	if i < 0 || i >= len(l.entries) {
		return errors.Wrapf(ErrOutOfRange, "remove %d", i)
	}
	if !l.CanRemove() {
		return nil
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return nil
}

// NonBlank returns the entries holding something other than whitespace, in order.
func (l *List) NonBlank() []string {
	vals := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		if !core.IsBlank(e) {
			vals = append(vals, e)
		}
	}
	return vals
}
