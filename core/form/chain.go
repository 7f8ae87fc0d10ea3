package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// ErrParentUnselected is returned when selecting a level whose ancestors are not all selected.
var ErrParentUnselected = errors.New("parent level has no selection")

// Option is one selectable entry of a Chain level.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// LoadFunc fetches the options of `level` scoped by the selection of its parent level.
// parentID is empty for the root level.
type LoadFunc func(ctx context.Context, level int, parentID string) ([]Option, error)

// FetchError is returned when the options of a level could not be loaded.
// The chain stays usable; the level is left without options.
type FetchError struct {
	Level int
	Name  string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("loading %s options: %v", e.Name, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Level is a read-only copy of one level of a Chain.
type Level struct {
	Name       string
	SelectedID string
	Options    []Option
}

type level struct {
	name     string
	selected string
	options  []Option
	gen      uint64 // bumped whenever the options of the level are invalidated
}

// Chain is an ordered sequence of dependent selections (eg. country > state > city).
// The options of a level are only valid while every ancestor has a selection;
// changing a selection clears the selection and options of all deeper levels.
// A Chain is safe for concurrent use.
type Chain struct {
	mu     sync.Mutex
	load   LoadFunc
	levels []level
}

func NewChain(load LoadFunc, names ...string) *Chain {
	levels := make([]level, len(names))
	for i, name := range names {
		levels[i].name = name
	}
	return &Chain{load: load, levels: levels}
}

func (c *Chain) Len() int {
	return len(c.levels)
}

// Levels returns a snapshot of every level.
func (c *Chain) Levels() []Level {
	c.mu.Lock()
	defer c.mu.Unlock()

	lvls := make([]Level, len(c.levels))
	for i, lvl := range c.levels {
		lvls[i] = Level{
			Name:       lvl.name,
			SelectedID: lvl.selected,
			Options:    append([]Option(nil), lvl.options...),
		}
	}
	return lvls
}

// Selected returns the selected id of `lvl` ("" when unset or out of range).
func (c *Chain) Selected(lvl int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lvl < 0 || lvl >= len(c.levels) {
		return ""
	}
	return c.levels[lvl].selected
}

// Options returns a copy of the options of `lvl`.
func (c *Chain) Options(lvl int) []Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lvl < 0 || lvl >= len(c.levels) {
		return nil
	}
	return append([]Option(nil), c.levels[lvl].options...)
}

// Label returns the label of the selected option of `lvl`, if it is loaded.
func (c *Chain) Label(lvl int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lvl < 0 || lvl >= len(c.levels) {
		return ""
	}
	for _, opt := range c.levels[lvl].options {
		if opt.ID == c.levels[lvl].selected {
			return opt.Label
		}
	}
	return ""
}

// LoadRoot fetches the options of the first level.
func (c *Chain) LoadRoot(ctx context.Context) error {
	if len(c.levels) == 0 {
		return nil
	}
	c.mu.Lock()
	c.levels[0].gen++
	gen := c.levels[0].gen
	c.mu.Unlock()
	return c.fetch(ctx, 0, "", gen)
}

// Select sets the selection of `lvl`, clears every deeper level and, when
// `id` is not empty, fetches the options of the next level scoped by `id`.
// Selecting a value below an unselected level fails with ErrParentUnselected
// and leaves the chain unchanged; clearing a selection is always allowed.
func (c *Chain) Select(ctx context.Context, lvl int, id string) error {
	if lvl < 0 || lvl >= len(c.levels) {
		return errors.Wrapf(ErrOutOfRange, "level %d", lvl)
	}

	c.mu.Lock()
	if id != "" {
		for i := 0; i < lvl; i++ {
			if c.levels[i].selected == "" {
				c.mu.Unlock()
				return errors.Wrapf(ErrParentUnselected, "selecting %s", c.levels[lvl].name)
			}
		}
	}
	c.levels[lvl].selected = id
	c.reset(lvl + 1)
	next := lvl + 1
	var gen uint64
	if next < len(c.levels) {
		gen = c.levels[next].gen
	}
	c.mu.Unlock()

	if id == "" || next >= len(c.levels) {
		return nil
	}
	return c.fetch(ctx, next, id, gen)
}

// LoadPath seeds the chain from a stored record: every level gets its
// selection from `ids` (in order) and the options of each level below a
// selection are fetched. An empty id leaves that level and all deeper levels
// unset. Every fetch is attempted; the first failure is returned.
func (c *Chain) LoadPath(ctx context.Context, ids ...string) error {
	c.mu.Lock()
	c.reset(1)
	depth := 0
	for i := range c.levels {
		if i >= len(ids) || ids[i] == "" {
			c.levels[i].selected = ""
			continue
		}
		if depth == i {
			c.levels[i].selected = ids[i]
			depth++
		}
	}
	gens := make([]uint64, len(c.levels))
	for i := range c.levels {
		gens[i] = c.levels[i].gen
	}
	c.mu.Unlock()

	var firstErr error
	for i := 1; i <= depth && i < len(c.levels); i++ {
		if err := c.fetch(ctx, i, ids[i-1], gens[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// reset clears selection and options of every level from `from` on.
// c.mu must be held.
func (c *Chain) reset(from int) {
	for i := from; i < len(c.levels); i++ {
		c.levels[i].selected = ""
		c.levels[i].options = nil
		c.levels[i].gen++
	}
}

// fetch loads the options of `lvl` and stores them unless the level was
// invalidated (its generation changed) while the request was in flight.
func (c *Chain) fetch(ctx context.Context, lvl int, parentID string, gen uint64) error {
	opts, err := c.load(ctx, lvl, parentID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.levels[lvl].gen != gen {
		return nil // stale
	}
	if err != nil {
		c.levels[lvl].options = nil
		return &FetchError{Level: lvl, Name: c.levels[lvl].name, Err: err}
	}
	if opts == nil {
		opts = []Option{}
	}
	c.levels[lvl].options = opts
	return nil
}
