package history

import "iter"

// Cursor walks a History's decoded Index sequence one change at a time,
// advancing across block boundaries transparently. Its zero value is not
// usable; construct one with History.NewCursor.
type Cursor struct {
	h          *History
	blockIndex int
	it         blockIter
}

// NewCursor returns a Cursor positioned before the first change.
func (h *History) NewCursor() *Cursor {
	c := &Cursor{h: h}
	if h.GetBlockCount() > 0 {
		c.it = newBlockIter(h.getBlock(0))
	}

	return c
}

func (c *Cursor) advanceBlock() {
	c.blockIndex++
	if c.blockIndex < c.h.GetBlockCount() {
		c.it = newBlockIter(c.h.getBlock(c.blockIndex))
	}
}

// Next returns the next Index in order, or ok=false once every block has
// been exhausted.
func (c *Cursor) Next() (Index, bool) {
	for {
		if c.blockIndex >= c.h.GetBlockCount() {
			return Index{}, false
		}

		if idx, ok := c.it.next(); ok {
			return idx, true
		}

		c.advanceBlock()
	}
}

// Seek advances c to the Index at or immediately before timestampIndex,
// returning it, or ok=false if the History holds nothing at or before
// timestampIndex. On success c is left positioned so the next Next() call
// continues from just after the returned Index.
func (c *Cursor) Seek(timestampIndex uint64) (Index, bool) {
	var (
		lastBlockIndex = c.blockIndex
		lastIt         = c.it
		last           Index
		haveLast       bool
	)

	for {
		if c.blockIndex >= c.h.GetBlockCount() {
			c.blockIndex, c.it = lastBlockIndex, lastIt

			return last, haveLast
		}

		if idx, ok := c.it.seek(timestampIndex); ok {
			lastBlockIndex, lastIt = c.blockIndex, c.it
			last, haveLast = idx, true
		} else {
			c.blockIndex, c.it = lastBlockIndex, lastIt

			return last, haveLast
		}

		c.advanceBlock()
	}
}

// All yields every decoded Index in the History, in order.
func (h *History) All() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		c := h.NewCursor()

		for {
			idx, ok := c.Next()
			if !ok {
				return
			}

			if !yield(idx) {
				return
			}
		}
	}
}
