package arena

import "github.com/pkg/errors"

// Mark is a snapshot of the arena position taken by Arena.Mark. It refers to
// its block by id only and never keeps the block alive.
type Mark struct {
	block      uint64 // 0 when taken on an empty arena
	offset     int
	generation uint64
}

// Mark captures the current position of the arena.
func (a *Arena) Mark() Mark {
	m := Mark{generation: a.generation}
	if b := a.current; b != nil {
		m.block = b.id
		m.offset = b.offset
	}
	return m
}

// Release frees everything allocated since m was taken: every block newer
// than the marked one goes back to the source and the marked block's cursor
// is restored.
//
// A mark taken before a Reset or Destroy, or whose block has already been
// freed by an earlier Release, is stale: Release returns ErrStaleMark and
// leaves the arena untouched.
func (a *Arena) Release(m Mark) error {
	if m.generation != a.generation {
		return errors.Wrapf(ErrStaleMark, "mark from generation %d, arena at %d", m.generation, a.generation)
	}
	if m.block != 0 && !a.live(m.block) {
		return errors.Wrapf(ErrStaleMark, "block %d already freed", m.block)
	}
	for a.current != nil && a.current.id != m.block {
		a.pop()
	}
	if b := a.current; b != nil {
		b.offset = min(m.offset, b.capacity())
	}
	a.counters.releases++
	return nil
}

// live reports whether the block with the given id is in the chain.
func (a *Arena) live(id uint64) bool {
	for b := a.current; b != nil; b = b.prev {
		if b.id == id {
			return true
		}
		// ids grow towards the head
		if b.id < id {
			return false
		}
	}
	return false
}
