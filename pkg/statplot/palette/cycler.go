package palette

// Cycler yields the items of a fixed list forever, wrapping to the start.
type Cycler[T any] struct {
	items []T
	pos   int
}

// NewCycler creates a cycler over a copy of items.
func NewCycler[T any](items []T) *Cycler[T] {
	return &Cycler[T]{items: append([]T(nil), items...)}
}

// Next returns the current item and advances one step.
// An empty cycler returns the zero value.
func (c *Cycler[T]) Next() T {
	var zero T
	if len(c.items) == 0 {
		return zero
	}
	item := c.items[c.pos]
	c.pos = (c.pos + 1) % len(c.items)
	return item
}

// Reset restarts the sequence.
func (c *Cycler[T]) Reset() {
	c.pos = 0
}

// Len returns the period of the sequence.
func (c *Cycler[T]) Len() int {
	return len(c.items)
}
