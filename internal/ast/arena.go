package ast

// Arena is append-only typed storage. Indices are 1-based so the zero
// value of every ID type means "no node".
type Arena[T any] struct {
	data []T
}

// NewArena preallocates room for capHint values; zero is allowed.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores value and returns its index.
func (a *Arena[T]) Allocate(value T) uint32 {
	id := uint32(len(a.data)) + 1
	a.data = append(a.data, value)
	return id
}

// Get resolves an index; index zero yields nil.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

// Len reports how many values have been allocated.
func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}

// Slice exposes the backing storage for iteration; callers must not
// mutate it.
func (a *Arena[T]) Slice() []T {
	return a.data
}
