package pool

import (
	"fmt"

	"github.com/hubastard/skirmish/engine/core"
)

// InstanceBuffer is a GPU buffer holding Count records of T. Writes that fit
// in the current capacity overwrite in place; larger writes reallocate.
type InstanceBuffer[T any] struct {
	r        core.Renderer
	usage    core.BufferUsage
	label    string
	buf      core.Buffer
	count    int
	capacity int
}

func NewInstanceBuffer[T any](r core.Renderer, usage core.BufferUsage, label string, data []T) (*InstanceBuffer[T], error) {
	b := &InstanceBuffer[T]{r: r, usage: usage, label: label}
	if err := b.alloc(data); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *InstanceBuffer[T]) alloc(data []T) error {
	// GL rejects zero-sized buffers, keep one record of room.
	n := max(len(data), 1)
	raw := make([]byte, n*SizeOf[T]())
	copy(raw, Bytes(data))
	buf, err := b.r.CreateBuffer(core.BufferDesc{Usage: b.usage, Data: raw, Label: b.label})
	if err != nil {
		return fmt.Errorf("create %s buffer: %w", b.label, err)
	}
	b.buf = buf
	b.count = len(data)
	b.capacity = n
	return nil
}

// Update replaces the buffer contents with data.
func (b *InstanceBuffer[T]) Update(data []T) error {
	if len(data) == 0 {
		b.count = 0
		return nil
	}
	if len(data) <= b.capacity {
		if err := b.r.UpdateBuffer(b.buf, 0, Bytes(data)); err != nil {
			return fmt.Errorf("update %s buffer: %w", b.label, err)
		}
		b.count = len(data)
		return nil
	}
	old := b.buf
	if err := b.alloc(data); err != nil {
		return err
	}
	b.r.DeleteBuffer(old)
	return nil
}

func (b *InstanceBuffer[T]) Buffer() core.Buffer { return b.buf }
func (b *InstanceBuffer[T]) Count() int          { return b.count }
func (b *InstanceBuffer[T]) Capacity() int       { return b.capacity }

func (b *InstanceBuffer[T]) Release() {
	if b.buf != 0 {
		b.r.DeleteBuffer(b.buf)
		b.buf = 0
	}
	b.count, b.capacity = 0, 0
}
