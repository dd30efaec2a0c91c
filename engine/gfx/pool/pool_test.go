package pool

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/hubastard/skirmish/engine/core"
	"github.com/hubastard/skirmish/engine/gfx/gfxtest"
)

type quad struct {
	X, Y float32
}

func newQuadPool(r core.Renderer) *Pool[string, quad, *InstanceBuffer[quad]] {
	return New(func(key string, data []quad) (*InstanceBuffer[quad], error) {
		return NewInstanceBuffer(r, core.BufferVertex, key, data)
	})
}

func TestReconcileCreateUpdateEvict(t *testing.T) {
	r := gfxtest.New()
	p := newQuadPool(r)

	if err := p.Reconcile(map[string][]quad{
		"a": {{1, 1}},
		"b": {{2, 2}},
	}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got := p.Stats(); got != (Stats{Created: 2}) {
		t.Fatalf("first frame stats = %+v", got)
	}
	b, _ := p.Get("b")
	bHandle := b.Buffer()

	if err := p.Reconcile(map[string][]quad{
		"b": {{3, 3}},
		"c": {{4, 4}},
	}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got := p.Stats(); got != (Stats{Created: 1, Updated: 1, Evicted: 1}) {
		t.Fatalf("second frame stats = %+v", got)
	}
	if _, ok := p.Get("a"); ok {
		t.Fatal("a still live after it was not requested")
	}
	b, _ = p.Get("b")
	if b.Buffer() != bHandle {
		t.Fatal("b was recreated instead of updated")
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if r.BuffersCreated != 3 || r.BuffersDeleted != 1 {
		t.Fatalf("created %d deleted %d buffers, want 3 and 1", r.BuffersCreated, r.BuffersDeleted)
	}
	// b's contents were overwritten in place
	data := r.Buffers[bHandle].Data
	if x := binary.LittleEndian.Uint32(data[0:4]); x != 0x40400000 {
		t.Fatalf("b x bits = %#x, want 3.0", x)
	}
}

func TestReconcileEmptyReleasesAll(t *testing.T) {
	r := gfxtest.New()
	p := newQuadPool(r)
	_ = p.Reconcile(map[string][]quad{"a": {{1, 1}}, "b": {{1, 1}}})
	if err := p.Reconcile(nil); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if p.Len() != 0 || len(r.Buffers) != 0 {
		t.Fatalf("live %d, buffers %d; want none", p.Len(), len(r.Buffers))
	}
}

type failing struct{ released bool }

func (f *failing) Update([]int) error { return errors.New("boom") }
func (f *failing) Release()           { f.released = true }

func TestReconcileJoinsErrors(t *testing.T) {
	p := New(func(key int, data []int) (*failing, error) {
		if key == 0 {
			return nil, errors.New("no zero")
		}
		return &failing{}, nil
	})
	if err := p.Reconcile(map[int][]int{0: nil, 1: nil}); err == nil {
		t.Fatal("expected create error")
	}
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
	if err := p.Reconcile(map[int][]int{1: nil}); err == nil {
		t.Fatal("expected update error")
	}
	if _, ok := p.Get(1); !ok {
		t.Fatal("failed update should keep the resource live")
	}
}

func TestInstanceBufferGrowAndShrink(t *testing.T) {
	r := gfxtest.New()
	b, err := NewInstanceBuffer(r, core.BufferVertex, "quads", []quad{{1, 1}, {2, 2}})
	if err != nil {
		t.Fatalf("NewInstanceBuffer: %v", err)
	}
	first := b.Buffer()

	if err := b.Update([]quad{{5, 5}}); err != nil {
		t.Fatal(err)
	}
	if b.Buffer() != first || b.Count() != 1 || b.Capacity() != 2 {
		t.Fatalf("shrink: handle changed=%v count=%d cap=%d", b.Buffer() != first, b.Count(), b.Capacity())
	}

	if err := b.Update([]quad{{1, 1}, {2, 2}, {3, 3}}); err != nil {
		t.Fatal(err)
	}
	if b.Buffer() == first || b.Count() != 3 || b.Capacity() != 3 {
		t.Fatalf("grow: count=%d cap=%d", b.Count(), b.Capacity())
	}
	if _, ok := r.Buffers[first]; ok {
		t.Fatal("old buffer not deleted after grow")
	}

	if err := b.Update(nil); err != nil {
		t.Fatal(err)
	}
	if b.Count() != 0 {
		t.Fatalf("empty update: count=%d", b.Count())
	}

	b.Release()
	if len(r.Buffers) != 0 {
		t.Fatalf("%d buffers left after Release", len(r.Buffers))
	}
}

func TestInstanceBufferEmptyInit(t *testing.T) {
	r := gfxtest.New()
	b, err := NewInstanceBuffer[quad](r, core.BufferVertex, "empty", nil)
	if err != nil {
		t.Fatal(err)
	}
	if b.Count() != 0 || b.Capacity() != 1 {
		t.Fatalf("count=%d cap=%d, want 0 and 1", b.Count(), b.Capacity())
	}
	if got := len(r.Buffers[b.Buffer()].Data); got != SizeOf[quad]() {
		t.Fatalf("buffer size %d, want %d", got, SizeOf[quad]())
	}
}
