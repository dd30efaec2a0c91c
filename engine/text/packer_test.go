package text

import (
	"image"
	"testing"
)

func TestAllocateDoesNotOverlap(t *testing.T) {
	a := NewBucketedAllocator(128, 128)
	var rects []image.Rectangle
	sizes := [][2]int{{10, 12}, {20, 12}, {5, 30}, {32, 8}, {40, 40}, {7, 7}, {1, 1}, {64, 16}}
	for _, s := range sizes {
		al, ok := a.Allocate(s[0], s[1])
		if !ok {
			t.Fatalf("Allocate(%d, %d) failed", s[0], s[1])
		}
		if al.Rect.Dx() != s[0] || al.Rect.Dy() != s[1] {
			t.Fatalf("Allocate(%d, %d) = %v", s[0], s[1], al.Rect)
		}
		if !al.Rect.In(image.Rect(0, 0, 128, 128)) {
			t.Fatalf("%v outside the area", al.Rect)
		}
		for _, r := range rects {
			if r.Overlaps(al.Rect) {
				t.Fatalf("%v overlaps %v", al.Rect, r)
			}
		}
		rects = append(rects, al.Rect)
	}
	if a.Len() != len(sizes) {
		t.Fatalf("Len() = %d", a.Len())
	}
}

func TestAllocateTooLarge(t *testing.T) {
	a := NewBucketedAllocator(64, 64)
	if _, ok := a.Allocate(65, 10); ok {
		t.Fatal("allocation wider than the area succeeded")
	}
	if _, ok := a.Allocate(10, 65); ok {
		t.Fatal("allocation taller than the area succeeded")
	}
}

func TestAllocateUntilFullThenReuse(t *testing.T) {
	a := NewBucketedAllocator(64, 64)
	var ids []AllocID
	for {
		al, ok := a.Allocate(16, 16)
		if !ok {
			break
		}
		ids = append(ids, al.ID)
	}
	if len(ids) != 16 {
		t.Fatalf("fit %d 16x16 cells in 64x64, want 16", len(ids))
	}
	if a.Utilization() != 1 {
		t.Fatalf("Utilization() = %v, want 1", a.Utilization())
	}

	// a bucket is reused only once all of its cells are free
	a.Deallocate(ids[5])
	if _, ok := a.Allocate(16, 16); ok {
		t.Fatal("allocated into a partially used bucket")
	}
	a.Deallocate(ids[4])
	al, ok := a.Allocate(16, 16)
	if !ok {
		t.Fatal("no room after freeing a bucket")
	}
	if al.Rect.Dx() != 16 {
		t.Fatalf("reused rect %v", al.Rect)
	}
}

func TestDeallocateAllResets(t *testing.T) {
	a := NewBucketedAllocator(64, 64)
	var ids []AllocID
	for i := 0; i < 10; i++ {
		al, ok := a.Allocate(8, 8)
		if !ok {
			t.Fatal("allocation failed")
		}
		ids = append(ids, al.ID)
	}
	for _, id := range ids {
		a.Deallocate(id)
	}
	a.Deallocate(ids[0]) // double free is ignored
	if a.Len() != 0 || a.Utilization() != 0 {
		t.Fatalf("Len() = %d, Utilization() = %v after freeing all", a.Len(), a.Utilization())
	}
	// whole area is available again
	if _, ok := a.Allocate(64, 64); !ok {
		t.Fatal("full-size allocation failed after freeing everything")
	}
}
