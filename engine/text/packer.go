package text

import "image"

// AllocID identifies one live allocation in a BucketedAllocator.
type AllocID uint32

// Allocation is a rectangle handed out by the allocator.
type Allocation struct {
	ID   AllocID
	Rect image.Rectangle
}

// BucketedAllocator packs rectangles into a fixed-size area and supports
// freeing them individually.
//
// The area is split into horizontal shelves whose heights are rounded up to
// a multiple of shelfAlign. Each shelf is split left to right into buckets;
// a bucket is filled like a tiny shelf and becomes reusable once every
// rectangle placed in it has been freed. Trailing empty shelves are removed
// so their height can be reused by other sizes.
type BucketedAllocator struct {
	width, height int
	bucketWidth   int

	shelves  []*shelf
	allocs   map[AllocID]slot
	nextID   AllocID
	usedArea int
}

const (
	shelfAlign         = 8
	defaultBucketWidth = 32
)

type shelf struct {
	y, height int
	x         int // width handed to buckets so far
	buckets   []bucket
}

type bucket struct {
	x, width int
	cursor   int // next free column within the bucket
	refs     int
}

type slot struct {
	shelf  *shelf
	bucket int
	area   int
}

// NewBucketedAllocator creates an allocator for a width x height area.
func NewBucketedAllocator(width, height int) *BucketedAllocator {
	return &BucketedAllocator{
		width:       width,
		height:      height,
		bucketWidth: defaultBucketWidth,
		allocs:      map[AllocID]slot{},
	}
}

// Size returns the allocator's dimensions.
func (a *BucketedAllocator) Size() (int, int) { return a.width, a.height }

// Allocate reserves a w x h rectangle. It returns false when there is no
// room left.
func (a *BucketedAllocator) Allocate(w, h int) (Allocation, bool) {
	w, h = max(w, 1), max(h, 1)
	if w > a.width || h > a.height {
		return Allocation{}, false
	}

	// Smallest shelf that is tall enough wins.
	var best *shelf
	bestBucket := -1
	for _, s := range a.shelves {
		if s.height < h || (best != nil && s.height >= best.height) {
			continue
		}
		if bi := s.fit(w, a.width, a.bucketWidth); bi >= 0 {
			best, bestBucket = s, bi
		}
	}

	if best == nil {
		best = a.addShelf(h)
		if best == nil {
			return Allocation{}, false
		}
		bestBucket = best.fit(w, a.width, a.bucketWidth)
		if bestBucket < 0 {
			return Allocation{}, false
		}
	}

	b := &best.buckets[bestBucket]
	rect := image.Rect(b.x+b.cursor, best.y, b.x+b.cursor+w, best.y+h)
	b.cursor += w
	b.refs++

	a.nextID++
	id := a.nextID
	a.allocs[id] = slot{shelf: best, bucket: bestBucket, area: w * h}
	a.usedArea += w * h
	return Allocation{ID: id, Rect: rect}, true
}

// fit returns the index of a bucket in s with room for w columns, opening a
// new bucket if needed. It returns -1 when the shelf is full.
func (s *shelf) fit(w, areaWidth, bucketWidth int) int {
	for i := range s.buckets {
		if s.buckets[i].width-s.buckets[i].cursor >= w {
			return i
		}
	}
	bw := max(bucketWidth, w)
	if s.x+bw > areaWidth {
		bw = areaWidth - s.x
		if bw < w {
			return -1
		}
	}
	s.buckets = append(s.buckets, bucket{x: s.x, width: bw})
	s.x += bw
	return len(s.buckets) - 1
}

func (a *BucketedAllocator) addShelf(h int) *shelf {
	y := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		y = last.y + last.height
	}
	sh := min((h+shelfAlign-1)/shelfAlign*shelfAlign, a.height)
	if y+sh > a.height {
		// aligned height no longer fits, try the exact one
		sh = h
		if y+sh > a.height {
			return nil
		}
	}
	s := &shelf{y: y, height: sh}
	a.shelves = append(a.shelves, s)
	return s
}

// Deallocate frees a previous allocation. Unknown ids are ignored.
func (a *BucketedAllocator) Deallocate(id AllocID) {
	sl, ok := a.allocs[id]
	if !ok {
		return
	}
	delete(a.allocs, id)
	a.usedArea -= sl.area

	b := &sl.shelf.buckets[sl.bucket]
	b.refs--
	if b.refs > 0 {
		return
	}
	b.cursor = 0

	if !sl.shelf.empty() {
		return
	}
	// an empty shelf can hand its width out again
	sl.shelf.buckets = sl.shelf.buckets[:0]
	sl.shelf.x = 0
	for n := len(a.shelves); n > 0 && a.shelves[n-1].empty(); n-- {
		a.shelves = a.shelves[:n-1]
	}
}

func (s *shelf) empty() bool {
	for _, b := range s.buckets {
		if b.refs > 0 {
			return false
		}
	}
	return true
}

// Len returns the number of live allocations.
func (a *BucketedAllocator) Len() int { return len(a.allocs) }

// Utilization returns the fraction of the area covered by live allocations.
func (a *BucketedAllocator) Utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}
