// Package pool keeps per-key GPU resources in step with what a frame asks
// to draw. Each frame the caller hands over the full set of requested keys;
// new keys are created, existing ones updated in place and keys that were
// not requested are released.
package pool

import (
	"errors"
	"fmt"
)

// Resource is the GPU-side state kept for one key.
type Resource[T any] interface {
	Update(data []T) error
	Release()
}

type CreateFunc[K comparable, T any, R Resource[T]] func(key K, data []T) (R, error)

// Stats counts what the last Reconcile did.
type Stats struct {
	Created int
	Updated int
	Evicted int
}

type Pool[K comparable, T any, R Resource[T]] struct {
	create CreateFunc[K, T, R]
	live   map[K]R
	stats  Stats
}

func New[K comparable, T any, R Resource[T]](create CreateFunc[K, T, R]) *Pool[K, T, R] {
	return &Pool[K, T, R]{create: create, live: map[K]R{}}
}

// Reconcile brings the live set in line with requested. Failures for one key
// do not stop the others; they are joined in the returned error. A key whose
// creation failed is not live and will be retried next frame.
func (p *Pool[K, T, R]) Reconcile(requested map[K][]T) error {
	p.stats = Stats{}
	var errs []error

	for key, res := range p.live {
		if _, ok := requested[key]; ok {
			continue
		}
		res.Release()
		delete(p.live, key)
		p.stats.Evicted++
	}

	for key, data := range requested {
		if res, ok := p.live[key]; ok {
			if err := res.Update(data); err != nil {
				errs = append(errs, fmt.Errorf("update %v: %w", key, err))
			}
			p.stats.Updated++
			continue
		}
		res, err := p.create(key, data)
		if err != nil {
			errs = append(errs, fmt.Errorf("create %v: %w", key, err))
			continue
		}
		p.live[key] = res
		p.stats.Created++
	}
	return errors.Join(errs...)
}

// Get returns the live resource for key.
func (p *Pool[K, T, R]) Get(key K) (R, bool) {
	r, ok := p.live[key]
	return r, ok
}

// Each visits every live resource in unspecified order.
func (p *Pool[K, T, R]) Each(f func(K, R)) {
	for k, r := range p.live {
		f(k, r)
	}
}

func (p *Pool[K, T, R]) Len() int     { return len(p.live) }
func (p *Pool[K, T, R]) Stats() Stats { return p.stats }

// Clear releases everything.
func (p *Pool[K, T, R]) Clear() {
	for k, r := range p.live {
		r.Release()
		delete(p.live, k)
	}
}
