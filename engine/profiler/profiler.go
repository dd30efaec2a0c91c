//go:build profile

package profiler

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hubastard/skirmish/engine/logger"
)

// -------- public API --------

// Init sets how many frames are accumulated between summaries.
// Example: profiler.Init(600) // log every ~10s at 60 fps
func Init(window int) {
	mu.Lock()
	defer mu.Unlock()
	if window <= 0 {
		window = 600
	}
	reportEvery = window
	scopes = map[string]*scope{}
}

// Start begins a scope and returns an end func to be deferred.
func Start(name string) func() {
	begin := time.Now()
	return func() {
		d := time.Since(begin)
		mu.Lock()
		s := scopes[name]
		if s == nil {
			s = &scope{}
			scopes[name] = s
		}
		s.total += d
		s.calls++
		if d > s.max {
			s.max = d
		}
		mu.Unlock()
	}
}

// EndFrame closes the frame and logs a summary once the window is full.
func EndFrame() {
	mu.Lock()
	defer mu.Unlock()
	frames++
	if frames < reportEvery {
		return
	}
	for _, name := range sortedNames() {
		s := scopes[name]
		logger.Log.WithFields(logrus.Fields{
			"scope": name,
			"calls": s.calls,
			"avg":   s.total / time.Duration(s.calls),
			"max":   s.max,
		}).Debug("profile")
	}
	frames = 0
	scopes = map[string]*scope{}
}

// Summary returns the average duration per scope for the current window.
func Summary() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(scopes))
	for name, s := range scopes {
		out[name] = s.total / time.Duration(s.calls)
	}
	return out
}

// ---------- accumulation ----------

type scope struct {
	total time.Duration
	max   time.Duration
	calls int
}

var (
	mu          sync.Mutex
	scopes      = map[string]*scope{}
	frames      int
	reportEvery = 600
)

func sortedNames() []string {
	names := make([]string, 0, len(scopes))
	for n := range scopes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
