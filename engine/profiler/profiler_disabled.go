//go:build !profile

package profiler

import "time"

// Stubbed no-op versions when the "profile" build tag is not set.

func Init(window int) {}

func Start(name string) func() { return func() {} }

func EndFrame() {}

func Summary() map[string]time.Duration { return nil }
