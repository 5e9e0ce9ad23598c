// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package clock abstracts the time source so that timed behavior such as
// expiring notifications can be driven deterministically in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
	// After returns a channel that receives the current time once d
	// elapsed. If d <= 0 the channel receives immediately.
	After(d time.Duration) <-chan time.Time
}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
