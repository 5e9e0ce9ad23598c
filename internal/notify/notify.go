// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package notify implements the transient status banner shown after an
// asynchronous operation completed.
package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quixsi/guestlist/internal/clock"
)

const TTL = 3000 * time.Millisecond

// Banner is a single-slot message holder. A message stays visible for at
// least TTL unless a newer message replaces it; every message is
// eventually cleared.
//
// Banner is owned by one view and must only be touched from its update loop.
type Banner struct {
	clock      clock.Clock
	message    string
	success    bool
	generation uint64
}

func New(c clock.Clock) *Banner {
	return &Banner{clock: c}
}

// ExpiredMsg is produced by the command returned from Show once TTL elapsed.
type ExpiredMsg struct {
	banner     *Banner
	generation uint64
}

// Show sets the message and returns the command scheduling its expiry.
func (b *Banner) Show(message string, success bool) tea.Cmd {
	b.generation++
	b.message = message
	b.success = success

	gen, c := b.generation, b.clock
	return func() tea.Msg {
		<-c.After(TTL)
		return ExpiredMsg{banner: b, generation: gen}
	}
}

// Update consumes expiry messages of this banner. It reports whether msg
// belonged to b. An expiry of a replaced message leaves the newer one alone.
func (b *Banner) Update(msg tea.Msg) bool {
	m, ok := msg.(ExpiredMsg)
	if !ok || m.banner != b {
		return false
	}
	if m.generation == b.generation {
		b.message = ""
	}
	return true
}

func (b *Banner) Message() string { return b.message }

func (b *Banner) Success() bool { return b.success }
