// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quixsi/guestlist/internal/clock"
	"github.com/quixsi/guestlist/internal/model"
)

var errBackend = errors.New("backend unavailable")

// fakeBackend implements every client interface over an in-memory list.
type fakeBackend struct {
	mu     sync.Mutex
	guests []*model.Guest

	// echo overrides the stored answer after a submit, simulating a write
	// the backend did not keep.
	echo *bool

	findErr   error
	submitErr error
	allErr    error
	createErr error
	removeErr error

	submitted []bool
}

func (b *fakeBackend) Find(_ context.Context, c model.Criteria) (*model.Guest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.findErr != nil {
		return nil, b.findErr
	}
	for _, g := range b.guests {
		if g.Matches(c) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (b *fakeBackend) Submit(_ context.Context, c model.Criteria, answer bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.submitErr != nil {
		return b.submitErr
	}
	b.submitted = append(b.submitted, answer)
	for _, g := range b.guests {
		if g.Matches(c) {
			g.RSVP = model.Answer(answer)
			if b.echo != nil {
				g.RSVP = model.Answer(*b.echo)
			}
			return nil
		}
	}
	return errors.New("not found")
}

func (b *fakeBackend) All(context.Context) ([]*model.Guest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.allErr != nil {
		return nil, b.allErr
	}
	out := make([]*model.Guest, 0, len(b.guests))
	for _, g := range b.guests {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (b *fakeBackend) Create(_ context.Context, g *model.Guest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.createErr != nil {
		return b.createErr
	}
	b.guests = append(b.guests, &model.Guest{FirstName: g.FirstName, LastName: g.LastName})
	return nil
}

func (b *fakeBackend) Remove(_ context.Context, g *model.Guest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.removeErr != nil {
		return b.removeErr
	}
	for i, stored := range b.guests {
		if stored.Matches(g.Criteria()) {
			b.guests = append(b.guests[:i], b.guests[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

// harness runs commands the way the bubbletea runtime does: each in its
// own goroutine, batches expanded, results delivered one at a time.
type harness struct {
	t     *testing.T
	clock *clock.FakeClock
	msgs  chan tea.Msg
}

func newHarness(t *testing.T) *harness {
	return &harness{
		t:     t,
		clock: clock.Fake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
		msgs:  make(chan tea.Msg, 16),
	}
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() { h.msgs <- cmd() }()
}

func (h *harness) next() tea.Msg {
	h.t.Helper()
	for {
		select {
		case msg := <-h.msgs:
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, cmd := range batch {
					h.run(cmd)
				}
				continue
			}
			return msg
		case <-time.After(5 * time.Second):
			h.t.Fatal("timed out waiting for a message")
			return nil
		}
	}
}

// step delivers the next message to update and runs the returned command.
func (h *harness) step(update func(tea.Msg) tea.Cmd) tea.Msg {
	h.t.Helper()
	msg := h.next()
	h.run(update(msg))
	return msg
}

// expire fires n pending banner timers and delivers their messages.
func (h *harness) expire(update func(tea.Msg) tea.Cmd, n int) {
	h.t.Helper()
	h.clock.WaitForTimers(n)
	h.clock.Advance(3000 * time.Millisecond)
	for i := 0; i < n; i++ {
		h.step(update)
	}
}
