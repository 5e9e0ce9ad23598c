// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package workflow

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quixsi/guestlist/internal/clock"
	"github.com/quixsi/guestlist/internal/model"
	"github.com/quixsi/guestlist/internal/notify"
)

type State int

const (
	StateIdle State = iota
	StateSearching
	StateFound
	StateNotFound
	StateSubmitting
	StateSubmitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateFound:
		return "found"
	case StateNotFound:
		return "not found"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

type searchResultMsg struct {
	form  *RSVPForm
	guest *model.Guest
	err   error
}

type submitResultMsg struct {
	form *RSVPForm
	err  error
}

// RSVPForm drives the lookup of an invitation by name and the submission
// of the attendance answer.
type RSVPForm struct {
	ctx    context.Context
	guests GuestFinder
	rsvp   RSVPSubmitter
	banner *notify.Banner
	logger *slog.Logger

	state    State
	criteria model.Criteria
	result   *model.Guest
	// pending is the answer in flight. The result keeps the server's answer
	// until the refreshed search replaces it.
	pending *bool
}

func NewRSVPForm(ctx context.Context, guests GuestFinder, rsvp RSVPSubmitter, c clock.Clock) *RSVPForm {
	return &RSVPForm{
		ctx:    ctx,
		guests: guests,
		rsvp:   rsvp,
		banner: notify.New(c),
		logger: slog.Default().WithGroup("rsvp-form"),
	}
}

// Search looks up the guest matching criteria. The form stays interactive
// while the request is in flight.
func (f *RSVPForm) Search(criteria model.Criteria) tea.Cmd {
	f.state = StateSearching
	f.criteria = criteria

	ctx, guests := f.ctx, f.guests
	return func() tea.Msg {
		guest, err := guests.Find(ctx, criteria)
		return searchResultMsg{form: f, guest: guest, err: err}
	}
}

// Submit sends answer for the current search result. It is a no-op without
// a result.
func (f *RSVPForm) Submit(answer bool) tea.Cmd {
	if f.result == nil {
		return nil
	}
	f.state = StateSubmitting
	f.pending = model.Answer(answer)

	ctx, rsvp, identity := f.ctx, f.rsvp, f.result.Criteria()
	return func() tea.Msg {
		return submitResultMsg{form: f, err: rsvp.Submit(ctx, identity, answer)}
	}
}

// Update applies messages produced by the form's own commands and ignores
// everything else.
func (f *RSVPForm) Update(msg tea.Msg) tea.Cmd {
	if f.banner.Update(msg) {
		if f.state == StateNotFound && f.banner.Message() == "" {
			f.state = StateIdle
		}
		return nil
	}

	switch msg := msg.(type) {
	case searchResultMsg:
		if msg.form != f {
			return nil
		}
		if msg.err != nil || msg.guest == nil {
			f.logger.DebugContext(f.ctx, "search failed", "first_name", f.criteria.FirstName, "last_name", f.criteria.LastName, "error", msg.err)
			f.state = StateNotFound
			f.result = nil
			return f.banner.Show(model.ErrorReasonNotFound.Message(), false)
		}
		f.state = StateFound
		f.result = msg.guest
		return nil

	case submitResultMsg:
		if msg.form != f {
			return nil
		}
		f.pending = nil
		if msg.err != nil {
			f.logger.WarnContext(f.ctx, "submit rsvp", "error", msg.err)
			f.state = StateFailed
			return f.banner.Show(model.ErrorReasonRequestFailed.Message(), false)
		}
		f.state = StateSubmitted
		return tea.Batch(f.banner.Show(model.MessageSubmitted, true), f.Search(f.criteria))
	}
	return nil
}

// Reset empties the form and the displayed result.
func (f *RSVPForm) Reset() {
	f.state = StateIdle
	f.criteria = model.Criteria{}
	f.result = nil
	f.pending = nil
}

func (f *RSVPForm) State() State { return f.state }

func (f *RSVPForm) Criteria() model.Criteria { return f.criteria }

// Result returns the guest bound for display, nil if there is none.
func (f *RSVPForm) Result() *model.Guest { return f.result }

// Status is the displayed status. While a submit is in flight it reflects
// the pending answer.
func (f *RSVPForm) Status() model.Status {
	if f.state == StateSubmitting && f.pending != nil && f.result != nil {
		return (&model.Guest{RSVP: f.pending}).Status()
	}
	return f.result.Status()
}

func (f *RSVPForm) Alert() string { return f.banner.Message() }

func (f *RSVPForm) Success() bool { return f.banner.Success() }
