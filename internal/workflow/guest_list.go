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

type loadedMsg struct {
	list   *GuestList
	guests []*model.Guest
	err    error
}

type mutatedMsg struct {
	list *GuestList
	op   string
	err  error
}

// GuestList is the administrative view over all guests. The displayed list
// is always the result of a fresh fetch, mutations are never applied
// locally.
type GuestList struct {
	ctx    context.Context
	guests GuestLister
	banner *notify.Banner
	logger *slog.Logger

	form      model.Criteria
	list      []*model.Guest
	totalRSVP int
	loading   bool
}

func NewGuestList(ctx context.Context, guests GuestLister, c clock.Clock) *GuestList {
	return &GuestList{
		ctx:    ctx,
		guests: guests,
		banner: notify.New(c),
		logger: slog.Default().WithGroup("guest-list"),
	}
}

// Load fetches every guest.
func (l *GuestList) Load() tea.Cmd {
	l.loading = true

	ctx, guests := l.ctx, l.guests
	return func() tea.Msg {
		all, err := guests.All(ctx)
		return loadedMsg{list: l, guests: all, err: err}
	}
}

// Add creates a guest from the bound form. The list is reloaded once the
// backend confirmed the create.
func (l *GuestList) Add() tea.Cmd {
	guest := &model.Guest{FirstName: l.form.FirstName, LastName: l.form.LastName}

	ctx, guests := l.ctx, l.guests
	return func() tea.Msg {
		return mutatedMsg{list: l, op: "add", err: guests.Create(ctx, guest)}
	}
}

// Delete removes guest by identity and reloads the list afterwards.
func (l *GuestList) Delete(guest *model.Guest) tea.Cmd {
	if guest == nil {
		return nil
	}
	target := &model.Guest{FirstName: guest.FirstName, LastName: guest.LastName}

	ctx, guests := l.ctx, l.guests
	return func() tea.Msg {
		return mutatedMsg{list: l, op: "delete", err: guests.Remove(ctx, target)}
	}
}

func (l *GuestList) Update(msg tea.Msg) tea.Cmd {
	if l.banner.Update(msg) {
		return nil
	}

	switch msg := msg.(type) {
	case loadedMsg:
		if msg.list != l {
			return nil
		}
		l.loading = false
		if msg.err != nil {
			l.logger.WarnContext(l.ctx, "load guests", "error", msg.err)
			return l.banner.Show(model.ErrorReasonRequestFailed.Message(), false)
		}
		l.list = msg.guests
		l.totalRSVP = model.CountAttending(msg.guests)
		return nil

	case mutatedMsg:
		if msg.list != l {
			return nil
		}
		if msg.err != nil {
			l.logger.WarnContext(l.ctx, msg.op+" guest", "error", msg.err)
			return l.banner.Show(model.ErrorReasonRequestFailed.Message(), false)
		}
		return l.Load()
	}
	return nil
}

func (l *GuestList) SetForm(c model.Criteria) { l.form = c }

func (l *GuestList) Form() model.Criteria { return l.form }

func (l *GuestList) ClearForm() { l.form = model.Criteria{} }

func (l *GuestList) Guests() []*model.Guest { return l.list }

// TotalRSVP is the number of guests whose answer is strictly yes.
func (l *GuestList) TotalRSVP() int { return l.totalRSVP }

func (l *GuestList) Loading() bool { return l.loading }

func (l *GuestList) Alert() string { return l.banner.Message() }

func (l *GuestList) Success() bool { return l.banner.Success() }
