// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"
	"errors"

	"github.com/quixsi/guestlist/internal/model"
)

var (
	ErrGuestNotFound = errors.New("guest not found")
	ErrGuestExists   = errors.New("guest already exists")
	ErrNameRequired  = errors.New("first and last name required")
)

// GuestStore persists the guest list of a single event. Guests are
// identified by their first and last name.
type GuestStore interface {
	CreateGuest(context.Context, *model.Guest) (*model.Guest, error)
	DeleteGuest(context.Context, model.Criteria) error
	ListGuests(context.Context) ([]*model.Guest, error)
	FindGuest(context.Context, model.Criteria) (*model.Guest, error)
	SubmitRSVP(ctx context.Context, c model.Criteria, answer bool) (*model.Guest, error)
}
