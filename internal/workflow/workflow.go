// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package workflow holds the per-view state of the terminal client. Every
// network round trip runs as a tea.Cmd and resumes the workflow through a
// message passed to Update, so state is only ever mutated from the update
// loop. Responses are applied in the order they resolve.
package workflow

import (
	"context"

	"github.com/quixsi/guestlist/internal/model"
)

type GuestFinder interface {
	Find(ctx context.Context, criteria model.Criteria) (*model.Guest, error)
}

type RSVPSubmitter interface {
	Submit(ctx context.Context, criteria model.Criteria, answer bool) error
}

type GuestLister interface {
	All(ctx context.Context) ([]*model.Guest, error)
	Create(ctx context.Context, guest *model.Guest) error
	Remove(ctx context.Context, guest *model.Guest) error
}
