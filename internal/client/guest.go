// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package client

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/guestlist/internal/model"
)

type GuestClient struct {
	c *Client
}

// Find returns the single guest matching the criteria. A missing guest
// yields an error matching ErrNotFound.
func (g *GuestClient) Find(ctx context.Context, criteria model.Criteria) (*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GuestClient.Find")
	defer span.End()

	guest := &model.Guest{}
	if err := g.c.do(ctx, http.MethodGet, guestPath(criteria), nil, guest); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return guest, nil
}

func (g *GuestClient) All(ctx context.Context) ([]*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GuestClient.All")
	defer span.End()

	guests := []*model.Guest{}
	if err := g.c.do(ctx, http.MethodGet, []string{"guest"}, nil, &guests); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return guests, nil
}

// Create sends only the identity; the backend owns every other field.
func (g *GuestClient) Create(ctx context.Context, guest *model.Guest) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GuestClient.Create")
	defer span.End()

	if err := g.c.do(ctx, http.MethodPost, []string{"guest"}, guest.Criteria(), nil); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (g *GuestClient) Remove(ctx context.Context, guest *model.Guest) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GuestClient.Remove")
	defer span.End()

	if err := g.c.do(ctx, http.MethodDelete, guestPath(guest.Criteria()), nil, nil); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func guestPath(c model.Criteria) []string {
	return []string{"guest", "firstName", c.FirstName, "lastName", c.LastName}
}
