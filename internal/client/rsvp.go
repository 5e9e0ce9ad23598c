// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package client

import (
	"context"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/guestlist/internal/model"
)

type RSVPClient struct {
	c *Client
}

// Get returns the guest record carrying the current RSVP answer.
func (r *RSVPClient) Get(ctx context.Context, criteria model.Criteria) (*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "RSVPClient.Get")
	defer span.End()

	guest := &model.Guest{}
	path := []string{"rsvp", "firstName", criteria.FirstName, "lastName", criteria.LastName}
	if err := r.c.do(ctx, http.MethodGet, path, nil, guest); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return guest, nil
}

func (r *RSVPClient) Submit(ctx context.Context, criteria model.Criteria, answer bool) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "RSVPClient.Submit")
	defer span.End()
	span.SetAttributes(attribute.Bool("rsvp.answer", answer))

	path := []string{
		"rsvp",
		"firstName", criteria.FirstName,
		"lastName", criteria.LastName,
		"answer", strconv.FormatBool(answer),
	}
	if err := r.c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
