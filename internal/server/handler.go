// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/guestlist/internal/db"
	"github.com/quixsi/guestlist/internal/model"
)

const (
	msgGuestAdded      = "Successfully added guest"
	msgGuestDeleted    = "Successfully deleted"
	msgGuestNotFound   = "Guest not found"
	msgGuestExists     = "Guest already exists"
	msgNameRequired    = "First and last name required"
	msgAnswerRequired  = "First name, last name and answer required"
	msgRSVPSubmitted   = "Successfully submitted RSVP"
	msgDeadlinePassed  = "RSVP deadline has passed"
	msgInternalFailure = "Internal server error"
)

func NewGuestHandler(gStore db.GuestStore) *GuestHandler {
	return &GuestHandler{
		gStore: gStore,
		logger: slog.Default().WithGroup("http"),
	}
}

type GuestHandler struct {
	gStore db.GuestStore
	logger *slog.Logger
}

func (h *GuestHandler) List(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "GuestHandler.List")
	defer span.End()

	guests, err := h.gStore.ListGuests(ctx)
	if err != nil {
		fail(ctx, c, span, h.logger, "could not list guests", err)
		return
	}
	span.SetAttributes(attribute.Int("guest.count", len(guests)))
	c.JSON(http.StatusOK, guests)
}

func (h *GuestHandler) Get(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "GuestHandler.Get")
	defer span.End()

	guest, err := h.gStore.FindGuest(ctx, criteriaFromPath(c))
	if err != nil {
		fail(ctx, c, span, h.logger, "could not find guest", err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// Create accepts the identity either as JSON body or as query parameters.
// Only the name is taken over, a new guest never carries an answer.
func (h *GuestHandler) Create(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "GuestHandler.Create")
	defer span.End()

	var criteria model.Criteria
	if err := c.ShouldBind(&criteria); err != nil || !criteria.Valid() {
		c.JSON(http.StatusNotAcceptable, gin.H{"response": msgNameRequired})
		return
	}

	guest, err := h.gStore.CreateGuest(ctx, &model.Guest{
		FirstName: strings.TrimSpace(criteria.FirstName),
		LastName:  strings.TrimSpace(criteria.LastName),
	})
	if err != nil {
		fail(ctx, c, span, h.logger, "could not create guest", err)
		return
	}
	span.SetAttributes(attribute.String("guest.id", guest.ID.String()))
	c.JSON(http.StatusCreated, gin.H{"response": msgGuestAdded})
}

func (h *GuestHandler) Delete(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "GuestHandler.Delete")
	defer span.End()

	if err := h.gStore.DeleteGuest(ctx, criteriaFromPath(c)); err != nil {
		fail(ctx, c, span, h.logger, "could not delete guest", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": msgGuestDeleted})
}

func NewRSVPHandler(gStore db.GuestStore) *RSVPHandler {
	return &RSVPHandler{
		gStore: gStore,
		logger: slog.Default().WithGroup("http"),
	}
}

type RSVPHandler struct {
	gStore db.GuestStore
	logger *slog.Logger
}

func (h *RSVPHandler) Get(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "RSVPHandler.Get")
	defer span.End()

	guest, err := h.gStore.FindGuest(ctx, criteriaFromPath(c))
	if err != nil {
		fail(ctx, c, span, h.logger, "could not find rsvp", err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// Submit stores the answer. Only the literal "true" counts as coming.
func (h *RSVPHandler) Submit(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "RSVPHandler.Submit")
	defer span.End()

	answer := c.Param("answer") == "true"
	span.SetAttributes(attribute.Bool("rsvp.answer", answer))

	if _, err := h.gStore.SubmitRSVP(ctx, criteriaFromPath(c), answer); err != nil {
		fail(ctx, c, span, h.logger, "could not submit rsvp", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": msgRSVPSubmitted})
}

func criteriaFromPath(c *gin.Context) model.Criteria {
	return model.Criteria{
		FirstName: strings.TrimSpace(c.Param("firstName")),
		LastName:  strings.TrimSpace(c.Param("lastName")),
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// fail maps store errors onto status codes and response messages.
func fail(ctx context.Context, c *gin.Context, span trace.Span, logger *slog.Logger, msg string, err error) {
	span.RecordError(err)
	switch {
	case errors.Is(err, db.ErrGuestNotFound):
		logger.WarnContext(ctx, msg, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"response": msgGuestNotFound})
	case errors.Is(err, db.ErrGuestExists):
		logger.WarnContext(ctx, msg, "error", err)
		c.JSON(http.StatusConflict, gin.H{"response": msgGuestExists})
	case errors.Is(err, db.ErrNameRequired):
		c.JSON(http.StatusNotAcceptable, gin.H{"response": msgNameRequired})
	default:
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"response": msgInternalFailure})
	}
}
