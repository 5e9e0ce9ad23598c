// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/guestlist/internal/db"
	"github.com/quixsi/guestlist/internal/model"
)

// GuestStore is an implementation of the GuestStore interface
// that stores the guest list as a JSON array in a file.
type GuestStore struct {
	filename string
	mu       sync.RWMutex
	guests   []*model.Guest
}

// NewGuestStore creates a new GuestStore instance backed by filename.
// A missing file is treated as an empty guest list.
func NewGuestStore(filename string) (*GuestStore, error) {
	store := &GuestStore{
		filename: filename,
		guests:   make([]*model.Guest, 0),
	}

	if err := store.loadFromFile(); err != nil {
		return nil, err
	}
	return store, nil
}

// CreateGuest appends a new guest to the list and stores it in the JSON file.
func (g *GuestStore) CreateGuest(ctx context.Context, guest *model.Guest) (*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateGuest")
	defer span.End()

	if !guest.Criteria().Valid() {
		span.RecordError(db.ErrNameRequired)
		return nil, db.ErrNameRequired
	}

	span.AddEvent("Lock")
	g.mu.Lock()
	defer span.AddEvent("Unlock")
	defer g.mu.Unlock()

	span.AddEvent("check if guest exists")
	if g.indexOf(guest.Criteria()) >= 0 {
		span.RecordError(db.ErrGuestExists)
		return nil, db.ErrGuestExists
	}

	stored := *guest
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt == nil {
		now := time.Now()
		stored.CreatedAt = &now
	}
	g.guests = append(g.guests, &stored)

	span.AddEvent("save to file")
	if err := g.saveToFile(ctx); err != nil {
		g.guests = g.guests[:len(g.guests)-1]
		return nil, err
	}

	res := stored
	return &res, nil
}

// DeleteGuest removes the first guest matching c from the list and JSON file.
func (g *GuestStore) DeleteGuest(ctx context.Context, c model.Criteria) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "DeleteGuest")
	defer span.End()

	span.AddEvent("Lock")
	g.mu.Lock()
	defer span.AddEvent("Unlock")
	defer g.mu.Unlock()

	idx := g.indexOf(c)
	if idx < 0 {
		span.RecordError(db.ErrGuestNotFound)
		return db.ErrGuestNotFound
	}

	removed := g.guests[idx]
	g.guests = append(g.guests[:idx], g.guests[idx+1:]...)

	if err := g.saveToFile(ctx); err != nil {
		g.guests = append(g.guests[:idx], append([]*model.Guest{removed}, g.guests[idx:]...)...)
		return err
	}
	return nil
}

// ListGuests returns a copy of the guest list in insertion order.
func (g *GuestStore) ListGuests(ctx context.Context) ([]*model.Guest, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListGuests")
	defer span.End()

	span.AddEvent("RLock")
	g.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer g.mu.RUnlock()

	guestList := make([]*model.Guest, 0, len(g.guests))
	for _, guest := range g.guests {
		c := *guest
		guestList = append(guestList, &c)
	}
	return guestList, nil
}

// FindGuest returns the first guest matching c.
func (g *GuestStore) FindGuest(ctx context.Context, c model.Criteria) (*model.Guest, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "FindGuest")
	defer span.End()

	span.AddEvent("RLock")
	g.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer g.mu.RUnlock()

	idx := g.indexOf(c)
	if idx < 0 {
		span.RecordError(db.ErrGuestNotFound)
		return nil, db.ErrGuestNotFound
	}
	res := *g.guests[idx]
	return &res, nil
}

// SubmitRSVP records the answer on the first guest matching c.
func (g *GuestStore) SubmitRSVP(ctx context.Context, c model.Criteria, answer bool) (*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "SubmitRSVP")
	defer span.End()

	span.AddEvent("Lock")
	g.mu.Lock()
	defer span.AddEvent("Unlock")
	defer g.mu.Unlock()

	idx := g.indexOf(c)
	if idx < 0 {
		span.RecordError(db.ErrGuestNotFound)
		return nil, db.ErrGuestNotFound
	}

	prev := *g.guests[idx]
	now := time.Now()
	g.guests[idx].RSVP = model.Answer(answer)
	g.guests[idx].UpdatedAt = &now

	if err := g.saveToFile(ctx); err != nil {
		*g.guests[idx] = prev
		return nil, err
	}
	res := *g.guests[idx]
	return &res, nil
}

// indexOf must be called with g.mu held.
func (g *GuestStore) indexOf(c model.Criteria) int {
	for i, guest := range g.guests {
		if guest.Matches(c) {
			return i
		}
	}
	return -1
}

// saveToFile saves the current guest list to the JSON file.
func (g *GuestStore) saveToFile(ctx context.Context) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "SaveToFile")
	defer span.End()

	fileData, err := json.MarshalIndent(g.guests, "", "  ")
	if err != nil {
		span.RecordError(err)
		return err
	}

	if dir := filepath.Dir(g.filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			span.RecordError(err)
			return err
		}
	}

	if err := os.WriteFile(g.filename, fileData, 0644); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// loadFromFile loads the guest list from the JSON file into the store.
func (g *GuestStore) loadFromFile() error {
	if _, err := os.Stat(g.filename); os.IsNotExist(err) {
		// File does not exist, no guests to load
		return nil
	}

	fileData, err := os.ReadFile(g.filename)
	if err != nil {
		return err
	}
	if len(fileData) == 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return json.Unmarshal(fileData, &g.guests)
}
