// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package storetest holds the behavior every db.GuestStore implementation
// has to satisfy.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/quixsi/guestlist/internal/db"
	"github.com/quixsi/guestlist/internal/model"
)

var guests = []*model.Guest{
	{FirstName: "James", LastName: "Fox"},
	{FirstName: "Lisa", LastName: "Miller"},
	{FirstName: "Jessica", LastName: "Van Meter"},
	{FirstName: "Sonny", LastName: "Hanback"},
}

// Run executes the conformance suite. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) db.GuestStore) {
	t.Helper()
	tt := []struct {
		name string
		fn   func(t *testing.T, s db.GuestStore)
	}{
		{name: "create and find", fn: testCreateAndFind},
		{name: "list keeps insertion order", fn: testListOrder},
		{name: "empty list", fn: testEmptyList},
		{name: "duplicate rejected", fn: testDuplicate},
		{name: "name required", fn: testNameRequired},
		{name: "delete", fn: testDelete},
		{name: "delete unknown", fn: testDeleteUnknown},
		{name: "find unknown", fn: testFindUnknown},
		{name: "submit rsvp", fn: testSubmitRSVP},
		{name: "submit rsvp unknown", fn: testSubmitRSVPUnknown},
		{name: "concurrent submit", fn: testConcurrentSubmit},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newStore(t))
		})
	}
}

func seed(t *testing.T, s db.GuestStore) {
	t.Helper()
	for _, g := range guests {
		in := *g
		if _, err := s.CreateGuest(context.Background(), &in); err != nil {
			t.Fatalf("CreateGuest(%s %s): %v", g.FirstName, g.LastName, err)
		}
	}
}

func testCreateAndFind(t *testing.T, s db.GuestStore) {
	ctx := context.Background()
	created, err := s.CreateGuest(ctx, &model.Guest{FirstName: "Rick", LastName: "Grimes"})
	if err != nil {
		t.Fatalf("CreateGuest: %v", err)
	}
	if created.FirstName != "Rick" || created.LastName != "Grimes" {
		t.Fatalf("unexpected guest: %+v", created)
	}
	if created.RSVP != nil {
		t.Fatalf("new guest must not carry an RSVP, got %v", *created.RSVP)
	}

	found, err := s.FindGuest(ctx, model.Criteria{FirstName: "Rick", LastName: "Grimes"})
	if err != nil {
		t.Fatalf("FindGuest: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("found id %s, want %s", found.ID, created.ID)
	}
	if found.Status() != model.StatusNotSubmitted {
		t.Fatalf("status = %q, want %q", found.Status(), model.StatusNotSubmitted)
	}
}

func testListOrder(t *testing.T, s db.GuestStore) {
	seed(t, s)
	list, err := s.ListGuests(context.Background())
	if err != nil {
		t.Fatalf("ListGuests: %v", err)
	}
	if len(list) != len(guests) {
		t.Fatalf("got %d guests, want %d", len(list), len(guests))
	}
	for i, g := range guests {
		if !list[i].Matches(g.Criteria()) {
			t.Fatalf("position %d: got %s %s, want %s %s", i, list[i].FirstName, list[i].LastName, g.FirstName, g.LastName)
		}
	}
}

func testEmptyList(t *testing.T, s db.GuestStore) {
	list, err := s.ListGuests(context.Background())
	if err != nil {
		t.Fatalf("ListGuests: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
}

func testDuplicate(t *testing.T, s db.GuestStore) {
	seed(t, s)
	_, err := s.CreateGuest(context.Background(), &model.Guest{FirstName: "James", LastName: "Fox"})
	if !errors.Is(err, db.ErrGuestExists) {
		t.Fatalf("expected ErrGuestExists, got %v", err)
	}
}

func testNameRequired(t *testing.T, s db.GuestStore) {
	for _, g := range []*model.Guest{{FirstName: "Sonny"}, {LastName: "Hanback"}, {}} {
		if _, err := s.CreateGuest(context.Background(), g); !errors.Is(err, db.ErrNameRequired) {
			t.Fatalf("CreateGuest(%+v): expected ErrNameRequired, got %v", g, err)
		}
	}
}

func testDelete(t *testing.T, s db.GuestStore) {
	ctx := context.Background()
	seed(t, s)
	target := model.Criteria{FirstName: "Jessica", LastName: "Van Meter"}
	if err := s.DeleteGuest(ctx, target); err != nil {
		t.Fatalf("DeleteGuest: %v", err)
	}
	list, err := s.ListGuests(ctx)
	if err != nil {
		t.Fatalf("ListGuests: %v", err)
	}
	if len(list) != len(guests)-1 {
		t.Fatalf("got %d guests, want %d", len(list), len(guests)-1)
	}
	for _, g := range list {
		if g.Matches(target) {
			t.Fatalf("deleted guest still listed: %+v", g)
		}
	}
	if _, err := s.FindGuest(ctx, target); !errors.Is(err, db.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound after delete, got %v", err)
	}
}

func testDeleteUnknown(t *testing.T, s db.GuestStore) {
	err := s.DeleteGuest(context.Background(), model.Criteria{FirstName: "James", LastName: "Fox"})
	if !errors.Is(err, db.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound, got %v", err)
	}
}

func testFindUnknown(t *testing.T, s db.GuestStore) {
	seed(t, s)
	_, err := s.FindGuest(context.Background(), model.Criteria{FirstName: "James", LastName: "Miller"})
	if !errors.Is(err, db.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound, got %v", err)
	}
}

func testSubmitRSVP(t *testing.T, s db.GuestStore) {
	ctx := context.Background()
	seed(t, s)
	sonny := model.Criteria{FirstName: "Sonny", LastName: "Hanback"}

	for _, answer := range []bool{true, false} {
		updated, err := s.SubmitRSVP(ctx, sonny, answer)
		if err != nil {
			t.Fatalf("SubmitRSVP(%v): %v", answer, err)
		}
		if updated.RSVP == nil || *updated.RSVP != answer {
			t.Fatalf("SubmitRSVP(%v) returned %+v", answer, updated)
		}
		found, err := s.FindGuest(ctx, sonny)
		if err != nil {
			t.Fatalf("FindGuest: %v", err)
		}
		if found.RSVP == nil || *found.RSVP != answer {
			t.Fatalf("stored RSVP does not match %v: %+v", answer, found)
		}
	}

	list, err := s.ListGuests(ctx)
	if err != nil {
		t.Fatalf("ListGuests: %v", err)
	}
	if n := model.CountAttending(list); n != 0 {
		t.Fatalf("CountAttending = %d, want 0", n)
	}
}

func testSubmitRSVPUnknown(t *testing.T, s db.GuestStore) {
	_, err := s.SubmitRSVP(context.Background(), model.Criteria{FirstName: "Nobody", LastName: "Here"}, true)
	if !errors.Is(err, db.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound, got %v", err)
	}
}

func testConcurrentSubmit(t *testing.T, s db.GuestStore) {
	ctx := context.Background()
	seed(t, s)

	var wg sync.WaitGroup
	for _, g := range guests {
		wg.Add(1)
		go func(c model.Criteria) {
			defer wg.Done()
			if _, err := s.SubmitRSVP(ctx, c, true); err != nil {
				t.Errorf("SubmitRSVP(%+v): %v", c, err)
			}
		}(g.Criteria())
	}
	wg.Wait()

	list, err := s.ListGuests(ctx)
	if err != nil {
		t.Fatalf("ListGuests: %v", err)
	}
	if n := model.CountAttending(list); n != len(guests) {
		t.Fatalf("CountAttending = %d, want %d", n, len(guests))
	}
}
