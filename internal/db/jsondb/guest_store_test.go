// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quixsi/guestlist/internal/db"
	"github.com/quixsi/guestlist/internal/db/storetest"
	"github.com/quixsi/guestlist/internal/model"
)

func TestGuestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) db.GuestStore {
		store, err := NewGuestStore(filepath.Join(t.TempDir(), "guests.json"))
		if err != nil {
			t.Fatalf("NewGuestStore: %v", err)
		}
		return store
	})
}

func TestGuestStore_LoadBackup(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "guest_list_backup.json")
	backup := `[
  {"firstName": "James", "lastName": "Fox", "RSVP": true},
  {"firstName": "Lisa", "lastName": "Miller", "RSVP": false},
  {"firstName": "Sonny", "lastName": "Hanback"}
]`
	if err := os.WriteFile(filename, []byte(backup), 0644); err != nil {
		t.Fatalf("write backup: %v", err)
	}

	store, err := NewGuestStore(filename)
	if err != nil {
		t.Fatalf("NewGuestStore: %v", err)
	}
	list, err := store.ListGuests(context.Background())
	if err != nil {
		t.Fatalf("ListGuests: %v", err)
	}
	want := []model.Status{model.StatusComing, model.StatusNotComing, model.StatusNotSubmitted}
	if len(list) != len(want) {
		t.Fatalf("got %d guests, want %d", len(list), len(want))
	}
	for i, g := range list {
		if g.Status() != want[i] {
			t.Fatalf("guest %d status = %q, want %q", i, g.Status(), want[i])
		}
	}
}

func TestGuestStore_Persists(t *testing.T) {
	ctx := context.Background()
	filename := filepath.Join(t.TempDir(), "guests.json")

	store, err := NewGuestStore(filename)
	if err != nil {
		t.Fatalf("NewGuestStore: %v", err)
	}
	if _, err := store.CreateGuest(ctx, &model.Guest{FirstName: "Rick", LastName: "Grimes"}); err != nil {
		t.Fatalf("CreateGuest: %v", err)
	}
	if _, err := store.SubmitRSVP(ctx, model.Criteria{FirstName: "Rick", LastName: "Grimes"}, true); err != nil {
		t.Fatalf("SubmitRSVP: %v", err)
	}

	reopened, err := NewGuestStore(filename)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	g, err := reopened.FindGuest(ctx, model.Criteria{FirstName: "Rick", LastName: "Grimes"})
	if err != nil {
		t.Fatalf("FindGuest: %v", err)
	}
	if g.Status() != model.StatusComing {
		t.Fatalf("status = %q, want %q", g.Status(), model.StatusComing)
	}
}
