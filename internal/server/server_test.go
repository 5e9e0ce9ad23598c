// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quixsi/guestlist/internal/clock"
	"github.com/quixsi/guestlist/internal/db"
	"github.com/quixsi/guestlist/internal/db/jsondb"
	"github.com/quixsi/guestlist/internal/model"
)

var guestURLs = map[string]model.Criteria{
	"/guest/firstName/James/lastName/Fox":           {FirstName: "James", LastName: "Fox"},
	"/guest/firstName/Lisa/lastName/Miller":         {FirstName: "Lisa", LastName: "Miller"},
	"/guest/firstName/Jessica/lastName/Van%20Meter": {FirstName: "Jessica", LastName: "Van Meter"},
	"/guest/firstName/Sonny/lastName/Hanback":       {FirstName: "Sonny", LastName: "Hanback"},
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, db.GuestStore) {
	t.Helper()
	store, err := jsondb.NewGuestStore(filepath.Join(t.TempDir(), "guests.json"))
	if err != nil {
		t.Fatalf("NewGuestStore: %v", err)
	}
	return NewServer("guestlist-test", time.Time{}, nil, store), store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func responseMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var res struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return res.Response
}

func decodeGuests(t *testing.T, rec *httptest.ResponseRecorder) []*model.Guest {
	t.Helper()
	var guests []*model.Guest
	if err := json.Unmarshal(rec.Body.Bytes(), &guests); err != nil {
		t.Fatalf("decode guests %q: %v", rec.Body.String(), err)
	}
	return guests
}

func TestServer_InsertGuest(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/guest", `{"firstName":"James","lastName":"Fox"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if got := responseMessage(t, rec); got != msgGuestAdded {
		t.Fatalf("response = %q, want %q", got, msgGuestAdded)
	}

	rec = do(t, srv, http.MethodGet, "/guest", "")
	guests := decodeGuests(t, rec)
	if len(guests) != 1 || !guests[0].Matches(model.Criteria{FirstName: "James", LastName: "Fox"}) {
		t.Fatalf("unexpected guest list: %s", rec.Body.String())
	}
	if guests[0].Status() != model.StatusNotSubmitted {
		t.Fatalf("status = %q, want %q", guests[0].Status(), model.StatusNotSubmitted)
	}
}

func TestServer_InsertGuestFromQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/guest?firstName=Sonny&lastName=Hanback", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestServer_InsertGuestIgnoresAnswer(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/guest", `{"firstName":"James","lastName":"Fox","RSVP":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	rec = do(t, srv, http.MethodGet, "/guest/firstName/James/lastName/Fox", "")
	var guest model.Guest
	if err := json.Unmarshal(rec.Body.Bytes(), &guest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if guest.RSVP != nil {
		t.Fatalf("new guest must not carry an answer, got %v", *guest.RSVP)
	}
}

func TestServer_InsertGuestInvalid(t *testing.T) {
	tt := []struct {
		name   string
		target string
		body   string
	}{
		{name: "no args", target: "/guest"},
		{name: "missing last name", target: "/guest", body: `{"firstName":"Sonny"}`},
		{name: "missing first name", target: "/guest?lastName=Hanback"},
		{name: "blank names", target: "/guest", body: `{"firstName":" ","lastName":" "}`},
		{name: "broken json", target: "/guest", body: `{"firstName":`},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t)
			rec := do(t, srv, http.MethodPost, tc.target, tc.body)
			if rec.Code != http.StatusNotAcceptable {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotAcceptable)
			}
			if got := responseMessage(t, rec); got != msgNameRequired {
				t.Fatalf("response = %q, want %q", got, msgNameRequired)
			}
		})
	}
}

func TestServer_InsertDuplicate(t *testing.T) {
	srv, _ := newTestServer(t)

	do(t, srv, http.MethodPost, "/guest", `{"firstName":"James","lastName":"Fox"}`)
	rec := do(t, srv, http.MethodPost, "/guest", `{"firstName":"James","lastName":"Fox"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestServer_GetGuest(t *testing.T) {
	for target, criteria := range guestURLs {
		t.Run(target, func(t *testing.T) {
			srv, store := newTestServer(t)
			if _, err := store.CreateGuest(context.Background(), &model.Guest{FirstName: criteria.FirstName, LastName: criteria.LastName}); err != nil {
				t.Fatalf("CreateGuest: %v", err)
			}

			rec := do(t, srv, http.MethodGet, target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			var guest model.Guest
			if err := json.Unmarshal(rec.Body.Bytes(), &guest); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !guest.Matches(criteria) {
				t.Fatalf("got %+v, want %+v", guest, criteria)
			}
		})
	}
}

func TestServer_GuestNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/guest/firstName/James/lastName/Fox", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := responseMessage(t, rec); got != msgGuestNotFound {
		t.Fatalf("response = %q, want %q", got, msgGuestNotFound)
	}
}

func TestServer_DeleteGuest(t *testing.T) {
	srv, _ := newTestServer(t)

	do(t, srv, http.MethodPost, "/guest", `{"firstName":"Jessica","lastName":"Van Meter"}`)
	rec := do(t, srv, http.MethodDelete, "/guest/firstName/Jessica/lastName/Van%20Meter", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := responseMessage(t, rec); got != msgGuestDeleted {
		t.Fatalf("response = %q, want %q", got, msgGuestDeleted)
	}

	rec = do(t, srv, http.MethodGet, "/guest", "")
	if guests := decodeGuests(t, rec); len(guests) != 0 {
		t.Fatalf("expected empty guest list, got %s", rec.Body.String())
	}
}

func TestServer_DeleteGuestNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodDelete, "/guest/firstName/James/lastName/Fox", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := responseMessage(t, rec); got != msgGuestNotFound {
		t.Fatalf("response = %q, want %q", got, msgGuestNotFound)
	}
}

func TestServer_BlankNameSegments(t *testing.T) {
	srv, _ := newTestServer(t)

	tt := []struct {
		method string
		target string
		want   string
	}{
		{method: http.MethodGet, target: "/guest/firstName/%20/lastName/Hanback", want: msgNameRequired},
		{method: http.MethodDelete, target: "/guest/firstName/Sonny/lastName/%20", want: msgNameRequired},
		{method: http.MethodPost, target: "/rsvp/firstName/%20/lastName/Hanback/answer/true", want: msgAnswerRequired},
	}
	for _, tc := range tt {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := do(t, srv, tc.method, tc.target, "")
			if rec.Code != http.StatusNotAcceptable {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotAcceptable)
			}
			if got := responseMessage(t, rec); got != tc.want {
				t.Fatalf("response = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestServer_PathNamesAreTrimmed(t *testing.T) {
	srv, store := newTestServer(t)

	do(t, srv, http.MethodPost, "/guest", `{"firstName":" Sonny ","lastName":" Hanback "}`)

	tt := []struct {
		method string
		target string
	}{
		{method: http.MethodGet, target: "/guest/firstName/%20Sonny%20/lastName/%20Hanback%20"},
		{method: http.MethodGet, target: "/rsvp/firstName/%20Sonny/lastName/Hanback%20"},
		{method: http.MethodPost, target: "/rsvp/firstName/Sonny%20/lastName/%20Hanback/answer/true"},
		{method: http.MethodDelete, target: "/guest/firstName/%20Sonny%20/lastName/%20Hanback%20"},
	}
	for _, tc := range tt {
		rec := do(t, srv, tc.method, tc.target, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s: status = %d, want %d: %s", tc.method, tc.target, rec.Code, http.StatusOK, rec.Body.String())
		}
	}

	guests, err := store.ListGuests(context.Background())
	if err != nil {
		t.Fatalf("ListGuests: %v", err)
	}
	if len(guests) != 0 {
		t.Fatalf("expected the trimmed guest to be deleted, got %+v", guests)
	}
}

func TestServer_SubmitRSVP(t *testing.T) {
	tt := []struct {
		answer string
		want   model.Status
	}{
		{answer: "true", want: model.StatusComing},
		{answer: "false", want: model.StatusNotComing},
		{answer: "yes", want: model.StatusNotComing},
	}

	for _, tc := range tt {
		t.Run(tc.answer, func(t *testing.T) {
			srv, _ := newTestServer(t)
			do(t, srv, http.MethodPost, "/guest", `{"firstName":"Sonny","lastName":"Hanback"}`)

			rec := do(t, srv, http.MethodPost, "/rsvp/firstName/Sonny/lastName/Hanback/answer/"+tc.answer, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if got := responseMessage(t, rec); got != msgRSVPSubmitted {
				t.Fatalf("response = %q, want %q", got, msgRSVPSubmitted)
			}

			rec = do(t, srv, http.MethodGet, "/rsvp/firstName/Sonny/lastName/Hanback", "")
			var guest model.Guest
			if err := json.Unmarshal(rec.Body.Bytes(), &guest); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if guest.Status() != tc.want {
				t.Fatalf("status = %q, want %q", guest.Status(), tc.want)
			}
		})
	}
}

func TestServer_SubmitRSVPNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/rsvp/firstName/Sonny/lastName/Hanback/answer/true", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServer_NoRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/guest/firstName", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "PAGE_NOT_FOUND") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestServer_Deadline(t *testing.T) {
	store, err := jsondb.NewGuestStore(filepath.Join(t.TempDir(), "guests.json"))
	if err != nil {
		t.Fatalf("NewGuestStore: %v", err)
	}
	deadline := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	fake := clock.Fake(deadline.Add(-time.Hour))

	srv := NewServer("guestlist-test", deadline, nil, store)
	srv.clock = fake

	rec := do(t, srv, http.MethodPost, "/guest", `{"firstName":"Sonny","lastName":"Hanback"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("before deadline: status = %d, want %d", rec.Code, http.StatusCreated)
	}

	fake.Advance(2 * time.Hour)

	rec = do(t, srv, http.MethodPost, "/rsvp/firstName/Sonny/lastName/Hanback/answer/true", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("after deadline: status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if got := responseMessage(t, rec); got != msgDeadlinePassed {
		t.Fatalf("response = %q, want %q", got, msgDeadlinePassed)
	}

	rec = do(t, srv, http.MethodGet, "/guest", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reads must stay available: status = %d", rec.Code)
	}
}
