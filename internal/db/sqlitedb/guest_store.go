// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package sqlitedb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/guestlist/internal/db"
	"github.com/quixsi/guestlist/internal/model"
)

//go:embed schema.sql
var embeddedSchema embed.FS

const selectGuest = `SELECT id, first_name, last_name, rsvp, created_at, updated_at FROM guests`

// NewGuestStore creates the guests table on sdb if needed.
func NewGuestStore(sdb *sql.DB) (*GuestStore, error) {
	b, err := embeddedSchema.ReadFile("schema.sql")
	if err != nil {
		return nil, err
	}
	if _, err := sdb.Exec(strings.TrimSpace(string(b))); err != nil {
		return nil, err
	}
	return &GuestStore{db: sdb}, nil
}

type GuestStore struct {
	db *sql.DB
}

func (g *GuestStore) CreateGuest(ctx context.Context, guest *model.Guest) (*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateGuest")
	defer span.End()

	if !guest.Criteria().Valid() {
		span.RecordError(db.ErrNameRequired)
		return nil, db.ErrNameRequired
	}

	stored := *guest
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt == nil {
		now := time.Now().UTC()
		stored.CreatedAt = &now
	}

	_, err := g.db.ExecContext(ctx,
		`INSERT INTO guests(id, first_name, last_name, rsvp, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		stored.ID.String(), stored.FirstName, stored.LastName, nullBool(stored.RSVP), stored.CreatedAt, stored.UpdatedAt,
	)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			err = db.ErrGuestExists
		}
		span.RecordError(err)
		return nil, err
	}
	return &stored, nil
}

func (g *GuestStore) DeleteGuest(ctx context.Context, c model.Criteria) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "DeleteGuest")
	defer span.End()

	res, err := g.db.ExecContext(ctx,
		`DELETE FROM guests WHERE first_name = ? AND last_name = ?`, c.FirstName, c.LastName)
	if err != nil {
		span.RecordError(err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		span.RecordError(db.ErrGuestNotFound)
		return db.ErrGuestNotFound
	}
	return nil
}

func (g *GuestStore) ListGuests(ctx context.Context) ([]*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "ListGuests")
	defer span.End()

	rows, err := g.db.QueryContext(ctx, selectGuest+` ORDER BY seq`)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer rows.Close()

	guests := []*model.Guest{}
	for rows.Next() {
		guest, err := scanGuest(rows)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		guests = append(guests, guest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return guests, nil
}

func (g *GuestStore) FindGuest(ctx context.Context, c model.Criteria) (*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "FindGuest")
	defer span.End()

	row := g.db.QueryRowContext(ctx,
		selectGuest+` WHERE first_name = ? AND last_name = ?`, c.FirstName, c.LastName)
	guest, err := scanGuest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = db.ErrGuestNotFound
		}
		span.RecordError(err)
		return nil, err
	}
	return guest, nil
}

func (g *GuestStore) SubmitRSVP(ctx context.Context, c model.Criteria, answer bool) (*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "SubmitRSVP")
	defer span.End()

	res, err := g.db.ExecContext(ctx,
		`UPDATE guests SET rsvp = ?, updated_at = ? WHERE first_name = ? AND last_name = ?`,
		answer, time.Now().UTC(), c.FirstName, c.LastName)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		span.RecordError(db.ErrGuestNotFound)
		return nil, db.ErrGuestNotFound
	}
	return g.FindGuest(ctx, c)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGuest(s scanner) (*model.Guest, error) {
	var (
		id        string
		guest     model.Guest
		rsvp      sql.NullBool
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	if err := s.Scan(&id, &guest.FirstName, &guest.LastName, &rsvp, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	guest.ID = parsed
	if rsvp.Valid {
		guest.RSVP = model.Answer(rsvp.Bool)
	}
	if createdAt.Valid {
		guest.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		guest.UpdatedAt = &updatedAt.Time
	}
	return &guest, nil
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
