// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/guestlist/internal/db"
	"github.com/quixsi/guestlist/internal/model"
)

const bucketGuest = "guest_store"

func NewGuestStore(bdb *bolt.DB) (*GuestStore, error) {
	return &GuestStore{db: bdb}, bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketGuest))
		return err
	})
}

// GuestStore keeps guests in a single bbolt bucket. Keys are the bucket
// sequence so that iteration follows insertion order.
type GuestStore struct {
	db *bolt.DB
}

func (g *GuestStore) CreateGuest(ctx context.Context, guest *model.Guest) (*model.Guest, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateGuest")
	defer span.End()

	if !guest.Criteria().Valid() {
		span.RecordError(db.ErrNameRequired)
		return nil, db.ErrNameRequired
	}

	stored := *guest
	if stored.ID == uuid.Nil {
		span.AddEvent("uuid is nil, generate a new id")
		stored.ID = uuid.New()
	}
	if stored.CreatedAt == nil {
		now := time.Now()
		stored.CreatedAt = &now
	}

	j, err := json.Marshal(&stored)
	if err != nil {
		return nil, err
	}

	span.AddEvent("Update bucket")
	err = g.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketGuest))
		if _, _, err := find(bucket, stored.Criteria()); err == nil {
			return db.ErrGuestExists
		} else if !errors.Is(err, db.ErrGuestNotFound) {
			return err
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		return bucket.Put(itob(seq), j)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &stored, nil
}

func (g *GuestStore) DeleteGuest(ctx context.Context, c model.Criteria) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeleteGuest")
	defer span.End()
	span.SetAttributes(attribute.String("guest.first_name", c.FirstName), attribute.String("guest.last_name", c.LastName))

	span.AddEvent("Update bucket")
	err := g.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketGuest))
		key, _, err := find(bucket, c)
		if err != nil {
			return err
		}
		return bucket.Delete(key)
	})
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (g *GuestStore) ListGuests(ctx context.Context) ([]*model.Guest, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListGuests")
	defer span.End()

	span.AddEvent("View bucket")
	guests := []*model.Guest{}
	err := g.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketGuest))
		return bucket.ForEach(func(_, v []byte) error {
			guest := &model.Guest{}
			if err := json.Unmarshal(v, guest); err != nil {
				span.RecordError(err)
				return err
			}
			guests = append(guests, guest)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return guests, nil
}

func (g *GuestStore) FindGuest(ctx context.Context, c model.Criteria) (*model.Guest, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "FindGuest")
	defer span.End()

	span.AddEvent("View bucket")
	var guest *model.Guest
	err := g.db.View(func(tx *bolt.Tx) error {
		var err error
		_, guest, err = find(tx.Bucket([]byte(bucketGuest)), c)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return guest, nil
}

func (g *GuestStore) SubmitRSVP(ctx context.Context, c model.Criteria, answer bool) (*model.Guest, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "SubmitRSVP")
	defer span.End()
	span.SetAttributes(attribute.Bool("rsvp.answer", answer))

	var guest *model.Guest
	span.AddEvent("Update bucket")
	err := g.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketGuest))
		key, found, err := find(bucket, c)
		if err != nil {
			return err
		}
		now := time.Now()
		found.UpdatedAt = &now
		found.RSVP = model.Answer(answer)
		j, err := json.Marshal(found)
		if err != nil {
			return err
		}
		guest = found
		return bucket.Put(key, j)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return guest, nil
}

// find returns the first guest in insertion order matching c.
func find(bucket *bolt.Bucket, c model.Criteria) ([]byte, *model.Guest, error) {
	cursor := bucket.Cursor()
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		guest := &model.Guest{}
		if err := json.Unmarshal(v, guest); err != nil {
			return nil, nil, err
		}
		if guest.Matches(c) {
			// the key slice is only valid for the life of the transaction
			key := make([]byte, len(k))
			copy(key, k)
			return key, guest, nil
		}
	}
	return nil, nil, db.ErrGuestNotFound
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
