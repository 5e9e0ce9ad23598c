// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package conn opens a guest store from a connection string such as
// kvdb://testdata/guests.db, jsondb://testdata/guests.json or
// sqlite://testdata/guests.sqlite.
package conn

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/quixsi/guestlist/internal/db"
	"github.com/quixsi/guestlist/internal/db/jsondb"
	"github.com/quixsi/guestlist/internal/db/kvdb"
	"github.com/quixsi/guestlist/internal/db/sqlitedb"
)

// Store is a guest store together with the resources backing it.
type Store struct {
	db.GuestStore
	Scheme string

	closeFN func() error
}

func (s *Store) Close() error {
	if s.closeFN == nil {
		return nil
	}
	return s.closeFN()
}

func Open(connection string) (*Store, error) {
	u, err := url.Parse(connection)
	if err != nil {
		return nil, fmt.Errorf("parse db connection string: %w", err)
	}
	path := u.Host + u.Path
	if path == "" {
		return nil, fmt.Errorf("db connection string %q has no path", connection)
	}

	switch u.Scheme {
	case "kvdb":
		if err := mkdirFor(path); err != nil {
			return nil, err
		}
		bdb, err := bolt.Open(path, 0600, nil)
		if err != nil {
			return nil, fmt.Errorf("open bolt db: %w", err)
		}
		store, err := kvdb.NewGuestStore(bdb)
		if err != nil {
			bdb.Close()
			return nil, fmt.Errorf("initialize guest bucket: %w", err)
		}
		return &Store{GuestStore: store, Scheme: u.Scheme, closeFN: bdb.Close}, nil

	case "jsondb":
		store, err := jsondb.NewGuestStore(path)
		if err != nil {
			return nil, fmt.Errorf("initialize json guest store: %w", err)
		}
		return &Store{GuestStore: store, Scheme: u.Scheme}, nil

	case "sqlite":
		if err := mkdirFor(path); err != nil {
			return nil, err
		}
		sdb, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
		if err != nil {
			return nil, fmt.Errorf("open sqlite db: %w", err)
		}
		sdb.SetMaxOpenConns(1)
		store, err := sqlitedb.NewGuestStore(sdb)
		if err != nil {
			sdb.Close()
			return nil, fmt.Errorf("initialize guests table: %w", err)
		}
		return &Store{GuestStore: store, Scheme: u.Scheme, closeFN: sdb.Close}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", u.Scheme)
}

func mkdirFor(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create db directory: %w", err)
		}
	}
	return nil
}
