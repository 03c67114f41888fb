package sqlstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/Jeomhps/hotelbooking-api/internal/booking"
	"github.com/Jeomhps/hotelbooking-api/internal/store"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Supported drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Store keeps bookings in one table: seq gives insertion order, id is unique
// and doc holds the booking as JSON.
type Store struct {
	db     *sqlx.DB
	driver string
	log    *logrus.Logger
}

var _ store.Repository = (*Store)(nil)

// Open connects, pings and ensures the schema.
// A "mysql://" prefix on the DSN is accepted and stripped.
func Open(ctx context.Context, driver, dsn string, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if driver == DriverMySQL {
		dsn = strings.TrimPrefix(dsn, "mysql://")
	}
	xdb, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driver)
	}
	if err := xdb.PingContext(ctx); err != nil {
		_ = xdb.Close()
		return nil, errors.Wrapf(err, "ping %s", driver)
	}
	s := &Store{db: xdb, driver: driver, log: log}
	if err := s.ensureSchema(ctx); err != nil {
		_ = xdb.Close()
		return nil, err
	}
	log.WithField("driver", driver).Info("sqlstore: ready")
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return store.Storage("ping", s.db.PingContext(ctx))
}

type row struct {
	Seq int64  `db:"seq"`
	ID  string `db:"id"`
	Doc string `db:"doc"`
}

func (s *Store) List(ctx context.Context) ([]booking.Booking, error) {
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, "SELECT seq, id, doc FROM "+table+" ORDER BY seq ASC"); err != nil {
		return nil, store.Storage("list", err)
	}
	out := make([]booking.Booking, 0, len(rows))
	for _, r := range rows {
		b, err := decodeDoc(r.ID, r.Doc)
		if err != nil {
			return nil, store.Storage("list", err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (booking.Booking, error) {
	var doc string
	err := s.db.GetContext(ctx, &doc, s.db.Rebind("SELECT doc FROM "+table+" WHERE id=?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, store.Storage("find", err)
	}
	b, err := decodeDoc(id, doc)
	if err != nil {
		return nil, store.Storage("find", err)
	}
	return b, nil
}

func (s *Store) Create(ctx context.Context, fields map[string]any) (booking.Booking, error) {
	var lookupErr error
	id, err := store.NewUniqueID(func(id string) bool {
		var n int
		if err := s.db.GetContext(ctx, &n, s.db.Rebind("SELECT COUNT(*) FROM "+table+" WHERE id=?"), id); err != nil {
			lookupErr = err
			return false
		}
		return n > 0
	})
	if lookupErr != nil {
		return nil, store.Storage("create", lookupErr)
	}
	if err != nil {
		return nil, store.Storage("create", err)
	}

	b := booking.New(id, fields)
	doc, err := json.Marshal(b)
	if err != nil {
		return nil, store.Storage("encode", err)
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("INSERT INTO "+table+" (id, doc) VALUES (?, ?)"), id, string(doc)); err != nil {
		return nil, store.Storage("create", err)
	}
	return b, nil
}

// Update reads, merges and writes the row inside one transaction holding a
// row lock, so concurrent updates of the same booking do not lose writes.
func (s *Store) Update(ctx context.Context, id string, fields map[string]any) (booking.Booking, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, store.Storage("update", err)
	}
	defer func() { _ = tx.Rollback() }()

	var doc string
	err = tx.GetContext(ctx, &doc, tx.Rebind("SELECT doc FROM "+table+" WHERE id=? FOR UPDATE"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, store.Storage("update", err)
	}
	cur, err := decodeDoc(id, doc)
	if err != nil {
		return nil, store.Storage("update", err)
	}

	next := cur.Merge(fields)
	raw, err := json.Marshal(next)
	if err != nil {
		return nil, store.Storage("encode", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind("UPDATE "+table+" SET doc=? WHERE id=?"), string(raw), id); err != nil {
		return nil, store.Storage("update", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, store.Storage("update", err)
	}
	return next, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM "+table+" WHERE id=?"), id)
	if err != nil {
		return store.Storage("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return store.Storage("delete", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// decodeDoc parses a stored document. The id column wins over any id in doc.
func decodeDoc(id, doc string) (booking.Booking, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(doc)))
	dec.UseNumber()
	var b booking.Booking
	if err := dec.Decode(&b); err != nil {
		return nil, errors.Wrapf(err, "decode booking %s", id)
	}
	if b == nil {
		b = booking.Booking{}
	}
	b[booking.FieldID] = id
	return b, nil
}
