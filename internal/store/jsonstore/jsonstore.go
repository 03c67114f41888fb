package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/Jeomhps/hotelbooking-api/internal/booking"
	"github.com/Jeomhps/hotelbooking-api/internal/store"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Store keeps the booking collection in a single JSON document:
//
//	{"Hotelbooking": [ {...}, {...} ]}
//
// The whole document is rewritten on every mutation. The in-memory copy is
// only replaced once the new document is durably on disk, so a failed write
// leaves both views unchanged. Other top-level keys are preserved as-is.
//
// One process should own a document at a time; the mutex only serializes
// requests inside this process.
type Store struct {
	mu       sync.Mutex
	path     string
	log      *logrus.Logger
	bookings []booking.Booking
	extra    map[string]json.RawMessage
}

var _ store.Repository = (*Store)(nil)

// Open loads the document at path, creating it with an empty collection if
// the file does not exist yet.
func Open(path string, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{path: path, log: log, extra: map[string]json.RawMessage{}}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		raw = nil
	case err != nil:
		return nil, store.Storage("read", errors.Wrapf(err, "read %s", path))
	}

	missing := len(bytes.TrimSpace(raw)) == 0
	if !missing {
		if err := s.decode(raw); err != nil {
			return nil, store.Storage("read", errors.Wrapf(err, "decode %s", path))
		}
	}
	if s.bookings == nil {
		missing = true
		s.bookings = []booking.Booking{}
	}
	if missing {
		if err := s.flush(s.bookings); err != nil {
			return nil, err
		}
		log.WithField("path", path).Info("jsonstore: initialised document")
	}
	log.WithFields(logrus.Fields{"path": path, "bookings": len(s.bookings)}).Debug("jsonstore: opened")
	return s, nil
}

func (s *Store) decode(raw []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return err
	}
	for k, v := range top {
		if k == store.Collection {
			continue
		}
		s.extra[k] = v
	}
	coll, ok := top[store.Collection]
	if !ok || bytes.Equal(bytes.TrimSpace(coll), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(coll))
	dec.UseNumber()
	var list []booking.Booking
	if err := dec.Decode(&list); err != nil {
		return err
	}
	if list == nil {
		list = []booking.Booking{}
	}
	s.bookings = list
	return nil
}

// Path returns the document location.
func (s *Store) Path() string { return s.path }

func (s *Store) List(ctx context.Context) ([]booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]booking.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b.Clone())
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return s.bookings[i].Clone(), nil
}

func (s *Store) Create(ctx context.Context, fields map[string]any) (booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := store.NewUniqueID(func(id string) bool { return s.indexOf(id) >= 0 })
	if err != nil {
		return nil, store.Storage("create", err)
	}
	b := booking.New(id, fields)

	next := make([]booking.Booking, len(s.bookings), len(s.bookings)+1)
	copy(next, s.bookings)
	next = append(next, b)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	return b.Clone(), nil
}

func (s *Store) Update(ctx context.Context, id string, fields map[string]any) (booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	b := s.bookings[i].Merge(fields)

	next := make([]booking.Booking, len(s.bookings))
	copy(next, s.bookings)
	next[i] = b
	if err := s.commit(next); err != nil {
		return nil, err
	}
	return b.Clone(), nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return store.ErrNotFound
	}
	next := make([]booking.Booking, 0, len(s.bookings)-1)
	next = append(next, s.bookings[:i]...)
	next = append(next, s.bookings[i+1:]...)
	return s.commit(next)
}

// Ping checks that the document is still readable on disk.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return store.Storage("ping", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

// indexOf is a linear scan; callers hold s.mu.
func (s *Store) indexOf(id string) int {
	for i, b := range s.bookings {
		if b.ID() == id {
			return i
		}
	}
	return -1
}

// commit persists next and, on success, makes it the current collection.
func (s *Store) commit(next []booking.Booking) error {
	if err := s.flush(next); err != nil {
		s.log.WithError(err).WithField("path", s.path).Error("jsonstore: write failed")
		return err
	}
	s.bookings = next
	return nil
}

// flush writes the document to a temp file in the same directory, syncs it,
// renames it over the target and syncs the directory so the rename persists.
func (s *Store) flush(list []booking.Booking) error {
	top := make(map[string]any, len(s.extra)+1)
	for k, v := range s.extra {
		top[k] = v
	}
	top[store.Collection] = list

	data, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return store.Storage("encode", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return store.Storage("write", errors.Wrap(err, "create temp file"))
	}
	tmp := f.Name()
	cleanup := func() { _ = os.Remove(tmp) }

	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		cleanup()
		return store.Storage("write", errors.Wrap(err, "chmod temp file"))
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return store.Storage("write", errors.Wrap(err, "write temp file"))
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		cleanup()
		return store.Storage("write", errors.Wrap(err, "sync temp file"))
	}
	if err := f.Close(); err != nil {
		cleanup()
		return store.Storage("write", errors.Wrap(err, "close temp file"))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		cleanup()
		return store.Storage("write", errors.Wrapf(err, "replace %s", s.path))
	}
	// The new document is in place; a failed directory sync only weakens
	// crash durability, so it is reported without failing the write.
	if err := syncDir(dir); err != nil {
		s.log.WithError(err).WithField("dir", dir).Warn("jsonstore: directory sync failed")
	}
	return nil
}

// syncDir flushes directory metadata such as a completed rename.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return errors.Wrapf(err, "open dir %s", dir)
	}
	if err := d.Sync(); err != nil {
		_ = d.Close()
		return errors.Wrapf(err, "sync dir %s", dir)
	}
	return d.Close()
}
