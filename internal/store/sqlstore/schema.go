package sqlstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

const (
	table         = "hotelbooking"
	schemaLock    = "hotelbooking_schema"
	schemaTimeout = 10 * time.Second
)

// ids compare byte for byte on both drivers. MySQL character collations fold
// case or pad trailing spaces, so the MySQL id column is binary.
var ddl = map[string]string{
	DriverMySQL: `CREATE TABLE IF NOT EXISTS hotelbooking (
			seq BIGINT AUTO_INCREMENT PRIMARY KEY,
			id VARBINARY(64) NOT NULL UNIQUE,
			doc LONGTEXT NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	DriverPostgres: `CREATE TABLE IF NOT EXISTS hotelbooking (
			seq BIGSERIAL PRIMARY KEY,
			id VARCHAR(64) NOT NULL UNIQUE,
			doc TEXT NOT NULL
		)`,
}

// ensureSchema creates the bookings table. Concurrent starts serialize on an
// advisory lock.
func (s *Store) ensureSchema(ctx context.Context) error {
	stmt, ok := ddl[s.driver]
	if !ok {
		return errors.Errorf("schema: unsupported driver %q", s.driver)
	}

	lk, err := acquireLock(ctx, s.db, s.driver, schemaLock, schemaTimeout)
	if err != nil {
		return errors.Wrap(err, "schema lock")
	}
	defer lk.release()

	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "schema")
	}
	return nil
}
