package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// advisory is a named, connection-scoped lock held on a dedicated connection.
type advisory struct {
	conn     *sql.Conn
	driver   string
	lockName string
	acquired bool
}

// acquireLock takes the named advisory lock (GET_LOCK on MySQL,
// pg_advisory_lock on PostgreSQL), waiting up to timeout.
func acquireLock(ctx context.Context, db *sqlx.DB, driver, name string, timeout time.Duration) (*advisory, error) {
	c, err := db.Conn(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "advisory lock: conn")
	}
	a := &advisory{conn: c, driver: driver, lockName: name}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout+500*time.Millisecond)
		defer cancel()
	}

	switch driver {
	case DriverMySQL:
		var got sql.NullInt64
		if err := c.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", name, int(timeout.Seconds())).Scan(&got); err != nil {
			_ = c.Close()
			return nil, err
		}
		if !got.Valid || got.Int64 != 1 {
			_ = c.Close()
			return nil, errors.Errorf("could not acquire MySQL advisory lock %q (result=%v)", name, got)
		}
	case DriverPostgres:
		// Blocks until granted; ctx bounds the wait.
		if _, err := c.ExecContext(ctx, "SELECT pg_advisory_lock(hashtext($1))", name); err != nil {
			_ = c.Close()
			return nil, err
		}
	default:
		_ = c.Close()
		return nil, errors.Errorf("advisory lock: unsupported driver %q", driver)
	}
	a.acquired = true
	return a, nil
}

func (a *advisory) release() {
	if a == nil || a.conn == nil {
		return
	}
	if a.acquired {
		q := "SELECT RELEASE_LOCK(?)"
		if a.driver == DriverPostgres {
			q = "SELECT pg_advisory_unlock(hashtext($1))"
		}
		_, _ = a.conn.ExecContext(context.Background(), q, a.lockName)
	}
	_ = a.conn.Close()
}
