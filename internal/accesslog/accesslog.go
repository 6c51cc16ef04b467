// Package accesslog records gate checks, listings and result fetches in an
// append-only table.
package accesslog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/db"
)

type Type string

const (
	TypeGate  Type = "gate_check"
	TypeList  Type = "list"
	TypeFetch Type = "fetch"
)

type Event struct {
	ID      string `json:"id"`
	Type    Type   `json:"type"`
	File    string `json:"file,omitempty"`
	Success bool   `json:"success"`
	// Viewer is the subject of the viewer token, "" when none was sent.
	Viewer     string `json:"viewer,omitempty"`
	RemoteAddr string `json:"remoteAddr,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

// Recorder appends access events.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// Reader lists recorded events, newest first.
type Reader interface {
	Recent(ctx context.Context, limit int) ([]Event, error)
}

// Nop discards every event; used when DB_DRIVER=none.
type Nop struct{}

func (Nop) Record(context.Context, Event) error { return nil }

type Repo struct {
	db     *sql.DB
	driver db.Driver
	now    func() time.Time
}

func NewRepo(dbh *sql.DB, driver db.Driver) *Repo {
	return &Repo{db: dbh, driver: driver, now: time.Now}
}

func (r *Repo) Record(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = r.now().Unix()
	}
	q := fmt.Sprintf(`INSERT INTO access_log (id, typ, file, success, viewer, remote_addr, request_id, created_at)
		 VALUES (%s,%s,%s,%s,%s,%s,%s,%s)`, r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6), r.ph(7), r.ph(8))
	_, err := r.db.ExecContext(ctx, q,
		e.ID, string(e.Type), e.File, e.Success, e.Viewer, e.RemoteAddr, e.RequestID, e.CreatedAt)
	return err
}

// DefaultLimit and MaxLimit bound Recent.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Recent returns up to limit events, newest first. A limit outside
// 1..MaxLimit is clamped.
func (r *Repo) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, typ, file, success, viewer, remote_addr, request_id, created_at
		   FROM access_log ORDER BY seq DESC LIMIT %s`, r.ph(1)), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var e Event
		var typ string
		if err := rows.Scan(&e.ID, &typ, &e.File, &e.Success, &e.Viewer, &e.RemoteAddr, &e.RequestID, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Type = Type(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) ph(n int) string { return db.Placeholder(r.driver, n) }
