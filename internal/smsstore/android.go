package smsstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"momopress/internal/logger"
	"momopress/internal/models"
)

const androidQuery = `SELECT address, body, date FROM sms
WHERE type = ? AND (? = '' OR address = ?) AND date >= ? AND date <= ?
ORDER BY date DESC`

// AndroidSource reads the sms table of a copied Android mmssms.db.
type AndroidSource struct {
	db   *sql.DB
	path string
}

// NewAndroidSource opens the database read-only.
func NewAndroidSource(path string) (*AndroidSource, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sms database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sms database: %w", err)
	}
	return &AndroidSource{db: db, path: path}, nil
}

func (s *AndroidSource) Close() error {
	return s.db.Close()
}

// ListMessages returns the received messages from sender within [from, to],
// newest first. A zero from or to leaves that side open.
func (s *AndroidSource) ListMessages(ctx context.Context, owner string, from, to time.Time, sender string) ([]models.RawMessage, error) {
	lo := int64(0)
	if !from.IsZero() {
		lo = from.UnixMilli()
	}
	hi := int64(1<<63 - 1)
	if !to.IsZero() {
		hi = to.UnixMilli()
	}

	rows, err := s.db.QueryContext(ctx, androidQuery, smsTypeInbox, sender, sender, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("query sms: %w", err)
	}
	defer rows.Close()

	var out []models.RawMessage
	for rows.Next() {
		var (
			address string
			body    sql.NullString
			date    int64
		)
		if err := rows.Scan(&address, &body, &date); err != nil {
			return nil, fmt.Errorf("scan sms: %w", err)
		}
		if !body.Valid {
			continue
		}
		out = append(out, models.RawMessage{
			Sender:    address,
			Body:      body.String,
			Timestamp: time.UnixMilli(date).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sms: %w", err)
	}

	logger.For(logger.ComponentSMSStore).Debugw("Read android sms",
		"path", s.path,
		"owner", owner,
		"matched", len(out),
	)
	return out, nil
}
