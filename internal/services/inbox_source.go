package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"momopress/internal/models"
)

// inboxSource reads staged messages back as a MessageSource.
type inboxSource struct {
	db *gorm.DB
}

// NewInboxSource creates a MessageSource over the staged inbox.
func NewInboxSource(db *gorm.DB) MessageSource {
	return &inboxSource{db: db}
}

// ListMessages returns the staged messages of owner newest first, the order
// a phone inbox lists them in.
// A zero from or to leaves that side open.
func (s *inboxSource) ListMessages(ctx context.Context, owner string, from, to time.Time, sender string) ([]models.RawMessage, error) {
	query := s.db.WithContext(ctx).Where("phone = ?", owner)
	if sender != "" {
		query = query.Where("sender = ?", sender)
	}
	if !from.IsZero() {
		query = query.Where("received_at >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("received_at <= ?", to.UTC())
	}

	var rows []models.InboxMessage
	if err := query.Order("received_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.RawMessage, len(rows))
	for i := range rows {
		out[i] = rows[i].Raw()
	}
	return out, nil
}
