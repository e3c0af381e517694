package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "momopress/internal/errors"
	"momopress/internal/metrics"
	"momopress/internal/models"
)

// inboxService stages uploaded SMS until the next sync reads them.
type inboxService struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

// NewInboxService creates a new InboxServicer. m may be nil.
func NewInboxService(db *gorm.DB, m *metrics.Metrics) InboxServicer {
	return &inboxService{db: db, metrics: m}
}

// Stage stores msgs, skipping any message already staged for phone.
func (s *inboxService) Stage(ctx context.Context, phone string, msgs []models.RawMessage) (int, error) {
	if len(msgs) == 0 {
		return 0, apperrors.ErrEmptyBatch
	}

	rows := make([]models.InboxMessage, 0, len(msgs))
	for _, m := range msgs {
		sender := strings.TrimSpace(m.Sender)
		if sender == "" || m.Body == "" || m.Timestamp.IsZero() {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "sender, body and timestamp are required")
		}
		rows = append(rows, models.InboxMessage{
			Phone:      phone,
			Sender:     sender,
			ReceivedAt: m.Timestamp.UTC().Truncate(time.Millisecond),
			BodyHash:   bodyHash(m.Body),
			Body:       m.Body,
		})
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}

	staged := int(result.RowsAffected)
	s.metrics.InboxStaged(staged)
	return staged, nil
}

func bodyHash(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}
