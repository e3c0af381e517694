package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "momopress/internal/errors"
	"momopress/internal/models"
)

// checkpointService persists per-account sync checkpoints.
type checkpointService struct {
	db *gorm.DB
}

// NewCheckpointService creates a new CheckpointServicer.
func NewCheckpointService(db *gorm.DB) CheckpointServicer {
	return &checkpointService{db: db}
}

// Get retrieves the checkpoint of phone
func (s *checkpointService) Get(ctx context.Context, phone string) (*models.SyncCheckpoint, error) {
	var cp models.SyncCheckpoint
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&cp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No sync has completed yet")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cp, nil
}

func (s *checkpointService) LastSyncedAt(ctx context.Context, phone string) (time.Time, error) {
	cp, err := s.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return cp.LastSyncedAt, nil
}

// Advance stores max(current, at) together with the run bookkeeping.
func (s *checkpointService) Advance(ctx context.Context, phone string, at, runAt time.Time, inserted int) (*models.SyncCheckpoint, error) {
	at = at.UTC().Truncate(time.Millisecond)
	runAt = runAt.UTC()

	var saved models.SyncCheckpoint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.SyncCheckpoint
		err := tx.Where("phone = ?", phone).First(&current).Error
		switch {
		case err == nil:
			if current.LastSyncedAt.After(at) {
				at = current.LastSyncedAt
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		saved = models.SyncCheckpoint{
			Phone:        phone,
			LastSyncedAt: at,
			LastRunAt:    &runAt,
			LastInserted: inserted,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_synced_at", "last_run_at", "last_inserted", "updated_at"}),
		}).Create(&saved).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}
