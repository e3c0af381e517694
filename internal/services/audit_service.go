package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	apperrors "momopress/internal/errors"
	"momopress/internal/logger"
	"momopress/internal/models"
	"momopress/internal/pagination"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to the calling operation.
func (s *auditService) Log(ctx context.Context, phone, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		Phone:        phone,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"phone", phone,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// List returns the audit trail of phone, newest first.
func (s *auditService) List(ctx context.Context, phone string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	page.Defaults()

	query := s.db.WithContext(ctx).Model(&models.AuditLog{}).Where("phone = ?", phone)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.AuditLog
	if err := query.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(logs, page.Page, page.PageSize, total)
	return &resp, nil
}
