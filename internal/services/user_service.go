package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "momopress/internal/errors"
	"momopress/internal/models"
)

// userService handles account-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new account
func (s *userService) CreateUser(ctx context.Context, phone, name, password string) (*models.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "phone and password are required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicatePhone
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Phone:    phone,
		Name:     strings.TrimSpace(name),
		Password: string(hashedPassword),
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByPhone retrieves an account by phone number
func (s *userService) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", strings.TrimSpace(phone)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// AttemptLogin checks the credentials and stamps LastLoginAt on success.
// Unknown phones and wrong passwords produce the same error.
func (s *userService) AttemptLogin(ctx context.Context, phone, password string) (*models.User, error) {
	user, err := s.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(user).Update("last_login_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.LastLoginAt = &now
	return user, nil
}

// UpdateName changes the display name of an account
func (s *userService) UpdateName(ctx context.Context, phone, name string) (*models.User, error) {
	user, err := s.GetUserByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.db.WithContext(ctx).Model(user).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.Name = name
	return user, nil
}

// UpdateBalance overwrites the stored balance with the value reported by an SMS.
func (s *userService) UpdateBalance(ctx context.Context, phone string, balance int64, at time.Time) error {
	if balance < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "balance cannot be negative")
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("phone = ?", phone).
		Updates(map[string]interface{}{
			"balance":            balance,
			"balance_updated_at": at.UTC(),
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListPhones returns the phone of every account, for scheduled syncs.
func (s *userService) ListPhones(ctx context.Context) ([]string, error) {
	var phones []string
	if err := s.db.WithContext(ctx).Model(&models.User{}).Order("phone").Pluck("phone", &phones).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return phones, nil
}
