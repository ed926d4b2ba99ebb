package repositories

import (
	"errors"
	"time"

	"workrate_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTokenNotFound = errors.New("token not found")
)

type UserRepository interface {
	// User operations
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	SetEmailVerified(userID string) error
	UpdatePassword(userID, passwordHash string) error

	// RefreshToken operations
	CreateRefreshToken(token *models.RefreshToken) error
	FindRefreshToken(token string) (*models.RefreshToken, error)
	RevokeRefreshToken(token string) error
	RevokeUserRefreshTokens(userID string) error

	// EmailVerificationToken operations
	CreateEmailVerificationToken(token *models.EmailVerificationToken) error
	FindEmailVerificationToken(token string) (*models.EmailVerificationToken, error)
	MarkEmailVerificationTokenUsed(id string) error

	// PasswordResetToken operations
	CreatePasswordResetToken(token *models.PasswordResetToken) error
	FindPasswordResetToken(token string) (*models.PasswordResetToken, error)
	MarkPasswordResetTokenUsed(id string) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// User operations

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Employee").Preload("Company").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) SetEmailVerified(userID string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("email_verified", true).Error
}

func (r *UserRepositoryImpl) UpdatePassword(userID, passwordHash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

// RefreshToken operations

func (r *UserRepositoryImpl) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *UserRepositoryImpl) FindRefreshToken(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.db.First(&rt, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *UserRepositoryImpl) RevokeRefreshToken(token string) error {
	return r.db.Model(&models.RefreshToken{}).Where("token = ?", token).
		Update("is_revoked", true).Error
}

func (r *UserRepositoryImpl) RevokeUserRefreshTokens(userID string) error {
	return r.db.Model(&models.RefreshToken{}).Where("user_id = ?", userID).
		Update("is_revoked", true).Error
}

// EmailVerificationToken operations

func (r *UserRepositoryImpl) CreateEmailVerificationToken(token *models.EmailVerificationToken) error {
	return r.db.Create(token).Error
}

func (r *UserRepositoryImpl) FindEmailVerificationToken(token string) (*models.EmailVerificationToken, error) {
	var t models.EmailVerificationToken
	err := r.db.First(&t, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *UserRepositoryImpl) MarkEmailVerificationTokenUsed(id string) error {
	now := time.Now()
	return r.db.Model(&models.EmailVerificationToken{}).Where("id = ?", id).
		Update("used_at", &now).Error
}

// PasswordResetToken operations

func (r *UserRepositoryImpl) CreatePasswordResetToken(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

func (r *UserRepositoryImpl) FindPasswordResetToken(token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.db.First(&t, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *UserRepositoryImpl) MarkPasswordResetTokenUsed(id string) error {
	now := time.Now()
	return r.db.Model(&models.PasswordResetToken{}).Where("id = ?", id).
		Update("used_at", &now).Error
}
