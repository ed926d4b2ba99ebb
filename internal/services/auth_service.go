package services

import (
	"errors"
	"time"

	"workrate_backend/internal/auth"
	"workrate_backend/internal/config"
	"workrate_backend/internal/email"
	"workrate_backend/internal/logger"
	"workrate_backend/internal/models"
	"workrate_backend/internal/repositories"
	"workrate_backend/internal/services/dto"
	"workrate_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// VerificationTokenTTL - срок жизни токена подтверждения email
const VerificationTokenTTL = 24 * time.Hour

// ResetTokenTTL - срок жизни токена сброса пароля
const ResetTokenTTL = 1 * time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(req *dto.RefreshRequest) (*dto.TokenPairResponse, error)
	Logout(req *dto.LogoutRequest) error
	Me(userID string) (*dto.UserResponse, error)
	VerifyEmail(token string) error
	ForgotPassword(req *dto.ForgotPasswordRequest) error
	ResetPassword(token string, req *dto.ResetPasswordRequest) error
}

type authService struct {
	userRepo      repositories.UserRepository
	employeeRepo  repositories.EmployeeRepository
	companyRepo   repositories.CompanyRepository
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	employeeRepo repositories.EmployeeRepository,
	companyRepo repositories.CompanyRepository,
	emailProvider email.Provider,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		employeeRepo:  employeeRepo,
		companyRepo:   companyRepo,
		emailProvider: emailProvider,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Профиль создается сразу при регистрации, роль задает тип
	displayName := req.Email
	switch user.Role {
	case models.UserRoleEmployee:
		name := req.FullName
		if name == "" {
			name = req.Email
		}
		displayName = name
		employee := &models.Employee{
			UserID:     user.ID,
			FullName:   name,
			Visibility: models.VisibilityPublic,
		}
		if err := s.employeeRepo.Create(employee); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.Employee = employee
	case models.UserRoleCompanyAdmin:
		if req.CompanyName != "" {
			displayName = req.CompanyName
			company := &models.Company{
				UserID: user.ID,
				Name:   req.CompanyName,
			}
			if err := s.companyRepo.Create(company); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return nil, apperrors.ErrConflict(err, "company", "Company name is already taken")
				}
				return nil, apperrors.InternalError(err)
			}
			user.Company = company
		}
	}

	verificationToken, err := s.issueVerificationToken(user.ID)
	if err != nil {
		return nil, err
	}

	go s.sendRegistrationEmails(user.Email, displayName, verificationToken)

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:         buildUserResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountSuspended
	}
	if !user.EmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	// FindByEmail не делает preload, профиль добираем отдельно
	full, err := s.userRepo.FindByID(user.ID)
	if err == nil {
		user = full
	}

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:         buildUserResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Refresh ротирует refresh-токен: старый отзывается атомарно с выпуском
// нового. Повторное использование отозванного токена - признак кражи.
func (s *authService) Refresh(req *dto.RefreshRequest) (*dto.TokenPairResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if stored.IsRevoked {
		// Replay отозванного токена: отзываем всю семью токенов пользователя
		if err := s.userRepo.RevokeUserRefreshTokens(stored.UserID); err != nil {
			logger.WithError(err).Error("auth: failed to revoke token family", "user_id", stored.UserID)
		}
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountSuspended
	}

	if err := s.userRepo.RevokeRefreshToken(stored.Token); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokenPair(user)
}

func (s *authService) Logout(req *dto.LogoutRequest) error {
	// Logout идемпотентен: неизвестный токен не является ошибкой
	if err := s.userRepo.RevokeRefreshToken(req.RefreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) Me(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "auth", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return buildUserResponse(user), nil
}

func (s *authService) VerifyEmail(token string) error {
	stored, err := s.userRepo.FindEmailVerificationToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if stored.UsedAt != nil || time.Now().After(stored.ExpiresAt) {
		return apperrors.ErrInvalidToken
	}

	if err := s.userRepo.SetEmailVerified(stored.UserID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.MarkEmailVerificationTokenUsed(stored.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ForgotPassword всегда отвечает успехом, чтобы не раскрывать
// существование email в системе.
func (s *authService) ForgotPassword(req *dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := auth.GenerateOpaqueToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	reset := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(ResetTokenTTL),
	}
	if err := s.userRepo.CreatePasswordResetToken(reset); err != nil {
		return apperrors.InternalError(err)
	}

	go func() {
		if err := s.emailProvider.SendPasswordReset(user.Email, user.Email, token); err != nil {
			logger.WithError(err).Warn("auth: failed to send password reset email", "user_id", user.ID)
		}
	}()

	return nil
}

func (s *authService) ResetPassword(token string, req *dto.ResetPasswordRequest) error {
	stored, err := s.userRepo.FindPasswordResetToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if stored.UsedAt != nil || time.Now().After(stored.ExpiresAt) {
		return apperrors.ErrInvalidToken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(stored.UserID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.MarkPasswordResetTokenUsed(stored.ID); err != nil {
		return apperrors.InternalError(err)
	}
	// Смена пароля инвалидирует все активные сессии
	if err := s.userRepo.RevokeUserRefreshTokens(stored.UserID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) issueTokenPair(user *models.User) (*dto.TokenPairResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshValue, err := auth.GenerateOpaqueToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshValue,
		ExpiresAt: time.Now().Add(time.Duration(cfg.JWT.RefreshTTLDay) * 24 * time.Hour),
	}
	if err := s.userRepo.CreateRefreshToken(refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
	}, nil
}

func (s *authService) issueVerificationToken(userID string) (string, error) {
	token, err := auth.GenerateOpaqueToken()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	record := &models.EmailVerificationToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(VerificationTokenTTL),
	}
	if err := s.userRepo.CreateEmailVerificationToken(record); err != nil {
		return "", apperrors.InternalError(err)
	}
	return token, nil
}

func (s *authService) sendRegistrationEmails(to, name, verificationToken string) {
	if err := s.emailProvider.SendWelcome(to, name); err != nil {
		logger.WithError(err).Warn("auth: failed to send welcome email", "email", to)
	}
	if err := s.emailProvider.SendVerification(to, name, verificationToken); err != nil {
		logger.WithError(err).Warn("auth: failed to send verification email", "email", to)
	}
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Role:          string(user.Role),
		EmailVerified: user.EmailVerified,
		Employee:      buildEmployeeResponse(user.Employee),
		Company:       buildCompanyResponse(user.Company),
	}
}
