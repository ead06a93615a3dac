package service

import (
	"context"
	"strings"
	"time"

	"github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/dto"
	apperrors "github.com/greenhouse-labs/catalog/internal/errors"
	"github.com/greenhouse-labs/catalog/internal/model"
	"github.com/greenhouse-labs/catalog/internal/repository"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"github.com/greenhouse-labs/catalog/pkg/querybuilder"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repoUser   *repository.UserRepository
	jwtService *JWTService
	listConfig querybuilder.Config
}

func NewUserService(repo *repository.UserRepository, jwtService *JWTService, limits config.QueryConfig) *UserService {
	return &UserService{
		repoUser:   repo,
		jwtService: jwtService,
		listConfig: dto.UserQueryConfig(limits),
	}
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetByID")

	logger.InfoWithContext(ctx, "Get user by ID").
		Uint("user_id", id).
		Log()

	user, err := s.repoUser.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			logger.InfoWithContext(ctx, "User not found").
				Uint("user_id", id).
				Log()
			return nil, apperrors.ErrUserNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to get user by ID").
			Uint("user_id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := dto.NewUserResponse(*user)
	return &response, nil
}

// List returns one page of users. Password hashes are dropped by the DTO
// mapping.
func (s *UserService) List(ctx context.Context, params querybuilder.Params) (*querybuilder.Result[dto.UserResponse], error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListUsers")

	result, err := s.repoUser.List(ctx, params, s.listConfig)
	if err != nil {
		logger.WarnWithContext(ctx, "User list query failed").
			Err(err).
			Log()
		return nil, apperrors.FromQueryError(err)
	}

	logger.InfoWithContext(ctx, "Users fetched successfully").
		Int64("total", result.Pagination.TotalItems).
		Int("page", result.Pagination.CurrentPage).
		Int("returned_count", len(result.Data)).
		Log()

	return querybuilder.MapResult(result, dto.NewUserResponse), nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *UserService) checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateEmail checks that no live user already uses email
func (s *UserService) validateEmail(ctx context.Context, email string) error {
	_, err := s.repoUser.GetByEmail(ctx, email)
	if err == nil {
		return apperrors.ErrEmailExists
	}
	if isNotFound(err) {
		return nil
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}

// CreateUser creates a new user. Only admins reach this operation, so the
// requested role is honoured.
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateUser")

	email := normalizeEmail(req.Email)
	logger.InfoWithContext(ctx, "Creating new user").
		String("email", email).
		Log()

	if err := s.validateEmail(ctx, email); err != nil {
		logger.WarnWithContext(ctx, "Email validation failed").
			String("email", email).
			Err(err).
			Log()
		return nil, err
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	role := req.Role
	if role == "" {
		role = constants.RoleUser
	}

	user := &model.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        req.Phone,
		Password:     hashedPassword,
		Role:         role,
		Status:       constants.StatusActive,
		TokenVersion: 1,
	}

	if err := s.repoUser.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User created successfully").
		String("email", email).
		Uint("user_id", user.ID).
		Log()

	response := dto.NewUserResponse(*user)
	return &response, nil
}

// UpdateUser updates profile fields. Role and status changes need an admin.
func (s *UserService) UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest, actor Actor) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateUser")

	if !actor.CanAccessUser(id) {
		return nil, apperrors.ErrForbidden
	}
	if (req.Role != "" || req.Status != "") && !actor.IsAdmin() {
		logger.WarnWithContext(ctx, "Non-admin attempted to change role or status").
			Uint("user_id", id).
			Log()
		return nil, apperrors.ErrForbidden
	}

	fields := map[string]interface{}{}
	if req.FirstName != "" {
		fields["first_name"] = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		fields["last_name"] = strings.TrimSpace(req.LastName)
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Role != "" {
		fields["role"] = req.Role
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}

	if len(fields) > 0 {
		if err := s.repoUser.Update(ctx, id, fields); err != nil {
			if isNotFound(err) {
				return nil, apperrors.ErrUserNotFound
			}
			logger.ErrorWithContext(ctx, "Failed to update user").
				Uint("user_id", id).
				Err(err).
				Log()
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	return s.GetByID(ctx, id)
}

// UpdatePassword changes a password. Users must prove the current one; an
// admin resetting someone else's password does not.
func (s *UserService) UpdatePassword(ctx context.Context, id uint, req *dto.UpdatePasswordRequest, actor Actor) error {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdatePassword")

	logger.InfoWithContext(ctx, "Updating user password").
		Uint("user_id", id).
		Log()

	if !actor.CanAccessUser(id) {
		return apperrors.ErrForbidden
	}

	if req.NewPassword != req.ConfirmPassword {
		logger.WarnWithContext(ctx, "New password confirmation mismatch").
			Uint("user_id", id).
			Log()
		return apperrors.ErrPasswordMismatch
	}

	user, err := s.repoUser.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if actor.UserID == id && !s.checkPassword(user.Password, req.CurrentPassword) {
		logger.WarnWithContext(ctx, "Current password verification failed").
			Uint("user_id", id).
			Log()
		return apperrors.ErrIncorrectPassword
	}

	hashedPassword, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.repoUser.UpdatePassword(ctx, id, hashedPassword); err != nil {
		logger.ErrorWithContext(ctx, "Failed to update password in database").
			Uint("user_id", id).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User password updated successfully").
		Uint("user_id", id).
		Log()

	return nil
}

// AuthenticateUser verifies user credentials
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "AuthenticateUser")
	email = normalizeEmail(email)

	user, err := s.repoUser.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			logger.LogAuth(email, "login", false)
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.ErrorWithContext(ctx, "Failed to get user for authentication").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.checkPassword(user.Password, password) {
		logger.LogAuth(email, "login", false)
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != constants.StatusActive {
		logger.LogAuth(email, "login", false)
		return nil, apperrors.ErrUserInactive
	}

	if err := s.repoUser.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds without the timestamp.
		logger.WarnWithContext(ctx, "Failed to update last login timestamp").
			Uint("user_id", user.ID).
			Err(err).
			Log()
	}

	logger.LogAuth(email, "login", true)
	return user, nil
}

// issueTokens creates an access token and a rotated refresh token for user.
func (s *UserService) issueTokens(ctx context.Context, user *model.User) (*dto.UserLoginResponse, error) {
	if s.jwtService == nil {
		logger.ErrorWithContext(ctx, "JWT service not initialized").Log()
		return nil, apperrors.ErrServiceUnavailable
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshTokenHash, err := s.jwtService.HashRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	expires := time.Now().UTC().Add(RefreshTokenTTL)
	if err := s.repoUser.UpdateRefreshToken(ctx, user.ID, refreshTokenHash, &expires); err != nil {
		logger.ErrorWithContext(ctx, "Failed to store refresh token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.UserLoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtService.Expiry().Seconds()),
		User:         dto.NewUserResponse(*user),
	}, nil
}

// LoginUser authenticates user and returns JWT + refresh token
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*dto.UserLoginResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "LoginUser")

	user, err := s.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}

	response, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "User logged in successfully").
		Uint("user_id", user.ID).
		Log()

	return response, nil
}

// RefreshToken exchanges a refresh token for new tokens. The old refresh
// token and every access token issued before stop working.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*dto.UserLoginResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "RefreshToken")

	if s.jwtService == nil {
		return nil, apperrors.ErrServiceUnavailable
	}

	userID, err := s.jwtService.RefreshTokenOwner(refreshToken)
	if err != nil {
		logger.WarnWithContext(ctx, "Malformed refresh token").Err(err).Log()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.repoUser.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.jwtService.VerifyRefreshToken(refreshToken, user.RefreshTokenHash) {
		logger.WarnWithContext(ctx, "Invalid refresh token").
			Uint("user_id", user.ID).
			Log()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if user.RefreshTokenExpires != nil && user.RefreshTokenExpires.Before(time.Now()) {
		logger.WarnWithContext(ctx, "Refresh token expired").
			Uint("user_id", user.ID).
			Log()
		_ = s.repoUser.UpdateRefreshToken(ctx, user.ID, "", nil)
		return nil, apperrors.ErrTokenExpired
	}

	if user.Status != constants.StatusActive {
		return nil, apperrors.ErrUserInactive
	}

	user.TokenVersion++
	if err := s.repoUser.UpdateTokenVersion(ctx, user.ID, user.TokenVersion); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "Token refreshed successfully").
		Uint("user_id", user.ID).
		Int("new_token_version", user.TokenVersion).
		Log()

	return response, nil
}

// LogoutUser invalidates every token held by the user.
func (s *UserService) LogoutUser(ctx context.Context, userID uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "LogoutUser")

	user, err := s.repoUser.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.repoUser.UpdateTokenVersion(ctx, userID, user.TokenVersion+1); err != nil {
		logger.ErrorWithContext(ctx, "Failed to update token version on logout").
			Uint("user_id", userID).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.repoUser.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		logger.WarnWithContext(ctx, "Failed to clear refresh token on logout").
			Uint("user_id", userID).
			Err(err).
			Log()
	}

	logger.LogAuth(user.Email, "logout", true)
	return nil
}

// DeleteUser soft deletes a user. Nobody can delete their own account.
func (s *UserService) DeleteUser(ctx context.Context, id uint, actor Actor) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteUser")

	logger.DebugWithContext(ctx, "Attempting to delete user").
		Uint("target_user_id", id).
		Uint("requesting_user_id", actor.UserID).
		Log()

	if id == actor.UserID {
		logger.WarnWithContext(ctx, "User attempted to delete themselves").
			Uint("user_id", id).
			Log()
		return apperrors.ErrSelfDeletion
	}
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}

	if err := s.repoUser.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.ErrUserNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to delete user").
			Uint("user_id", id).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User deleted successfully").
		Uint("target_user_id", id).
		Uint("requesting_user_id", actor.UserID).
		Log()

	return nil
}
