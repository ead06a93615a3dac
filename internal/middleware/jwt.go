package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/internal/constants"
	apperrors "github.com/greenhouse-labs/catalog/internal/errors"
	"github.com/greenhouse-labs/catalog/internal/model"
	"github.com/greenhouse-labs/catalog/internal/service"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/logger"
)

// UserLookup loads the account a token was issued for.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

type JWTMiddleware struct {
	jwtService *service.JWTService
	users      UserLookup
}

func NewJWTMiddleware(jwtService *service.JWTService, users UserLookup) *JWTMiddleware {
	return &JWTMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if !strings.HasPrefix(header, constants.AuthSchemeBearer) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, constants.AuthSchemeBearer))
	return token, token != ""
}

// authenticate resolves the bearer token to an active user whose token
// version still matches.
func (m *JWTMiddleware) authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := m.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if claims.TokenVersion != user.TokenVersion {
		return nil, apperrors.ErrInvalidToken
	}
	if user.Status != constants.StatusActive {
		return nil, apperrors.ErrUserInactive
	}
	return user, nil
}

func setIdentity(c *gin.Context, user *model.User) {
	c.Set(constants.GinKeyUserID, user.ID)
	c.Set(constants.GinKeyRole, user.Role)
	c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), user.ID))
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
}

// RequireAuth rejects requests without a valid access token. The role is read
// from the stored user so demotions apply immediately.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithOperation(c.Request.Context(), "middleware", "RequireAuth")

		token, ok := bearerToken(c)
		if !ok {
			logger.WarnWithContext(ctx, "Missing or malformed Authorization header").
				Path(c.Request.URL.Path).
				Log()
			abortUnauthorized(c)
			return
		}

		user, err := m.authenticate(ctx, token)
		if err != nil {
			logger.WarnWithContext(ctx, "Rejected access token").
				Path(c.Request.URL.Path).
				Err(err).
				Log()
			abortUnauthorized(c)
			return
		}

		setIdentity(c, user)
		logger.DebugWithContext(ctx, "User authenticated").
			Uint("user_id", user.ID).
			String("role", user.Role).
			Log()

		c.Next()
	}
}

// OptionalAuth sets the identity when a valid token is present and lets the
// request through either way.
func (m *JWTMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if user, err := m.authenticate(c.Request.Context(), token); err == nil {
				setIdentity(c, user)
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.GinKeyRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		logger.WarnWithContext(c.Request.Context(), "Insufficient role").
			String("role", role).
			Path(c.Request.URL.Path).
			Log()
		c.AbortWithStatusJSON(http.StatusForbidden, constants.BuildErrorResponse(constants.MsgForbidden, nil))
	}
}
