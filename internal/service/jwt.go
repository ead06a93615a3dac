package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// RefreshTokenTTL is how long a refresh token stays usable.
const RefreshTokenTTL = 7 * 24 * time.Hour

var (
	errInvalidToken         = errors.New("invalid token")
	errTokenVersionMismatch = errors.New("token version mismatch")
	errMalformedRefresh     = errors.New("malformed refresh token")
)

// TokenClaims is the identity carried by a validated access token.
type TokenClaims struct {
	UserID       uint
	Email        string
	Role         string
	TokenVersion int
}

type JWTService struct {
	secretKey []byte
	issuer    string
	expiry    time.Duration
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	expiry := cfg.ExpirationTime
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &JWTService{
		secretKey: []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		expiry:    expiry,
	}
}

// Expiry is the access token lifetime.
func (s *JWTService) Expiry() time.Duration {
	return s.expiry
}

// GenerateToken creates a short-lived access token for the user.
func (s *JWTService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":       user.ID,
		"email":         user.Email,
		"role":          user.Role,
		"token_version": user.TokenVersion,
		"exp":           now.Add(s.expiry).Unix(),
		"iat":           now.Unix(),
	}
	if s.issuer != "" {
		claims["iss"] = s.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// GenerateRefreshToken creates an opaque refresh token "<userID>.<random>".
// The prefix lets the token be matched to its owner without scanning users.
func (s *JWTService) GenerateRefreshToken(userID uint) (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return strconv.FormatUint(uint64(userID), 10) + "." + base64.RawURLEncoding.EncodeToString(bytes), nil
}

// RefreshTokenOwner extracts the user ID prefix of a refresh token.
func (s *JWTService) RefreshTokenOwner(refreshToken string) (uint, error) {
	idPart, secret, ok := strings.Cut(refreshToken, ".")
	if !ok || secret == "" {
		return 0, errMalformedRefresh
	}
	id, err := strconv.ParseUint(idPart, 10, 32)
	if err != nil || id == 0 {
		return 0, errMalformedRefresh
	}
	return uint(id), nil
}

// HashRefreshToken hashes a refresh token for storage.
func (s *JWTService) HashRefreshToken(refreshToken string) (string, error) {
	// bcrypt only reads the first 72 bytes, which the random part fits in.
	hash, err := bcrypt.GenerateFromPassword([]byte(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash refresh token: %w", err)
	}
	return string(hash), nil
}

func (s *JWTService) VerifyRefreshToken(refreshToken, hashedToken string) bool {
	if hashedToken == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedToken), []byte(refreshToken)) == nil
}

// ValidateToken checks signature and expiry and returns the token identity.
func (s *JWTService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, errInvalidToken
	}
	version, ok := claims["token_version"].(float64)
	if !ok {
		return nil, errors.New("token version missing")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &TokenClaims{
		UserID:       uint(userID),
		Email:        email,
		Role:         role,
		TokenVersion: int(version),
	}, nil
}

// ValidateTokenWithVersion also rejects tokens issued before the user's
// current token version.
func (s *JWTService) ValidateTokenWithVersion(tokenString string, expectedVersion int) (*TokenClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenVersion != expectedVersion {
		return nil, errTokenVersionMismatch
	}
	return claims, nil
}
