package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"foodbanked/internal/caching"
	"foodbanked/internal/common"
	"foodbanked/internal/models"
	"foodbanked/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown email and wrong password so
// the login response never reveals which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrTooManyAttempts is returned when the login rate limit trips.
var ErrTooManyAttempts = errors.New("too many login attempts, try again later")

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
)

// AuthService handles signup, login and JWT token management.
type AuthService interface {
	Signup(ctx context.Context, email, password, registrationCode string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	GenerateTokens(ctx context.Context, userID uuid.UUID) (*models.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repositories.UserRepository
	codeRepo   repositories.RegistrationCodeRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   int // Access token TTL in seconds
	refreshTTL int // Refresh token TTL in seconds
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo repositories.UserRepository, codeRepo repositories.RegistrationCodeRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int) AuthService {
	return &authService{
		userRepo:   userRepo,
		codeRepo:   codeRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTLSeconds,
		refreshTTL: refreshTTLSeconds,
	}
}

// Signup creates a user account gated on an unused registration code.
// Marking the code used and creating the user are sequential; the code
// is claimed first so a duplicate submission cannot reuse it.
func (s *authService) Signup(ctx context.Context, email, password, registrationCode string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, common.NewValidationError("email", "email is required")
	}
	if len(password) < 8 {
		return nil, common.NewValidationError("password", "password must be at least 8 characters")
	}
	if registrationCode == "" {
		return nil, common.NewValidationError("registration_code", "registration code is required")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, common.NewValidationError("email", "an account with this email already exists")
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	code, err := s.codeRepo.GetByCode(ctx, registrationCode)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewValidationError("registration_code", "registration code is not valid")
		}
		return nil, err
	}
	if code.IsUsed {
		return nil, common.NewValidationError("registration_code", "registration code has already been used")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.codeRepo.MarkUsed(ctx, registrationCode, user.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewValidationError("registration_code", "registration code has already been used")
		}
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues tokens. Attempts are rate
// limited per email to slow credential stuffing.
func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rateKey := fmt.Sprintf("login_attempts:%s", email)

	limited, err := s.cacheSvc.IsRateLimited(ctx, rateKey, loginAttemptLimit, loginAttemptWindow)
	if err != nil {
		log.Printf("Rate limit check failed for %s: %v", email, err)
	} else if limited {
		return nil, ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.recordAttempt(ctx, rateKey)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordAttempt(ctx, rateKey)
		return nil, ErrInvalidCredentials
	}

	return s.GenerateTokens(ctx, user.ID)
}

func (s *authService) recordAttempt(ctx context.Context, rateKey string) {
	if err := s.cacheSvc.IncrementRateLimit(ctx, rateKey, loginAttemptWindow); err != nil {
		log.Printf("Failed to record login attempt: %v", err)
	}
}

// GenerateTokens generates access and refresh tokens for a user
func (s *authService) GenerateTokens(ctx context.Context, userID uuid.UUID) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		UserID:  userID.String(),
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "foodbanked-auth",
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{"foodbanked-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %v", err)
	}

	refreshToken := s.generateSecureToken()
	refreshTokenHash, err := s.hashToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %v", err)
	}

	refreshTokenData := fmt.Sprintf("%s:%d", userID.String(), now.Unix()+int64(s.refreshTTL))
	cacheKey := fmt.Sprintf("refresh_token:%s", refreshTokenHash)
	if err := s.cacheSvc.SetString(ctx, cacheKey, refreshTokenData, time.Duration(s.refreshTTL)*time.Second); err != nil {
		log.Printf("Failed to store refresh token: %v", err)
		// Continue - token generation succeeded
	}

	return &models.TokenResponse{
		AccessToken:  accessTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenTTL,
		RefreshToken: refreshToken,
		UserID:       userID.String(),
		IssuedAt:     now,
	}, nil
}

// RefreshToken validates and rotates a refresh token. The presented
// token is deleted so each refresh token works exactly once.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	refreshTokenHash, err := s.hashToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %v", err)
	}

	cacheKey := fmt.Sprintf("refresh_token:%s", refreshTokenHash)
	tokenData, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	parts := strings.Split(tokenData, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid token data")
	}

	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token expiry")
	}
	if time.Now().Unix() > expiry {
		s.cacheSvc.Delete(ctx, cacheKey)
		return nil, fmt.Errorf("refresh token expired")
	}

	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	if err := s.cacheSvc.Delete(ctx, cacheKey); err != nil {
		log.Printf("Failed to rotate refresh token: %v", err)
	}

	return s.GenerateTokens(ctx, userID)
}

// ValidateToken validates JWT access token
func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	jwtToken, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	if claims, ok := jwtToken.Claims.(*TokenClaims); ok && jwtToken.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}

// Logout revokes a refresh token. Access tokens stay valid until expiry.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	refreshTokenHash, err := s.hashToken(refreshToken)
	if err != nil {
		return fmt.Errorf("failed to hash refresh token: %v", err)
	}
	return s.cacheSvc.Delete(ctx, fmt.Sprintf("refresh_token:%s", refreshTokenHash))
}

// generateSecureToken generates a cryptographically secure random token
func (s *authService) generateSecureToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

// hashToken creates a SHA-256 hash of the token for secure storage
func (s *authService) hashToken(token string) (string, error) {
	hasher := sha256.New()
	if _, err := hasher.Write([]byte(token)); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
