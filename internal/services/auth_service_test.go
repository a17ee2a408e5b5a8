package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"foodbanked/internal/common"
	"foodbanked/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-at-least-32-characters"

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo  *MockUserRepository
	mockCodeRepo  *MockRegistrationCodeRepository
	mockCache     *MockCacheService
	service       AuthService
	passwordHash  string
	knownPassword string
}

func (suite *AuthServiceTestSuite) SetupSuite() {
	// bcrypt is slow on purpose; hash once for the whole suite.
	suite.knownPassword = "correct-horse-battery"
	hash, err := bcrypt.GenerateFromPassword([]byte(suite.knownPassword), bcrypt.MinCost)
	suite.Require().NoError(err)
	suite.passwordHash = string(hash)
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = &MockUserRepository{}
	suite.mockCodeRepo = &MockRegistrationCodeRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewAuthService(suite.mockUserRepo, suite.mockCodeRepo, suite.mockCache, testJWTSecret, 3600, 86400)

	suite.mockUserRepo.Test(suite.T())
	suite.mockCodeRepo.Test(suite.T())
	suite.mockCache.Test(suite.T())
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockCodeRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestSignup_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("GetByEmail", ctx, "new@example.org").Return(nil, common.ErrNotFound)
	suite.mockCodeRepo.On("GetByCode", ctx, "WELCOME1").Return(&models.RegistrationCode{Code: "WELCOME1"}, nil)
	suite.mockCodeRepo.On("MarkUsed", ctx, "WELCOME1", mock.AnythingOfType("uuid.UUID")).Return(nil)
	suite.mockUserRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := suite.service.Signup(ctx, "  New@Example.org ", "hunter2hunter2", "WELCOME1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "new@example.org", user.Email)
	assert.NotEqual(suite.T(), uuid.Nil, user.ID)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")))
}

func (suite *AuthServiceTestSuite) TestSignup_ShortPassword() {
	user, err := suite.service.Signup(context.Background(), "new@example.org", "short", "WELCOME1")
	assert.Nil(suite.T(), user)
	assert.True(suite.T(), common.IsValidation(err))
	assert.Contains(suite.T(), err.Error(), "at least 8 characters")
}

func (suite *AuthServiceTestSuite) TestSignup_DuplicateEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("GetByEmail", ctx, "taken@example.org").Return(&models.User{ID: uuid.New()}, nil)

	user, err := suite.service.Signup(ctx, "taken@example.org", "hunter2hunter2", "WELCOME1")
	assert.Nil(suite.T(), user)
	assert.True(suite.T(), common.IsValidation(err))
	assert.Contains(suite.T(), err.Error(), "already exists")
}

func (suite *AuthServiceTestSuite) TestSignup_UsedCode() {
	ctx := context.Background()

	suite.mockUserRepo.On("GetByEmail", ctx, "new@example.org").Return(nil, common.ErrNotFound)
	suite.mockCodeRepo.On("GetByCode", ctx, "STALE").Return(&models.RegistrationCode{Code: "STALE", IsUsed: true}, nil)

	user, err := suite.service.Signup(ctx, "new@example.org", "hunter2hunter2", "STALE")
	assert.Nil(suite.T(), user)
	assert.True(suite.T(), common.IsValidation(err))
	assert.Contains(suite.T(), err.Error(), "already been used")
}

func (suite *AuthServiceTestSuite) TestSignup_UnknownCode() {
	ctx := context.Background()

	suite.mockUserRepo.On("GetByEmail", ctx, "new@example.org").Return(nil, common.ErrNotFound)
	suite.mockCodeRepo.On("GetByCode", ctx, "NOPE").Return(nil, common.ErrNotFound)

	user, err := suite.service.Signup(ctx, "new@example.org", "hunter2hunter2", "NOPE")
	assert.Nil(suite.T(), user)
	assert.True(suite.T(), common.IsValidation(err))
	assert.Contains(suite.T(), err.Error(), "not valid")
}

// A claim raced by another signup surfaces MarkUsed's not-found as a
// used-code validation error rather than a server error.
func (suite *AuthServiceTestSuite) TestSignup_CodeClaimedConcurrently() {
	ctx := context.Background()

	suite.mockUserRepo.On("GetByEmail", ctx, "new@example.org").Return(nil, common.ErrNotFound)
	suite.mockCodeRepo.On("GetByCode", ctx, "RACED").Return(&models.RegistrationCode{Code: "RACED"}, nil)
	suite.mockCodeRepo.On("MarkUsed", ctx, "RACED", mock.AnythingOfType("uuid.UUID")).Return(common.ErrNotFound)

	user, err := suite.service.Signup(ctx, "new@example.org", "hunter2hunter2", "RACED")
	assert.Nil(suite.T(), user)
	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	userID := uuid.New()

	suite.mockCache.On("IsRateLimited", ctx, "login_attempts:admin@example.org", loginAttemptLimit, loginAttemptWindow).Return(false, nil)
	suite.mockUserRepo.On("GetByEmail", ctx, "admin@example.org").Return(&models.User{ID: userID, Email: "admin@example.org", PasswordHash: suite.passwordHash}, nil)
	suite.mockCache.On("SetString", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), 86400*time.Second).Return(nil)

	tokens, err := suite.service.Login(ctx, "admin@example.org", suite.knownPassword)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Bearer", tokens.TokenType)
	assert.Equal(suite.T(), 3600, tokens.ExpiresIn)
	assert.Equal(suite.T(), userID.String(), tokens.UserID)
	assert.NotEmpty(suite.T(), tokens.AccessToken)
	assert.NotEmpty(suite.T(), tokens.RefreshToken)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()

	suite.mockCache.On("IsRateLimited", ctx, "login_attempts:admin@example.org", loginAttemptLimit, loginAttemptWindow).Return(false, nil)
	suite.mockUserRepo.On("GetByEmail", ctx, "admin@example.org").Return(&models.User{ID: uuid.New(), PasswordHash: suite.passwordHash}, nil)
	suite.mockCache.On("IncrementRateLimit", ctx, "login_attempts:admin@example.org", loginAttemptWindow).Return(nil)

	tokens, err := suite.service.Login(ctx, "admin@example.org", "wrong-password")
	assert.Nil(suite.T(), tokens)
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmailSameError() {
	ctx := context.Background()

	suite.mockCache.On("IsRateLimited", ctx, "login_attempts:ghost@example.org", loginAttemptLimit, loginAttemptWindow).Return(false, nil)
	suite.mockUserRepo.On("GetByEmail", ctx, "ghost@example.org").Return(nil, common.ErrNotFound)
	suite.mockCache.On("IncrementRateLimit", ctx, "login_attempts:ghost@example.org", loginAttemptWindow).Return(nil)

	tokens, err := suite.service.Login(ctx, "ghost@example.org", "whatever123")
	assert.Nil(suite.T(), tokens)
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_RateLimited() {
	ctx := context.Background()

	suite.mockCache.On("IsRateLimited", ctx, "login_attempts:admin@example.org", loginAttemptLimit, loginAttemptWindow).Return(true, nil)

	tokens, err := suite.service.Login(ctx, "admin@example.org", suite.knownPassword)
	assert.Nil(suite.T(), tokens)
	assert.ErrorIs(suite.T(), err, ErrTooManyAttempts)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "GetByEmail", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestGenerateAndValidateToken() {
	ctx := context.Background()
	userID := uuid.New()

	suite.mockCache.On("SetString", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), 86400*time.Second).Return(nil)

	tokens, err := suite.service.GenerateTokens(ctx, userID)
	assert.NoError(suite.T(), err)

	claims, err := suite.service.ValidateToken(ctx, tokens.AccessToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), userID.String(), claims.UserID)
	assert.Equal(suite.T(), userID.String(), claims.Subject)
	assert.Equal(suite.T(), "foodbanked-auth", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestValidateToken_WrongSecret() {
	ctx := context.Background()
	userID := uuid.New()

	suite.mockCache.On("SetString", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), 86400*time.Second).Return(nil)

	other := NewAuthService(suite.mockUserRepo, suite.mockCodeRepo, suite.mockCache, "a-completely-different-secret-key", 3600, 86400)
	tokens, err := other.GenerateTokens(ctx, userID)
	suite.Require().NoError(err)

	claims, err := suite.service.ValidateToken(ctx, tokens.AccessToken)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), claims)
}

func (suite *AuthServiceTestSuite) TestRefreshToken_RotatesOnce() {
	ctx := context.Background()
	userID := uuid.New()

	var storedKey string
	suite.mockCache.On("SetString", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), 86400*time.Second).Return(nil).Run(func(args mock.Arguments) {
		storedKey = args.String(1)
	})

	tokens, err := suite.service.GenerateTokens(ctx, userID)
	suite.Require().NoError(err)

	tokenData := fmt.Sprintf("%s:%d", userID.String(), time.Now().Add(time.Hour).Unix())
	suite.mockCache.On("GetString", ctx, mock.AnythingOfType("string")).Return(tokenData, nil)
	suite.mockCache.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

	rotated, err := suite.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), userID.String(), rotated.UserID)
	assert.NotEqual(suite.T(), tokens.RefreshToken, rotated.RefreshToken)
	assert.NotEmpty(suite.T(), storedKey)
	suite.mockCache.AssertCalled(suite.T(), "Delete", ctx, mock.AnythingOfType("string"))
}

func (suite *AuthServiceTestSuite) TestRefreshToken_Expired() {
	ctx := context.Background()
	userID := uuid.New()

	tokenData := fmt.Sprintf("%s:%d", userID.String(), time.Now().Add(-time.Hour).Unix())
	suite.mockCache.On("GetString", ctx, mock.AnythingOfType("string")).Return(tokenData, nil)
	suite.mockCache.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

	rotated, err := suite.service.RefreshToken(ctx, "some-presented-token")
	assert.Nil(suite.T(), rotated)
	assert.ErrorContains(suite.T(), err, "expired")
}

func (suite *AuthServiceTestSuite) TestRefreshToken_Unknown() {
	ctx := context.Background()

	suite.mockCache.On("GetString", ctx, mock.AnythingOfType("string")).Return("", fmt.Errorf("redis: nil"))

	rotated, err := suite.service.RefreshToken(ctx, "never-issued")
	assert.Nil(suite.T(), rotated)
	assert.ErrorContains(suite.T(), err, "invalid refresh token")
}

func (suite *AuthServiceTestSuite) TestLogout_RevokesRefreshToken() {
	ctx := context.Background()

	suite.mockCache.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
		return len(key) > len("refresh_token:")
	})).Return(nil)

	err := suite.service.Logout(ctx, "issued-refresh-token")
	assert.NoError(suite.T(), err)
}
