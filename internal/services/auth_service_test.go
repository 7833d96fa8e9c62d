package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"elegantstore/internal/models"
	"elegantstore/internal/services"
)

// MockUserRepository is a testify mock of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func userNotFound(email string) error {
	return fmt.Errorf("user with email %s: %w", email, models.ErrUserNotFound)
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, 24*time.Hour, zerolog.Nop())
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByEmail", "admin@example.com").Return(nil, userNotFound("admin@example.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, token, err := authService.Register("Admin", "admin@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Admin", user.Name)
	assert.Equal(t, "admin@example.com", user.Email)

	// The password is stored only as a hash.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	var ve *models.ValidationError
	_, _, err := authService.Register("", "admin@example.com", "password123")
	assert.ErrorAs(t, err, &ve)

	_, _, err = authService.Register("Admin", "", "password123")
	assert.ErrorAs(t, err, &ve)

	_, _, err = authService.Register("Admin", "admin@example.com", "")
	assert.ErrorAs(t, err, &ve)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	existing := &models.User{ID: "user-1", Email: "admin@example.com"}
	mockRepo.On("GetByEmail", "admin@example.com").Return(existing, nil).Once()

	_, _, err := authService.Register("Admin", "admin@example.com", "password123")
	assert.ErrorIs(t, err, models.ErrUserExists)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: string(hashed),
	}

	// Successful login returns the account plus a verifiable token.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	loggedIn, token, err := authService.Login("admin@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])

	// Wrong password is an invalid-credentials failure, not a not-found one.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err = authService.Login("admin@example.com", "wrongpassword")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, models.ErrUserNotFound)

	// Unknown email fails at the lookup stage.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, userNotFound("nobody@example.com")).Once()
	_, _, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	var ve *models.ValidationError
	_, _, err := authService.Login("", "password123")
	assert.ErrorAs(t, err, &ve)

	_, _, err = authService.Login("admin@example.com", "")
	assert.ErrorAs(t, err, &ve)

	mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// Valid token.
	validToken, err := authService.GenerateToken("user-123")
	assert.NoError(t, err)
	claims, err := authService.ValidateToken(validToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	// Garbage token.
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredString)
	assert.Error(t, err)

	// Token signed with a different secret.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(forgedString)
	assert.Error(t, err)
}
