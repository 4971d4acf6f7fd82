package usecase

import (
	"context"
	"testing"
	"time"

	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"
	"review-hub/internal/dto/request"
	"review-hub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		JWT:          utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24},
		Confirmation: utils.ConfirmationConfig{ExpiryHours: 24, CodeLength: 16},
	}
}

func newAuthFixture() (*MockUserRepository, *MockConfirmationRepository, *MockMailer, AuthService) {
	userRepo := new(MockUserRepository)
	confRepo := new(MockConfirmationRepository)
	mail := new(MockMailer)
	repo := &repository.Repository{User: userRepo, Confirmation: confRepo}
	service := NewAuthService(repo, testConfig(), mail, zap.NewNop())
	return userRepo, confRepo, mail, service
}

func TestSignup_Success(t *testing.T) {
	userRepo, confRepo, mail, service := newAuthFixture()

	userRepo.On("FindByUsername", mock.Anything, "newuser").Return(nil, nil)
	userRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	confRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.EmailConfirmation")).Return(nil)
	mail.On("SendConfirmationCode", "new@example.com", "newuser", mock.AnythingOfType("string")).Return(nil)

	result, err := service.Signup(context.Background(), &request.SignupRequest{
		Username: "newuser",
		Email:    "new@example.com",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "newuser", result.Username)
	assert.Equal(t, "new@example.com", result.Email)
	userRepo.AssertExpectations(t)
	confRepo.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestSignup_ReservedUsername(t *testing.T) {
	userRepo, _, _, service := newAuthFixture()

	result, err := service.Signup(context.Background(), &request.SignupRequest{
		Username: "me",
		Email:    "me@example.com",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Nil(t, result)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_InvalidUsernameCharset(t *testing.T) {
	_, _, _, service := newAuthFixture()

	result, err := service.Signup(context.Background(), &request.SignupRequest{
		Username: "bad name!",
		Email:    "bad@example.com",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Nil(t, result)
}

func TestSignup_UsernameTaken(t *testing.T) {
	userRepo, _, _, service := newAuthFixture()

	existing := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "taken",
		Email:    "other@example.com",
	}
	userRepo.On("FindByUsername", mock.Anything, "taken").Return(existing, nil)

	result, err := service.Signup(context.Background(), &request.SignupRequest{
		Username: "taken",
		Email:    "new@example.com",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username already taken")
	assert.Nil(t, result)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_EmailRegistered(t *testing.T) {
	userRepo, _, _, service := newAuthFixture()

	existing := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "someoneelse",
		Email:    "used@example.com",
	}
	userRepo.On("FindByUsername", mock.Anything, "newuser").Return(nil, nil)
	userRepo.On("FindByEmail", mock.Anything, "used@example.com").Return(existing, nil)

	result, err := service.Signup(context.Background(), &request.SignupRequest{
		Username: "newuser",
		Email:    "used@example.com",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email already registered")
	assert.Nil(t, result)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_RepeatPairReissuesCode(t *testing.T) {
	userRepo, confRepo, mail, service := newAuthFixture()

	existing := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "repeat",
		Email:    "repeat@example.com",
	}
	userRepo.On("FindByUsername", mock.Anything, "repeat").Return(existing, nil)
	confRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.EmailConfirmation")).Return(nil)
	mail.On("SendConfirmationCode", "repeat@example.com", "repeat", mock.AnythingOfType("string")).Return(nil)

	result, err := service.Signup(context.Background(), &request.SignupRequest{
		Username: "repeat",
		Email:    "repeat@example.com",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "repeat", result.Username)
	// No second account: the existing one just gets a fresh code.
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	confRepo.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestSignup_MailFailureDoesNotFailSignup(t *testing.T) {
	userRepo, confRepo, mail, service := newAuthFixture()

	userRepo.On("FindByUsername", mock.Anything, "newuser").Return(nil, nil)
	userRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	confRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.EmailConfirmation")).Return(nil)
	mail.On("SendConfirmationCode", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	result, err := service.Signup(context.Background(), &request.SignupRequest{
		Username: "newuser",
		Email:    "new@example.com",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestIssueToken_Success(t *testing.T) {
	userRepo, confRepo, _, service := newAuthFixture()

	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
		Email:    "reader@example.com",
		Role:     entity.RoleUser,
	}

	code := "abc123def456"
	codeHash, err := utils.HashSecret(code)
	assert.NoError(t, err)

	confirmation := &entity.EmailConfirmation{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     user.ID,
		CodeHash:   codeHash,
		ExpiresAt:  time.Now().Add(time.Hour),
	}

	userRepo.On("FindByUsername", mock.Anything, "reader").Return(user, nil)
	confRepo.On("FindActiveByUserID", mock.Anything, user.ID).Return([]*entity.EmailConfirmation{confirmation}, nil)
	confRepo.On("MarkAsUsed", mock.Anything, confirmation.ID).Return(nil)

	result, err := service.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: code,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	// The issued token must parse back to the same user.
	claims, err := utils.ParseAccessToken(testConfig().JWT, result.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "reader", claims.Username)

	confRepo.AssertExpectations(t)
}

func TestIssueToken_UnknownUser(t *testing.T) {
	userRepo, _, _, service := newAuthFixture()

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

	result, err := service.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "whatever",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Nil(t, result)
}

func TestIssueToken_InvalidCode(t *testing.T) {
	userRepo, confRepo, _, service := newAuthFixture()

	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
	}

	codeHash, err := utils.HashSecret("the-real-code")
	assert.NoError(t, err)

	confirmation := &entity.EmailConfirmation{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     user.ID,
		CodeHash:   codeHash,
		ExpiresAt:  time.Now().Add(time.Hour),
	}

	userRepo.On("FindByUsername", mock.Anything, "reader").Return(user, nil)
	confRepo.On("FindActiveByUserID", mock.Anything, user.ID).Return([]*entity.EmailConfirmation{confirmation}, nil)

	result, err := service.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: "a-wrong-code",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired confirmation code")
	assert.Nil(t, result)
	confRepo.AssertNotCalled(t, "MarkAsUsed", mock.Anything, mock.Anything)
}

func TestIssueToken_NoActiveCodes(t *testing.T) {
	userRepo, confRepo, _, service := newAuthFixture()

	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
	}

	userRepo.On("FindByUsername", mock.Anything, "reader").Return(user, nil)
	confRepo.On("FindActiveByUserID", mock.Anything, user.ID).Return([]*entity.EmailConfirmation{}, nil)

	result, err := service.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: "expired-or-used",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired confirmation code")
	assert.Nil(t, result)
}
