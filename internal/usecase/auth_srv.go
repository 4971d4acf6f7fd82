package usecase

import (
	"context"
	"fmt"
	"time"

	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"
	"review-hub/internal/dto/request"
	"review-hub/internal/dto/response"
	"review-hub/pkg/mailer"
	"review-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository // grouping user + confirmation repos
	config *utils.Config
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	// 1. Validate input (the username rule also rejects the reserved "me")
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check username
	byUsername, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}

	// 3. Repeat signup with the exact same pair reissues a code instead
	// of failing, so a lost email does not lock the account out.
	if byUsername != nil {
		if byUsername.Email != req.Email {
			return nil, fmt.Errorf("username already taken")
		}
		if err := s.issueConfirmation(ctx, byUsername); err != nil {
			return nil, err
		}
		return &response.SignupResponse{Username: byUsername.Username, Email: byUsername.Email}, nil
	}

	// 4. Check email
	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if byEmail != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// 5. Create user with the default role
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: req.Username,
		Email:    req.Email,
		Role:     entity.RoleUser,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("create user: %w", err)
	}

	// 6. Issue and mail the confirmation code
	if err := s.issueConfirmation(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &response.SignupResponse{Username: user.Username, Email: user.Email}, nil
}

// issueConfirmation stores a hashed single-use code and mails the
// plaintext to the user. Mail failures are logged but do not fail the
// signup: the code can be reissued by signing up again.
func (s *authService) issueConfirmation(ctx context.Context, user *entity.User) error {
	code := utils.GenerateConfirmationCode(s.config.Confirmation.CodeLength)

	codeHash, err := utils.HashSecret(code)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return fmt.Errorf("hash confirmation code: %w", err)
	}

	now := time.Now()
	confirmation := &entity.EmailConfirmation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		CodeHash:  codeHash,
		ExpiresAt: now.Add(time.Duration(s.config.Confirmation.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Confirmation.Create(ctx, confirmation); err != nil {
		s.log.Error("Failed to store confirmation", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("store confirmation: %w", err)
	}

	if err := s.mail.SendConfirmationCode(user.Email, user.Username, code); err != nil {
		s.log.Warn("Confirmation email not delivered",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
	}

	return nil
}

func (s *authService) IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token request validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Unknown username is 404, not 400: the client may simply not
	// have signed up yet.
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to look up user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", req.Username)
	}

	// 3. Match the presented code against any active confirmation
	confirmations, err := s.repo.Confirmation.FindActiveByUserID(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to load confirmations", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("load confirmations: %w", err)
	}

	var matched *entity.EmailConfirmation
	for _, c := range confirmations {
		if utils.CheckSecretHash(req.ConfirmationCode, c.CodeHash) {
			matched = c
			break
		}
	}
	if matched == nil {
		s.log.Warn("Invalid confirmation code", zap.String("username", req.Username))
		return nil, fmt.Errorf("validation failed: invalid or expired confirmation code")
	}

	// 4. Burn the code
	if err := s.repo.Confirmation.MarkAsUsed(ctx, matched.ID); err != nil {
		s.log.Error("Failed to mark confirmation used", zap.Error(err), zap.String("confirmation_id", matched.ID.String()))
		return nil, fmt.Errorf("mark confirmation used: %w", err)
	}

	// 5. Issue the bearer token
	token, expiresAt, err := utils.GenerateAccessToken(s.config.JWT, user.ID, user.Username)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("Token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &response.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}
