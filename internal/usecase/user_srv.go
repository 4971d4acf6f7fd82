package usecase

import (
	"context"
	"fmt"
	"time"

	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"
	"review-hub/internal/dto/request"
	"review-hub/internal/dto/response"
	"review-hub/internal/policy"
	"review-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// Admin endpoints, addressed by username
	GetUsers(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetUserByUsername(ctx context.Context, username string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, username string) error

	// Self endpoints
	GetSelf(ctx context.Context, principal policy.Principal) (*response.UserResponse, error)
	UpdateSelf(ctx context.Context, principal policy.Principal, req *request.UpdateSelfRequest) (*response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get users", zap.Error(err))
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := s.repo.User.CountAll(ctx, search)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	items := make([]response.UserResponse, len(users))
	for i, user := range users {
		items[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Username and email must be unique
	if err := s.checkUnique(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	// 3. Role defaults to user; an admin can set it at creation time
	role := entity.RoleUser
	if req.Role != nil {
		role = entity.Role(*req.Role)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  req.Username,
		Email:     req.Email,
		Role:      role,
		Bio:       req.Bio,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	result := response.UserToResponse(user)
	return &result, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*response.UserResponse, error) {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	result := response.UserToResponse(user)
	return &result, nil
}

func (s *userService) UpdateUser(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	// 2. Apply partial updates; identity changes re-run the uniqueness
	// checks
	if err := s.applyIdentity(ctx, user, req.Username, req.Email); err != nil {
		return nil, err
	}
	if req.Role != nil {
		user.Role = entity.Role(*req.Role)
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}

	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info("User updated", zap.String("username", user.Username))

	result := response.UserToResponse(user)
	return &result, nil
}

func (s *userService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return err
	}

	if err := s.repo.User.Delete(ctx, user.ID); err != nil {
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("User deleted", zap.String("username", username))
	return nil
}

func (s *userService) GetSelf(ctx context.Context, principal policy.Principal) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, principal.UserID)
	if err != nil {
		s.log.Error("Failed to get current user", zap.Error(err), zap.String("user_id", principal.UserID.String()))
		return nil, fmt.Errorf("get current user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	result := response.UserToResponse(user)
	return &result, nil
}

// UpdateSelf edits the caller's own profile. The request shape has no
// role field, so the role cannot change here regardless of what the
// client sends.
func (s *userService) UpdateSelf(ctx context.Context, principal policy.Principal, req *request.UpdateSelfRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update self validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, principal.UserID)
	if err != nil {
		s.log.Error("Failed to get current user", zap.Error(err), zap.String("user_id", principal.UserID.String()))
		return nil, fmt.Errorf("get current user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	if err := s.applyIdentity(ctx, user, req.Username, req.Email); err != nil {
		return nil, err
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}

	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update current user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("update current user: %w", err)
	}

	s.log.Info("Profile updated", zap.String("username", user.Username))

	result := response.UserToResponse(user)
	return &result, nil
}

func (s *userService) requireUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to get user", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", username)
	}

	return user, nil
}

// applyIdentity sets a new username or email after confirming neither
// collides with another account.
func (s *userService) applyIdentity(ctx context.Context, user *entity.User, username, email *string) error {
	if username != nil && *username != user.Username {
		existing, err := s.repo.User.FindByUsername(ctx, *username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("username already taken")
		}
		user.Username = *username
	}

	if email != nil && *email != user.Email {
		existing, err := s.repo.User.FindByEmail(ctx, *email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("email already registered")
		}
		user.Email = *email
	}

	return nil
}

func (s *userService) checkUnique(ctx context.Context, username, email string) error {
	byUsername, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if byUsername != nil {
		return fmt.Errorf("username already taken")
	}

	byEmail, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if byEmail != nil {
		return fmt.Errorf("email already registered")
	}

	return nil
}
