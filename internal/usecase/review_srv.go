package usecase

import (
	"context"
	"errors"
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

type ReviewService interface {
	// Public endpoints
	GetTitleReviews(ctx context.Context, titleID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReviewByID(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)

	// Authenticated endpoints; update and delete run an ownership check
	// against the principal.
	CreateReview(ctx context.Context, principal policy.Principal, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, principal policy.Principal, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, principal policy.Principal, titleID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository // grouping review, title & user repos
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetTitleReviews(ctx context.Context, titleID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	titleUUID, err := s.requireTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, titleUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, titleUUID)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	usernames := map[uuid.UUID]string{}
	items := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		items[i] = response.ReviewToResponse(review, s.authorUsername(ctx, usernames, review.AuthorID))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *reviewService) GetReviewByID(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findTitleReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	usernames := map[uuid.UUID]string{}
	result := response.ReviewToResponse(review, s.authorUsername(ctx, usernames, review.AuthorID))
	return &result, nil
}

func (s *reviewService) CreateReview(ctx context.Context, principal policy.Principal, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Title must exist
	titleUUID, err := s.requireTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	// 3. One review per author per title. The unique constraint in the
	// database is authoritative; this pre-check just gives a cleaner
	// error for the common case.
	existing, err := s.repo.Review.FindByTitleAndAuthor(ctx, titleUUID, principal.UserID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user already reviewed this title")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  titleUUID,
		AuthorID: principal.UserID,
		Score:    req.Score,
		Text:     req.Text,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			// Lost the race against a concurrent create by the same
			// author.
			return nil, fmt.Errorf("user already reviewed this title")
		}
		s.log.Error("Failed to create review", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID),
		zap.Int("score", review.Score),
	)

	usernames := map[uuid.UUID]string{}
	result := response.ReviewToResponse(review, s.authorUsername(ctx, usernames, review.AuthorID))
	return &result, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, principal policy.Principal, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Load and check ownership
	review, err := s.findTitleReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !policy.AllowObject(principal, policy.ResourceReview, policy.ActionUpdate, review.AuthorID) {
		return nil, fmt.Errorf("forbidden: cannot edit another user's review")
	}

	// 3. Apply partial updates
	if req.Score != nil {
		review.Score = *req.Score
	}
	if req.Text != nil {
		review.Text = *req.Text
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated", zap.String("review_id", reviewID))

	usernames := map[uuid.UUID]string{}
	result := response.ReviewToResponse(review, s.authorUsername(ctx, usernames, review.AuthorID))
	return &result, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, principal policy.Principal, titleID, reviewID string) error {
	review, err := s.findTitleReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !policy.AllowObject(principal, policy.ResourceReview, policy.ActionDelete, review.AuthorID) {
		return fmt.Errorf("forbidden: cannot delete another user's review")
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted", zap.String("review_id", reviewID))
	return nil
}

// requireTitle parses the id and confirms the title exists.
func (s *reviewService) requireTitle(ctx context.Context, titleID string) (uuid.UUID, error) {
	titleUUID, err := uuid.Parse(titleID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid title ID format %s: %w", titleID, err)
	}

	title, err := s.repo.Title.FindByID(ctx, titleUUID)
	if err != nil {
		s.log.Error("Failed to get title", zap.Error(err), zap.String("title_id", titleID))
		return uuid.Nil, fmt.Errorf("get title: %w", err)
	}
	if title == nil {
		return uuid.Nil, fmt.Errorf("title %s not found", titleID)
	}

	return titleUUID, nil
}

// findTitleReview loads the review and confirms it belongs to the title
// in the URL. A review reached through the wrong title is a 404, not a
// leak of its existence.
func (s *reviewService) findTitleReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	titleUUID, err := s.requireTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		s.log.Error("Failed to get review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review == nil || review.TitleID != titleUUID {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	return review, nil
}

// authorUsername resolves the author's username with a small per-call
// cache so listings do not repeat lookups for the same author.
func (s *reviewService) authorUsername(ctx context.Context, cache map[uuid.UUID]string, authorID uuid.UUID) string {
	if username, ok := cache[authorID]; ok {
		return username
	}

	user, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || user == nil {
		cache[authorID] = ""
		return ""
	}

	cache[authorID] = user.Username
	return user.Username
}
