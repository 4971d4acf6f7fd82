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

type CommentService interface {
	// Public endpoints
	GetReviewComments(ctx context.Context, titleID, reviewID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	GetCommentByID(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)

	// Authenticated endpoints
	CreateComment(ctx context.Context, principal policy.Principal, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, principal policy.Principal, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, principal policy.Principal, titleID, reviewID, commentID string) error
}

type commentService struct {
	repo *repository.Repository // grouping comment, review, title & user repos
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) GetReviewComments(ctx context.Context, titleID, reviewID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.requireReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("get comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		s.log.Error("Failed to count comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("count comments: %w", err)
	}

	usernames := map[uuid.UUID]string{}
	items := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		items[i] = response.CommentToResponse(comment, s.authorUsername(ctx, usernames, comment.AuthorID))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *commentService) GetCommentByID(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := s.findReviewComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	usernames := map[uuid.UUID]string{}
	result := response.CommentToResponse(comment, s.authorUsername(ctx, usernames, comment.AuthorID))
	return &result, nil
}

func (s *commentService) CreateComment(ctx context.Context, principal policy.Principal, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Parent review must exist under this title
	review, err := s.requireReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: principal.UserID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID),
	)

	usernames := map[uuid.UUID]string{}
	result := response.CommentToResponse(comment, s.authorUsername(ctx, usernames, comment.AuthorID))
	return &result, nil
}

func (s *commentService) UpdateComment(ctx context.Context, principal policy.Principal, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Load and check ownership
	comment, err := s.findReviewComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !policy.AllowObject(principal, policy.ResourceComment, policy.ActionUpdate, comment.AuthorID) {
		return nil, fmt.Errorf("forbidden: cannot edit another user's comment")
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		s.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.log.Info("Comment updated", zap.String("comment_id", commentID))

	usernames := map[uuid.UUID]string{}
	result := response.CommentToResponse(comment, s.authorUsername(ctx, usernames, comment.AuthorID))
	return &result, nil
}

func (s *commentService) DeleteComment(ctx context.Context, principal policy.Principal, titleID, reviewID, commentID string) error {
	comment, err := s.findReviewComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !policy.AllowObject(principal, policy.ResourceComment, policy.ActionDelete, comment.AuthorID) {
		return fmt.Errorf("forbidden: cannot delete another user's comment")
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		s.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID))
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.Info("Comment deleted", zap.String("comment_id", commentID))
	return nil
}

// requireReview confirms the review exists and belongs to the title in
// the URL.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	titleUUID, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("invalid title ID format %s: %w", titleID, err)
	}

	title, err := s.repo.Title.FindByID(ctx, titleUUID)
	if err != nil {
		s.log.Error("Failed to get title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("get title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID)
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

// findReviewComment loads the comment and confirms the full title →
// review → comment chain from the URL.
func (s *commentService) findReviewComment(ctx context.Context, titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := s.requireReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	commentUUID, err := uuid.Parse(commentID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format %s: %w", commentID, err)
	}

	comment, err := s.repo.Comment.FindByID(ctx, commentUUID)
	if err != nil {
		s.log.Error("Failed to get comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, fmt.Errorf("comment %s not found", commentID)
	}

	return comment, nil
}

func (s *commentService) authorUsername(ctx context.Context, cache map[uuid.UUID]string, authorID uuid.UUID) string {
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
