package usecase

import (
	"context"
	"testing"

	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"
	"review-hub/internal/dto/request"
	"review-hub/internal/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type commentFixture struct {
	titleRepo   *MockTitleRepository
	reviewRepo  *MockReviewRepository
	commentRepo *MockCommentRepository
	userRepo    *MockUserRepository
	service     CommentService

	title  *entity.Title
	review *entity.Review
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		titleRepo:   new(MockTitleRepository),
		reviewRepo:  new(MockReviewRepository),
		commentRepo: new(MockCommentRepository),
		userRepo:    new(MockUserRepository),
	}
	repo := &repository.Repository{
		Title:   f.titleRepo,
		Review:  f.reviewRepo,
		Comment: f.commentRepo,
		User:    f.userRepo,
	}
	f.service = NewCommentService(repo, zap.NewNop())

	f.title = &entity.Title{Base: entity.Base{ID: uuid.New()}, Name: "Dune", Year: 2021}
	f.review = &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		TitleID:    f.title.ID,
		AuthorID:   uuid.New(),
		Score:      8,
	}
	f.titleRepo.On("FindByID", mock.Anything, f.title.ID).Return(f.title, nil)
	f.reviewRepo.On("FindByID", mock.Anything, f.review.ID).Return(f.review, nil)

	return f
}

func TestCreateComment_Success(t *testing.T) {
	f := newCommentFixture()

	author := &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "commenter"}
	f.commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Comment")).Return(nil)
	f.userRepo.On("FindByID", mock.Anything, author.ID).Return(author, nil)

	result, err := f.service.CreateComment(context.Background(), authorPrincipal(author.ID), f.title.ID.String(), f.review.ID.String(), &request.CreateCommentRequest{
		Text: "Agreed, great book.",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Agreed, great book.", result.Text)
	assert.Equal(t, "commenter", result.Author)
	f.commentRepo.AssertExpectations(t)
}

func TestCreateComment_ReviewUnderWrongTitle(t *testing.T) {
	f := newCommentFixture()

	otherTitle := &entity.Title{Base: entity.Base{ID: uuid.New()}, Name: "Other", Year: 2020}
	f.titleRepo.On("FindByID", mock.Anything, otherTitle.ID).Return(otherTitle, nil)

	result, err := f.service.CreateComment(context.Background(), authorPrincipal(uuid.New()), otherTitle.ID.String(), f.review.ID.String(), &request.CreateCommentRequest{
		Text: "lost",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Nil(t, result)
	f.commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateComment_ByStrangerForbidden(t *testing.T) {
	f := newCommentFixture()

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		ReviewID:   f.review.ID,
		AuthorID:   uuid.New(),
		Text:       "original",
	}
	f.commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)

	text := "hijacked"
	result, err := f.service.UpdateComment(context.Background(), authorPrincipal(uuid.New()), f.title.ID.String(), f.review.ID.String(), comment.ID.String(), &request.UpdateCommentRequest{
		Text: &text,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
	assert.Nil(t, result)
	f.commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteComment_ByModerator(t *testing.T) {
	f := newCommentFixture()

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		ReviewID:   f.review.ID,
		AuthorID:   uuid.New(),
	}
	f.commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
	f.commentRepo.On("Delete", mock.Anything, comment.ID).Return(nil)

	moderator := policy.Principal{UserID: uuid.New(), Role: entity.RoleModerator, Authenticated: true}
	err := f.service.DeleteComment(context.Background(), moderator, f.title.ID.String(), f.review.ID.String(), comment.ID.String())

	assert.NoError(t, err)
	f.commentRepo.AssertExpectations(t)
}

func TestGetComment_WrongReviewIs404(t *testing.T) {
	f := newCommentFixture()

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		ReviewID:   uuid.New(), // belongs to a different review
		AuthorID:   uuid.New(),
	}
	f.commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)

	result, err := f.service.GetCommentByID(context.Background(), f.title.ID.String(), f.review.ID.String(), comment.ID.String())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Nil(t, result)
}
