package usecase

import (
	"context"
	"testing"
	"time"

	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"
	"review-hub/internal/dto/request"
	"review-hub/internal/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newReviewFixture() (*MockTitleRepository, *MockReviewRepository, *MockUserRepository, ReviewService) {
	titleRepo := new(MockTitleRepository)
	reviewRepo := new(MockReviewRepository)
	userRepo := new(MockUserRepository)
	repo := &repository.Repository{Title: titleRepo, Review: reviewRepo, User: userRepo}
	service := NewReviewService(repo, zap.NewNop())
	return titleRepo, reviewRepo, userRepo, service
}

func authorPrincipal(userID uuid.UUID) policy.Principal {
	return policy.Principal{UserID: userID, Role: entity.RoleUser, Authenticated: true}
}

func TestCreateReview_Success(t *testing.T) {
	titleRepo, reviewRepo, userRepo, service := newReviewFixture()

	title := &entity.Title{Base: entity.Base{ID: uuid.New()}, Name: "Dune", Year: 2021}
	author := &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "reader", Role: entity.RoleUser}

	titleRepo.On("FindByID", mock.Anything, title.ID).Return(title, nil)
	reviewRepo.On("FindByTitleAndAuthor", mock.Anything, title.ID, author.ID).Return(nil, nil)
	reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Review")).Return(nil)
	userRepo.On("FindByID", mock.Anything, author.ID).Return(author, nil)

	result, err := service.CreateReview(context.Background(), authorPrincipal(author.ID), title.ID.String(), &request.CreateReviewRequest{
		Score: 8,
		Text:  "Stunning adaptation.",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 8, result.Score)
	assert.Equal(t, "reader", result.Author)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReview_ScoreOutOfRange(t *testing.T) {
	_, reviewRepo, _, service := newReviewFixture()

	for _, score := range []int{0, 11, -3} {
		result, err := service.CreateReview(context.Background(), authorPrincipal(uuid.New()), uuid.New().String(), &request.CreateReviewRequest{
			Score: score,
			Text:  "text",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		assert.Nil(t, result)
	}
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_TitleNotFound(t *testing.T) {
	titleRepo, _, _, service := newReviewFixture()

	missingID := uuid.New()
	titleRepo.On("FindByID", mock.Anything, missingID).Return(nil, nil)

	result, err := service.CreateReview(context.Background(), authorPrincipal(uuid.New()), missingID.String(), &request.CreateReviewRequest{
		Score: 5,
		Text:  "text",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Nil(t, result)
}

func TestCreateReview_AlreadyReviewed(t *testing.T) {
	titleRepo, reviewRepo, _, service := newReviewFixture()

	title := &entity.Title{Base: entity.Base{ID: uuid.New()}, Name: "Dune", Year: 2021}
	authorID := uuid.New()
	existing := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		TitleID:    title.ID,
		AuthorID:   authorID,
		Score:      7,
	}

	titleRepo.On("FindByID", mock.Anything, title.ID).Return(title, nil)
	reviewRepo.On("FindByTitleAndAuthor", mock.Anything, title.ID, authorID).Return(existing, nil)

	result, err := service.CreateReview(context.Background(), authorPrincipal(authorID), title.ID.String(), &request.CreateReviewRequest{
		Score: 9,
		Text:  "second try",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already reviewed")
	assert.Nil(t, result)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_DuplicateRace(t *testing.T) {
	titleRepo, reviewRepo, _, service := newReviewFixture()

	title := &entity.Title{Base: entity.Base{ID: uuid.New()}, Name: "Dune", Year: 2021}
	authorID := uuid.New()

	// Pre-check sees nothing, but the insert hits the unique constraint.
	titleRepo.On("FindByID", mock.Anything, title.ID).Return(title, nil)
	reviewRepo.On("FindByTitleAndAuthor", mock.Anything, title.ID, authorID).Return(nil, nil)
	reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Review")).Return(repository.ErrDuplicateReview)

	result, err := service.CreateReview(context.Background(), authorPrincipal(authorID), title.ID.String(), &request.CreateReviewRequest{
		Score: 9,
		Text:  "racing",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already reviewed")
	assert.Nil(t, result)
}

func TestUpdateReview_ByAuthor(t *testing.T) {
	titleRepo, reviewRepo, userRepo, service := newReviewFixture()

	title := &entity.Title{Base: entity.Base{ID: uuid.New()}, Name: "Dune", Year: 2021}
	author := &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "reader", Role: entity.RoleUser}
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TitleID:    title.ID,
		AuthorID:   author.ID,
		Score:      6,
		Text:       "old text",
	}

	titleRepo.On("FindByID", mock.Anything, title.ID).Return(title, nil)
	reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)
	reviewRepo.On("Update", mock.Anything, review).Return(nil)
	userRepo.On("FindByID", mock.Anything, author.ID).Return(author, nil)

	newScore := 9
	result, err := service.UpdateReview(context.Background(), authorPrincipal(author.ID), title.ID.String(), review.ID.String(), &request.UpdateReviewRequest{
		Score: &newScore,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 9, result.Score)
	assert.Equal(t, "old text", result.Text)
}

func TestUpdateReview_ByStrangerForbidden(t *testing.T) {
	titleRepo, reviewRepo, _, service := newReviewFixture()

	title := &entity.Title{Base: entity.Base{ID: uuid.New()}, Name: "Dune", Year: 2021}
	authorID := uuid.New()
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		TitleID:    title.ID,
		AuthorID:   authorID,
		Score:      6,
	}

	titleRepo.On("FindByID", mock.Anything, title.ID).Return(title, nil)
	reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)

	stranger := authorPrincipal(uuid.New())
	newScore := 1
	result, err := service.UpdateReview(context.Background(), stranger, title.ID.String(), review.ID.String(), &request.UpdateReviewRequest{
		Score: &newScore,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
	assert.Nil(t, result)
	reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteReview_ByModerator(t *testing.T) {
	titleRepo, reviewRepo, _, service := newReviewFixture()

	title := &entity.Title{Base: entity.Base{ID: uuid.New()}, Name: "Dune", Year: 2021}
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		TitleID:    title.ID,
		AuthorID:   uuid.New(),
		Score:      2,
	}

	titleRepo.On("FindByID", mock.Anything, title.ID).Return(title, nil)
	reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)
	reviewRepo.On("Delete", mock.Anything, review.ID).Return(nil)

	moderator := policy.Principal{UserID: uuid.New(), Role: entity.RoleModerator, Authenticated: true}
	err := service.DeleteReview(context.Background(), moderator, title.ID.String(), review.ID.String())

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestGetReview_WrongTitleIs404(t *testing.T) {
	titleRepo, reviewRepo, _, service := newReviewFixture()

	title := &entity.Title{Base: entity.Base{ID: uuid.New()}, Name: "Dune", Year: 2021}
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		TitleID:    uuid.New(), // belongs to a different title
		AuthorID:   uuid.New(),
	}

	titleRepo.On("FindByID", mock.Anything, title.ID).Return(title, nil)
	reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)

	result, err := service.GetReviewByID(context.Background(), title.ID.String(), review.ID.String())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Nil(t, result)
}
