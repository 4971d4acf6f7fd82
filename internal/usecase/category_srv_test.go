package usecase

import (
	"context"
	"testing"

	"review-hub/internal/data/entity"
	"review-hub/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, zap.NewNop())

	categoryRepo.On("FindBySlug", mock.Anything, "movies").Return(nil, nil)
	categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Category")).Return(nil)

	result, err := service.CreateCategory(context.Background(), &request.CreateCategoryRequest{
		Name: "Movies",
		Slug: "movies",
	})

	assert.NoError(t, err)
	assert.Equal(t, "movies", result.Slug)
	categoryRepo.AssertExpectations(t)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, zap.NewNop())

	existing := &entity.Category{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Movies", Slug: "movies"}
	categoryRepo.On("FindBySlug", mock.Anything, "movies").Return(existing, nil)

	result, err := service.CreateCategory(context.Background(), &request.CreateCategoryRequest{
		Name: "Movies Again",
		Slug: "movies",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Nil(t, result)
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCategory_BadSlugRejected(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, zap.NewNop())

	result, err := service.CreateCategory(context.Background(), &request.CreateCategoryRequest{
		Name: "Movies",
		Slug: "Not A Slug!",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Nil(t, result)
}

func TestCreateGenre_DuplicateSlug(t *testing.T) {
	genreRepo := new(MockGenreRepository)
	service := NewGenreService(genreRepo, zap.NewNop())

	existing := &entity.Genre{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Sci-Fi", Slug: "sci-fi"}
	genreRepo.On("FindBySlug", mock.Anything, "sci-fi").Return(existing, nil)

	result, err := service.CreateGenre(context.Background(), &request.CreateGenreRequest{
		Name: "Science Fiction",
		Slug: "sci-fi",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Nil(t, result)
}

func TestGetCategories_Paginated(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, zap.NewNop())

	rows := []*entity.Category{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Books", Slug: "books"},
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Movies", Slug: "movies"},
	}
	categoryRepo.On("FindAll", mock.Anything, "", 10, 0).Return(rows, nil)
	categoryRepo.On("CountAll", mock.Anything, "").Return(int64(12), nil)

	result, err := service.GetCategories(context.Background(), "", &request.PaginatedRequest{Page: 1, PerPage: 10})

	assert.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Equal(t, int64(12), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
}
