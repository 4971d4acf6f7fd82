package usecase

import (
	"context"
	"fmt"
	"time"

	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"
	"review-hub/internal/dto/request"
	"review-hub/internal/dto/response"
	"review-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleService interface {
	// Public endpoints
	GetTitles(ctx context.Context, filter *request.TitleFilterRequest, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	GetTitleByID(ctx context.Context, titleID string) (*response.TitleResponse, error)

	// Admin endpoints
	CreateTitle(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	UpdateTitle(ctx context.Context, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	DeleteTitle(ctx context.Context, titleID string) error
}

type titleService struct {
	repo *repository.Repository // grouping title, category, genre & review repos
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) GetTitles(ctx context.Context, filter *request.TitleFilterRequest, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	repoFilter := repository.TitleFilter{
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Name:         filter.Name,
		Year:         filter.Year,
	}

	titles, err := s.repo.Title.FindAll(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get titles", zap.Error(err))
		return nil, fmt.Errorf("get titles: %w", err)
	}

	total, err := s.repo.Title.CountAll(ctx, repoFilter)
	if err != nil {
		s.log.Error("Failed to count titles", zap.Error(err))
		return nil, fmt.Errorf("count titles: %w", err)
	}

	// Batch the per-title lookups for the whole page
	titleIDs := make([]uuid.UUID, len(titles))
	for i, title := range titles {
		titleIDs[i] = title.ID
	}

	genresByTitle := map[uuid.UUID][]*entity.Genre{}
	ratings := map[uuid.UUID]float64{}
	if len(titleIDs) > 0 {
		genresByTitle, err = s.repo.Genre.FindByTitleIDs(ctx, titleIDs)
		if err != nil {
			s.log.Error("Failed to load title genres", zap.Error(err))
			return nil, fmt.Errorf("load title genres: %w", err)
		}

		ratings, err = s.repo.Review.AverageScoreByTitles(ctx, titleIDs)
		if err != nil {
			s.log.Error("Failed to load title ratings", zap.Error(err))
			return nil, fmt.Errorf("load title ratings: %w", err)
		}
	}

	items := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		var category *entity.Category
		if title.CategoryID != nil {
			category, err = s.repo.Category.FindByID(ctx, *title.CategoryID)
			if err != nil {
				return nil, fmt.Errorf("load title category: %w", err)
			}
		}

		// A title absent from the aggregation map has no reviews yet;
		// its rating stays nil.
		var rating *float64
		if avg, ok := ratings[title.ID]; ok {
			rating = &avg
		}

		items[i] = response.TitleToResponse(title, category, genresByTitle[title.ID], rating)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *titleService) GetTitleByID(ctx context.Context, titleID string) (*response.TitleResponse, error) {
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

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) CreateTitle(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// A title cannot be released in the future
	if req.Year > time.Now().Year() {
		return nil, fmt.Errorf("validation failed: year %d is in the future", req.Year)
	}

	// Resolve category slug
	var categoryID *uuid.UUID
	if req.Category != nil {
		category, err := s.repo.Category.FindBySlug(ctx, *req.Category)
		if err != nil {
			return nil, fmt.Errorf("resolve category: %w", err)
		}
		if category == nil {
			return nil, fmt.Errorf("category %s not found", *req.Category)
		}
		categoryID = &category.ID
	}

	// Resolve genre slugs
	genres, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		s.log.Error("Failed to create title", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create title: %w", err)
	}

	if len(genres) > 0 {
		genreIDs := make([]uuid.UUID, len(genres))
		for i, genre := range genres {
			genreIDs[i] = genre.ID
		}
		if err := s.repo.TitleGenre.Replace(ctx, title.ID, genreIDs); err != nil {
			s.log.Error("Failed to link title genres", zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, fmt.Errorf("link title genres: %w", err)
		}
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name),
	)

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) UpdateTitle(ctx context.Context, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

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

	// Apply partial updates
	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if *req.Year > time.Now().Year() {
			return nil, fmt.Errorf("validation failed: year %d is in the future", *req.Year)
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.repo.Category.FindBySlug(ctx, *req.Category)
		if err != nil {
			return nil, fmt.Errorf("resolve category: %w", err)
		}
		if category == nil {
			return nil, fmt.Errorf("category %s not found", *req.Category)
		}
		title.CategoryID = &category.ID
	}

	title.UpdatedAt = time.Now()

	if err := s.repo.Title.Update(ctx, title); err != nil {
		s.log.Error("Failed to update title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("update title: %w", err)
	}

	// A genres field present in the request replaces the whole set; an
	// empty list clears it.
	if req.Genres != nil {
		genres, err := s.resolveGenres(ctx, *req.Genres)
		if err != nil {
			return nil, err
		}
		genreIDs := make([]uuid.UUID, len(genres))
		for i, genre := range genres {
			genreIDs[i] = genre.ID
		}
		if err := s.repo.TitleGenre.Replace(ctx, title.ID, genreIDs); err != nil {
			s.log.Error("Failed to relink title genres", zap.Error(err), zap.String("title_id", titleID))
			return nil, fmt.Errorf("relink title genres: %w", err)
		}
	}

	s.log.Info("Title updated", zap.String("title_id", titleID))

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) DeleteTitle(ctx context.Context, titleID string) error {
	titleUUID, err := uuid.Parse(titleID)
	if err != nil {
		return fmt.Errorf("invalid title ID format %s: %w", titleID, err)
	}

	title, err := s.repo.Title.FindByID(ctx, titleUUID)
	if err != nil {
		return fmt.Errorf("get title: %w", err)
	}
	if title == nil {
		return fmt.Errorf("title %s not found", titleID)
	}

	if err := s.repo.Title.Delete(ctx, titleUUID); err != nil {
		s.log.Error("Failed to delete title", zap.Error(err), zap.String("title_id", titleID))
		return fmt.Errorf("delete title: %w", err)
	}

	s.log.Info("Title deleted", zap.String("title_id", titleID))
	return nil
}

// resolveGenres maps slugs to genre rows and fails when any slug is
// unknown.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	genres, err := s.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		s.log.Error("Failed to resolve genres", zap.Error(err))
		return nil, fmt.Errorf("resolve genres: %w", err)
	}

	found := make(map[string]bool, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, fmt.Errorf("genre %s not found", slug)
		}
	}

	return genres, nil
}

// buildTitleResponse attaches the category, genre set and derived
// rating. The rating is recomputed from reviews on every read and never
// stored on the title row.
func (s *titleService) buildTitleResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	var err error
	if title.CategoryID != nil {
		category, err = s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("load title category: %w", err)
		}
	}

	genresByTitle, err := s.repo.Genre.FindByTitleIDs(ctx, []uuid.UUID{title.ID})
	if err != nil {
		return nil, fmt.Errorf("load title genres: %w", err)
	}

	rating, err := s.repo.Review.AverageScoreByTitle(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load title rating: %w", err)
	}

	result := response.TitleToResponse(title, category, genresByTitle[title.ID], rating)
	return &result, nil
}
