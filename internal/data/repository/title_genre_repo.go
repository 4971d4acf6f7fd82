package repository

import (
	"context"
	"fmt"
	"time"

	"review-hub/internal/data/entity"
	"review-hub/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleGenreRepository interface {
	Replace(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error
}

type titleGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleGenreRepository(db database.PgxIface, log *zap.Logger) TitleGenreRepository {
	return &titleGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "title_genre")),
	}
}

// Replace swaps the title's genre set atomically.
func (r *titleGenreRepository) Replace(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace genres: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, titleID); err != nil {
		r.log.Error("Failed to clear title genres",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return fmt.Errorf("clear genres for title %s: %w", titleID.String(), err)
	}

	query := `
		INSERT INTO title_genres (id, title_id, genre_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	now := time.Now()
	for _, genreID := range genreIDs {
		link := entity.TitleGenre{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			TitleID:    titleID,
			GenreID:    genreID,
		}

		if _, err := tx.Exec(ctx, query, link.ID, link.TitleID, link.GenreID, link.CreatedAt); err != nil {
			r.log.Error("Failed to link title genre",
				zap.Error(err),
				zap.String("title_id", titleID.String()),
				zap.String("genre_id", genreID.String()),
			)
			return fmt.Errorf("link genre %s to title %s: %w",
				genreID.String(), titleID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace genres: %w", err)
	}

	return nil
}
