package repository

import (
	"context"
	"fmt"

	"review-hub/internal/data/entity"
	"review-hub/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ConfirmationRepository interface {
	Create(ctx context.Context, confirmation *entity.EmailConfirmation) error
	// FindActiveByUserID returns unexpired, unused confirmations for the
	// user, newest first. Multiple rows can be active when signup was
	// retried; the caller checks the presented code against each hash.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.EmailConfirmation, error)
	MarkAsUsed(ctx context.Context, id uuid.UUID) error
}

type confirmationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewConfirmationRepository(db database.PgxIface, log *zap.Logger) ConfirmationRepository {
	return &confirmationRepository{
		db:  db,
		log: log.With(zap.String("repository", "confirmation")),
	}
}

func (r *confirmationRepository) Create(ctx context.Context, confirmation *entity.EmailConfirmation) error {
	query := `
		INSERT INTO email_confirmations (id, user_id, code_hash, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		confirmation.ID,
		confirmation.UserID,
		confirmation.CodeHash,
		confirmation.ExpiresAt,
		confirmation.IsUsed,
		confirmation.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create email confirmation",
			zap.Error(err),
			zap.String("user_id", confirmation.UserID.String()),
		)
		return fmt.Errorf("create confirmation for user %s: %w",
			confirmation.UserID.String(), err)
	}

	return nil
}

func (r *confirmationRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.EmailConfirmation, error) {
	query := `
		SELECT id, user_id, code_hash, expires_at, is_used, created_at
		FROM email_confirmations
		WHERE user_id = $1 AND is_used = FALSE AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 5
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find active confirmations",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find active confirmations for user %s: %w",
			userID.String(), err)
	}
	defer rows.Close()

	var confirmations []*entity.EmailConfirmation
	for rows.Next() {
		var confirmation entity.EmailConfirmation
		err := rows.Scan(
			&confirmation.ID,
			&confirmation.UserID,
			&confirmation.CodeHash,
			&confirmation.ExpiresAt,
			&confirmation.IsUsed,
			&confirmation.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan confirmation row", zap.Error(err))
			return nil, fmt.Errorf("scan confirmation row: %w", err)
		}
		confirmations = append(confirmations, &confirmation)
	}

	return confirmations, nil
}

func (r *confirmationRepository) MarkAsUsed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE email_confirmations SET is_used = TRUE WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark confirmation as used",
			zap.Error(err),
			zap.String("confirmation_id", id.String()),
		)
		return fmt.Errorf("mark confirmation %s as used: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("confirmation %s not found", id.String())
	}

	return nil
}
