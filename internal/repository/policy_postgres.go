package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"babystory-server/internal/models"
)

// PgPolicyRepository reads per-account policies. The pipeline never writes
// them; mutation belongs to the external settings flow.
type PgPolicyRepository struct {
	db *pgxpool.Pool
}

func NewPgPolicyRepository(db *pgxpool.Pool) *PgPolicyRepository {
	if db == nil {
		log.Fatal().Msg("Database pool is nil for PgPolicyRepository")
	}
	return &PgPolicyRepository{db: db}
}

// GetByUser returns the account's policy or models.ErrPolicyNotFound.
func (r *PgPolicyRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Policy, error) {
	query := `SELECT user_id, story_length, allowed_themes, child_age, narration, illustrations, updated_at
	          FROM policies WHERE user_id = $1`
	var policy models.Policy
	if err := pgxscan.Get(ctx, r.db, &policy, query, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPolicyNotFound
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get policy")
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	return &policy, nil
}
