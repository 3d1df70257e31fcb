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

const storyFields = `id, user_id, prompt, title, summary, story_text, audio_url, approved, created_at`

// PgStoryRepository persists story records in PostgreSQL.
type PgStoryRepository struct {
	db *pgxpool.Pool
}

func NewPgStoryRepository(db *pgxpool.Pool) *PgStoryRepository {
	if db == nil {
		log.Fatal().Msg("Database pool is nil for PgStoryRepository")
	}
	return &PgStoryRepository{db: db}
}

// Create inserts a finished story record. The record is only ever written
// after the pipeline completes, never partially.
func (r *PgStoryRepository) Create(ctx context.Context, story *models.Story) error {
	query := `INSERT INTO stories (id, user_id, prompt, title, summary, story_text, audio_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING approved, created_at`
	err := r.db.QueryRow(ctx, query,
		story.ID, story.UserID, story.Prompt, story.Title, story.Summary, story.Text, story.AudioURL,
	).Scan(&story.Approved, &story.CreatedAt)
	if err != nil {
		log.Error().Err(err).Str("story_id", story.ID.String()).Msg("Failed to create story")
		return fmt.Errorf("failed to create story: %w", err)
	}
	log.Info().Str("story_id", story.ID.String()).Str("user_id", story.UserID.String()).Msg("Story created")
	return nil
}

// GetByID fetches a single story. Ownership is the caller's concern.
func (r *PgStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM stories WHERE id = $1`, storyFields)
	var story models.Story
	if err := pgxscan.Get(ctx, r.db, &story, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrStoryNotFound
		}
		log.Error().Err(err).Str("story_id", id.String()).Msg("Failed to get story")
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return &story, nil
}

// ListByUser returns all stories owned by the account, newest first.
func (r *PgStoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM stories WHERE user_id = $1 ORDER BY created_at DESC`, storyFields)
	stories := []models.Story{}
	if err := pgxscan.Select(ctx, r.db, &stories, query, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list stories")
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

// Approve marks the story approved. The transition is one-way: repeating it
// leaves approved = TRUE, there is no un-approve.
func (r *PgStoryRepository) Approve(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	query := fmt.Sprintf(`UPDATE stories SET approved = TRUE WHERE id = $1 RETURNING %s`, storyFields)
	var story models.Story
	if err := pgxscan.Get(ctx, r.db, &story, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrStoryNotFound
		}
		log.Error().Err(err).Str("story_id", id.String()).Msg("Failed to approve story")
		return nil, fmt.Errorf("failed to approve story: %w", err)
	}
	log.Info().Str("story_id", id.String()).Msg("Story approved")
	return &story, nil
}

// Delete removes the story record.
func (r *PgStoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	commandTag, err := r.db.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Str("story_id", id.String()).Msg("Failed to delete story")
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrStoryNotFound
	}
	log.Info().Str("story_id", id.String()).Msg("Story deleted")
	return nil
}
