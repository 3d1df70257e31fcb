// Package service orchestrates the story generation pipeline and guards
// story access by ownership.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"babystory-server/internal/ai"
	"babystory-server/internal/messaging"
	"babystory-server/internal/models"
)

// Moderator decides whether a prompt may enter the pipeline.
type Moderator interface {
	Check(ctx context.Context, prompt string) error
}

// PolicyResolver maps an account to its effective generation constraints.
type PolicyResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (models.EffectivePolicy, error)
}

// Generator produces the story text and its derived title/summary.
type Generator interface {
	GenerateStory(ctx context.Context, prompt string, pol models.EffectivePolicy) (string, error)
	Summarize(ctx context.Context, storyText string) (title, summary string, err error)
}

// Narrator turns story text into a durable audio URL.
type Narrator interface {
	Build(ctx context.Context, storyText string) (string, error)
}

// StoryRepository persists finished stories.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Story, error)
	Approve(ctx context.Context, id uuid.UUID) (*models.Story, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventPublisher announces story lifecycle events. Publishing is best
// effort and never affects the request outcome.
type EventPublisher interface {
	PublishStoryEvent(ctx context.Context, event messaging.StoryEvent) error
}

// StoryService runs the generation pipeline and serves story CRUD with
// ownership checks.
type StoryService struct {
	moderator Moderator
	policies  PolicyResolver
	generator Generator
	narrator  Narrator // nil disables narration globally
	repo      StoryRepository
	events    EventPublisher // nil disables event publishing
	logger    zerolog.Logger
}

// NewStoryService wires the pipeline. narrator and events may be nil.
func NewStoryService(
	moderator Moderator,
	policies PolicyResolver,
	generator Generator,
	narrator Narrator,
	repo StoryRepository,
	events EventPublisher,
	logger zerolog.Logger,
) *StoryService {
	return &StoryService{
		moderator: moderator,
		policies:  policies,
		generator: generator,
		narrator:  narrator,
		repo:      repo,
		events:    events,
		logger:    logger.With().Str("component", "story_service").Logger(),
	}
}

// pipelineStage is one step of Generate. Fatal stages abort the request;
// the rest log, count and leave their output at its zero value.
type pipelineStage struct {
	name  string
	fatal bool
	run   func(ctx context.Context) error
}

// Generate runs the full pipeline: moderation, policy resolution, text
// generation, title/summary, optional narration, persistence. Nothing is
// persisted unless generation succeeds; title/summary and narration
// failures degrade instead of failing the request.
func (s *StoryService) Generate(ctx context.Context, userID uuid.UUID, prompt string) (*models.Story, error) {
	start := time.Now()

	story := &models.Story{
		ID:     uuid.New(),
		UserID: userID,
		Prompt: prompt,
	}
	var pol models.EffectivePolicy

	stages := []pipelineStage{
		{name: "moderation", fatal: true, run: func(ctx context.Context) error {
			return s.moderator.Check(ctx, prompt)
		}},
		{name: "policy", fatal: true, run: func(ctx context.Context) error {
			var err error
			pol, err = s.policies.Resolve(ctx, userID)
			return err
		}},
		{name: "generation", fatal: true, run: func(ctx context.Context) error {
			text, err := s.generator.GenerateStory(ctx, prompt, pol)
			if err != nil {
				return err
			}
			story.Text = text
			return nil
		}},
		{name: "summary", fatal: false, run: func(ctx context.Context) error {
			title, summary, err := s.generator.Summarize(ctx, story.Text)
			if err != nil {
				return err
			}
			story.Title = title
			story.Summary = summary
			return nil
		}},
		{name: "narration", fatal: false, run: func(ctx context.Context) error {
			if s.narrator == nil || !pol.Narration {
				return nil
			}
			url, err := s.narrator.Build(ctx, story.Text)
			if err != nil {
				return err
			}
			story.AudioURL = &url
			return nil
		}},
		{name: "persist", fatal: true, run: func(ctx context.Context) error {
			if story.Title == "" {
				story.Title = ai.PlaceholderTitle
			}
			return s.repo.Create(ctx, story)
		}},
	}

	for _, stage := range stages {
		if err := stage.run(ctx); err != nil {
			if stage.fatal {
				storyRequestsTotal.WithLabelValues("error_" + stage.name).Inc()
				s.logger.Error().Err(err).
					Str("stage", stage.name).
					Str("user_id", userID.String()).
					Msg("story pipeline aborted")
				return nil, err
			}
			storyStageDegraded.WithLabelValues(stage.name).Inc()
			s.logger.Warn().Err(err).
				Str("stage", stage.name).
				Str("story_id", story.ID.String()).
				Msg("pipeline stage degraded, continuing without it")
		}
	}

	s.publish(ctx, messaging.StoryEvent{
		StoryID: story.ID,
		UserID:  userID,
		Event:   messaging.EventStoryGenerated,
	})

	storyRequestsTotal.WithLabelValues("success").Inc()
	storyPipelineDuration.Observe(time.Since(start).Seconds())
	s.logger.Info().
		Str("story_id", story.ID.String()).
		Str("user_id", userID.String()).
		Dur("duration", time.Since(start)).
		Msg("story generated")
	return story, nil
}

// GetStory returns the story if the caller owns it. A story that exists but
// belongs to someone else is ErrForbidden, not ErrStoryNotFound.
func (s *StoryService) GetStory(ctx context.Context, userID, storyID uuid.UUID) (*models.Story, error) {
	story, err := s.repo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		return nil, models.ErrForbidden
	}
	return story, nil
}

// ListStories returns the caller's stories, newest first.
func (s *StoryService) ListStories(ctx context.Context, userID uuid.UUID) ([]models.Story, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ApproveStory marks an owned story approved. The operation is idempotent;
// there is no way back to unapproved.
func (s *StoryService) ApproveStory(ctx context.Context, userID, storyID uuid.UUID) (*models.Story, error) {
	story, err := s.repo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		return nil, models.ErrForbidden
	}

	approved, err := s.repo.Approve(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to approve story: %w", err)
	}

	s.publish(ctx, messaging.StoryEvent{
		StoryID: storyID,
		UserID:  userID,
		Event:   messaging.EventStoryApproved,
	})
	return approved, nil
}

// DeleteStory removes an owned story.
func (s *StoryService) DeleteStory(ctx context.Context, userID, storyID uuid.UUID) error {
	story, err := s.repo.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story.UserID != userID {
		return models.ErrForbidden
	}

	if err := s.repo.Delete(ctx, storyID); err != nil {
		return err
	}

	s.publish(ctx, messaging.StoryEvent{
		StoryID: storyID,
		UserID:  userID,
		Event:   messaging.EventStoryDeleted,
	})
	return nil
}

func (s *StoryService) publish(ctx context.Context, event messaging.StoryEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishStoryEvent(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("event", event.Event).Msg("failed to publish story event")
	}
}
