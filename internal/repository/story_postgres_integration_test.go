package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"babystory-server/internal/models"
	"babystory-server/internal/repository"
)

// RepositoryTestSuite runs the story and policy repositories against a real
// PostgreSQL instance in a container.
type RepositoryTestSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	stories     *repository.PgStoryRepository
	policies    *repository.PgPolicyRepository
}

func (s *RepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err)
	s.pgContainer = pgContainer

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	dbPool, err := pgxpool.New(ctx, connStr)
	require.NoError(s.T(), err)
	s.dbPool = dbPool

	require.NoError(s.T(), repository.EnsureSchema(ctx, dbPool))

	s.stories = repository.NewPgStoryRepository(dbPool)
	s.policies = repository.NewPgPolicyRepository(dbPool)
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}

func (s *RepositoryTestSuite) newStory(userID uuid.UUID) *models.Story {
	return &models.Story{
		ID:      uuid.New(),
		UserID:  userID,
		Prompt:  "a friendly robot",
		Title:   "The Friendly Robot",
		Summary: "A robot makes friends.",
		Text:    "Once upon a time there was a friendly robot...",
	}
}

func (s *RepositoryTestSuite) TestCreateAndGet() {
	ctx := context.Background()
	story := s.newStory(uuid.New())

	require.NoError(s.T(), s.stories.Create(ctx, story))
	s.False(story.Approved)
	s.False(story.CreatedAt.IsZero())

	got, err := s.stories.GetByID(ctx, story.ID)
	require.NoError(s.T(), err)
	s.Equal(story.Prompt, got.Prompt)
	s.Equal(story.Text, got.Text)
	s.Nil(got.AudioURL)
}

func (s *RepositoryTestSuite) TestGetMissingStory() {
	_, err := s.stories.GetByID(context.Background(), uuid.New())
	s.ErrorIs(err, models.ErrStoryNotFound)
}

func (s *RepositoryTestSuite) TestListByUserNewestFirst() {
	ctx := context.Background()
	userID := uuid.New()

	first := s.newStory(userID)
	require.NoError(s.T(), s.stories.Create(ctx, first))
	time.Sleep(10 * time.Millisecond)
	second := s.newStory(userID)
	require.NoError(s.T(), s.stories.Create(ctx, second))

	stories, err := s.stories.ListByUser(ctx, userID)
	require.NoError(s.T(), err)
	require.Len(s.T(), stories, 2)
	s.Equal(second.ID, stories[0].ID)
	s.Equal(first.ID, stories[1].ID)

	other, err := s.stories.ListByUser(ctx, uuid.New())
	require.NoError(s.T(), err)
	s.Empty(other)
}

func (s *RepositoryTestSuite) TestApproveIsOneWayAndIdempotent() {
	ctx := context.Background()
	story := s.newStory(uuid.New())
	require.NoError(s.T(), s.stories.Create(ctx, story))

	approved, err := s.stories.Approve(ctx, story.ID)
	require.NoError(s.T(), err)
	s.True(approved.Approved)

	again, err := s.stories.Approve(ctx, story.ID)
	require.NoError(s.T(), err)
	s.True(again.Approved)
}

func (s *RepositoryTestSuite) TestDelete() {
	ctx := context.Background()
	story := s.newStory(uuid.New())
	require.NoError(s.T(), s.stories.Create(ctx, story))

	require.NoError(s.T(), s.stories.Delete(ctx, story.ID))
	s.ErrorIs(s.stories.Delete(ctx, story.ID), models.ErrStoryNotFound)

	_, err := s.stories.GetByID(ctx, story.ID)
	s.ErrorIs(err, models.ErrStoryNotFound)
}

func (s *RepositoryTestSuite) TestPolicyLookup() {
	ctx := context.Background()

	_, err := s.policies.GetByUser(ctx, uuid.New())
	s.ErrorIs(err, models.ErrPolicyNotFound)

	userID := uuid.New()
	_, err = s.dbPool.Exec(ctx,
		`INSERT INTO policies (user_id, story_length, allowed_themes, child_age, narration, illustrations)
		 VALUES ($1, 'medium', ARRAY['space','animals'], 8, FALSE, TRUE)`, userID)
	require.NoError(s.T(), err)

	pol, err := s.policies.GetByUser(ctx, userID)
	require.NoError(s.T(), err)
	s.Equal(models.TierMedium, pol.StoryLength)
	s.Equal(8, pol.ChildAge)
	s.False(pol.Narration)
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryTestSuite))
}
