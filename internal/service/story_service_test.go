package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"babystory-server/internal/messaging"
	"babystory-server/internal/mocks"
	"babystory-server/internal/models"
	"babystory-server/internal/service"
)

type fixture struct {
	moderator *mocks.MockModerator
	policies  *mocks.MockPolicyResolver
	generator *mocks.MockGenerator
	narrator  *mocks.MockNarrator
	repo      *mocks.MockStoryRepository
	events    *mocks.MockEventPublisher
	svc       *service.StoryService
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		moderator: mocks.NewMockModerator(t),
		policies:  mocks.NewMockPolicyResolver(t),
		generator: mocks.NewMockGenerator(t),
		narrator:  mocks.NewMockNarrator(t),
		repo:      mocks.NewMockStoryRepository(t),
		events:    mocks.NewMockEventPublisher(t),
	}
	f.svc = service.NewStoryService(f.moderator, f.policies, f.generator, f.narrator, f.repo, f.events, zerolog.Nop())
	return f
}

func TestGenerate_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	pol := models.DefaultPolicy()

	f.moderator.On("Check", mock.Anything, "a kind dragon").Return(nil)
	f.policies.On("Resolve", mock.Anything, userID).Return(pol, nil)
	f.generator.On("GenerateStory", mock.Anything, "a kind dragon", pol).Return("Once upon a time...", nil)
	f.generator.On("Summarize", mock.Anything, "Once upon a time...").Return("The Kind Dragon", "A dragon helps everyone.", nil)
	f.narrator.On("Build", mock.Anything, "Once upon a time...").Return("https://cdn.example.com/a.mp3", nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Story")).Return(nil)
	f.events.On("PublishStoryEvent", mock.Anything, mock.MatchedBy(func(e messaging.StoryEvent) bool {
		return e.Event == messaging.EventStoryGenerated && e.UserID == userID
	})).Return(nil)

	story, err := f.svc.Generate(ctx, userID, "a kind dragon")
	require.NoError(t, err)
	assert.Equal(t, userID, story.UserID)
	assert.Equal(t, "a kind dragon", story.Prompt)
	assert.Equal(t, "The Kind Dragon", story.Title)
	assert.Equal(t, "A dragon helps everyone.", story.Summary)
	assert.Equal(t, "Once upon a time...", story.Text)
	require.NotNil(t, story.AudioURL)
	assert.Equal(t, "https://cdn.example.com/a.mp3", *story.AudioURL)
	f.moderator.AssertExpectations(t)
	f.repo.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestGenerate_ModerationRejectedNothingPersisted(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()

	f.moderator.On("Check", mock.Anything, "a scary monster").Return(models.ErrModerationRejected)

	_, err := f.svc.Generate(context.Background(), userID, "a scary monster")
	assert.ErrorIs(t, err, models.ErrModerationRejected)
	f.policies.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	f.generator.AssertNotCalled(t, "GenerateStory", mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_GenerationFailureNothingPersisted(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	pol := models.DefaultPolicy()

	f.moderator.On("Check", mock.Anything, "a kind dragon").Return(nil)
	f.policies.On("Resolve", mock.Anything, userID).Return(pol, nil)
	f.generator.On("GenerateStory", mock.Anything, "a kind dragon", pol).Return("", models.ErrGenerationFailed)

	_, err := f.svc.Generate(context.Background(), userID, "a kind dragon")
	assert.ErrorIs(t, err, models.ErrGenerationFailed)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_SummaryFailureDegradesToPlaceholder(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	pol := models.DefaultPolicy()
	pol.Narration = false

	f.moderator.On("Check", mock.Anything, "a kind dragon").Return(nil)
	f.policies.On("Resolve", mock.Anything, userID).Return(pol, nil)
	f.generator.On("GenerateStory", mock.Anything, "a kind dragon", pol).Return("Once upon a time...", nil)
	f.generator.On("Summarize", mock.Anything, "Once upon a time...").Return("", "", errors.New("summarizer down"))
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Story")).Return(nil)
	f.events.On("PublishStoryEvent", mock.Anything, mock.Anything).Return(nil)

	story, err := f.svc.Generate(context.Background(), userID, "a kind dragon")
	require.NoError(t, err)
	assert.Equal(t, "Untitled", story.Title)
	assert.Equal(t, "", story.Summary)
	assert.Nil(t, story.AudioURL)
}

func TestGenerate_NarrationFailurePersistsWithoutAudio(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	pol := models.DefaultPolicy()

	f.moderator.On("Check", mock.Anything, "a kind dragon").Return(nil)
	f.policies.On("Resolve", mock.Anything, userID).Return(pol, nil)
	f.generator.On("GenerateStory", mock.Anything, "a kind dragon", pol).Return("Once upon a time...", nil)
	f.generator.On("Summarize", mock.Anything, "Once upon a time...").Return("Title", "Summary", nil)
	f.narrator.On("Build", mock.Anything, "Once upon a time...").Return("", errors.New("tts down"))
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Story")).Return(nil)
	f.events.On("PublishStoryEvent", mock.Anything, mock.Anything).Return(nil)

	story, err := f.svc.Generate(context.Background(), userID, "a kind dragon")
	require.NoError(t, err)
	assert.Nil(t, story.AudioURL)
}

func TestGenerate_NarrationSkippedWhenPolicyDisablesIt(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	pol := models.DefaultPolicy()
	pol.Narration = false

	f.moderator.On("Check", mock.Anything, "a kind dragon").Return(nil)
	f.policies.On("Resolve", mock.Anything, userID).Return(pol, nil)
	f.generator.On("GenerateStory", mock.Anything, "a kind dragon", pol).Return("Once upon a time...", nil)
	f.generator.On("Summarize", mock.Anything, "Once upon a time...").Return("Title", "Summary", nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Story")).Return(nil)
	f.events.On("PublishStoryEvent", mock.Anything, mock.Anything).Return(nil)

	story, err := f.svc.Generate(context.Background(), userID, "a kind dragon")
	require.NoError(t, err)
	assert.Nil(t, story.AudioURL)
	f.narrator.AssertNotCalled(t, "Build", mock.Anything, mock.Anything)
}

func TestGenerate_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	pol := models.DefaultPolicy()
	pol.Narration = false

	f.moderator.On("Check", mock.Anything, "a kind dragon").Return(nil)
	f.policies.On("Resolve", mock.Anything, userID).Return(pol, nil)
	f.generator.On("GenerateStory", mock.Anything, "a kind dragon", pol).Return("Once upon a time...", nil)
	f.generator.On("Summarize", mock.Anything, "Once upon a time...").Return("Title", "Summary", nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Story")).Return(nil)
	f.events.On("PublishStoryEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := f.svc.Generate(context.Background(), userID, "a kind dragon")
	assert.NoError(t, err)
}

func TestGetStory_OwnershipMismatchIsForbidden(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	intruder := uuid.New()
	storyID := uuid.New()

	f.repo.On("GetByID", mock.Anything, storyID).Return(&models.Story{ID: storyID, UserID: owner}, nil)

	_, err := f.svc.GetStory(context.Background(), intruder, storyID)
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestGetStory_MissingStoryIsNotFound(t *testing.T) {
	f := newFixture(t)
	storyID := uuid.New()

	f.repo.On("GetByID", mock.Anything, storyID).Return(nil, models.ErrStoryNotFound)

	_, err := f.svc.GetStory(context.Background(), uuid.New(), storyID)
	assert.ErrorIs(t, err, models.ErrStoryNotFound)
}

func TestApproveStory_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	storyID := uuid.New()

	f.repo.On("GetByID", mock.Anything, storyID).Return(&models.Story{ID: storyID, UserID: owner}, nil)

	_, err := f.svc.ApproveStory(context.Background(), uuid.New(), storyID)
	assert.ErrorIs(t, err, models.ErrForbidden)
	f.repo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
}

func TestApproveStory_IdempotentOnAlreadyApproved(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	storyID := uuid.New()
	stored := &models.Story{ID: storyID, UserID: owner, Approved: true}

	f.repo.On("GetByID", mock.Anything, storyID).Return(stored, nil)
	f.repo.On("Approve", mock.Anything, storyID).Return(stored, nil)
	f.events.On("PublishStoryEvent", mock.Anything, mock.Anything).Return(nil)

	story, err := f.svc.ApproveStory(context.Background(), owner, storyID)
	require.NoError(t, err)
	assert.True(t, story.Approved)
}

func TestDeleteStory_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	storyID := uuid.New()

	f.repo.On("GetByID", mock.Anything, storyID).Return(&models.Story{ID: storyID, UserID: owner}, nil)

	err := f.svc.DeleteStory(context.Background(), uuid.New(), storyID)
	assert.ErrorIs(t, err, models.ErrForbidden)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteStory_Success(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	storyID := uuid.New()

	f.repo.On("GetByID", mock.Anything, storyID).Return(&models.Story{ID: storyID, UserID: owner}, nil)
	f.repo.On("Delete", mock.Anything, storyID).Return(nil)
	f.events.On("PublishStoryEvent", mock.Anything, mock.MatchedBy(func(e messaging.StoryEvent) bool {
		return e.Event == messaging.EventStoryDeleted
	})).Return(nil)

	err := f.svc.DeleteStory(context.Background(), owner, storyID)
	assert.NoError(t, err)
}
