package models

import (
	"time"

	"github.com/google/uuid"
)

// Story is one persisted generation result. UserID is immutable after
// creation; Approved only ever transitions false -> true.
type Story struct {
	ID        uuid.UUID `json:"storyId" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Prompt    string    `json:"prompt" db:"prompt"`
	Title     string    `json:"title" db:"title"`
	Summary   string    `json:"summary" db:"summary"`
	Text      string    `json:"text" db:"story_text"`
	AudioURL  *string   `json:"audioUrl,omitempty" db:"audio_url"`
	Approved  bool      `json:"approved" db:"approved"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
