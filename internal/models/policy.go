package models

import (
	"time"

	"github.com/google/uuid"
)

// LengthTier is the parent-selected story length setting.
type LengthTier string

const (
	TierShort  LengthTier = "short"
	TierMedium LengthTier = "medium"
	TierLong   LengthTier = "long"
)

// CharacterBudgets maps each tier to the character ceiling requested from
// the model. The budget is advisory: generation asks for it but the output
// is never truncated to fit.
var CharacterBudgets = map[LengthTier]int{
	TierShort:  5000,
	TierMedium: 9000,
	TierLong:   12000,
}

// Valid reports whether the tier is one of the known enum values.
func (t LengthTier) Valid() bool {
	_, ok := CharacterBudgets[t]
	return ok
}

// Policy is the per-account content configuration. Exactly one live record
// per account; the pipeline substitutes DefaultPolicy when none exists.
type Policy struct {
	UserID        uuid.UUID  `json:"userId" db:"user_id"`
	StoryLength   LengthTier `json:"storyLength" db:"story_length"`
	AllowedThemes []string   `json:"allowedThemes" db:"allowed_themes"`
	ChildAge      int        `json:"childAge" db:"child_age"`
	Narration     bool       `json:"narration" db:"narration"`
	Illustrations bool       `json:"illustrations" db:"illustrations"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// EffectivePolicy is a resolved policy with the tier already mapped to a
// concrete character budget.
type EffectivePolicy struct {
	StoryLength     LengthTier
	CharacterBudget int
	AllowedThemes   []string
	ChildAge        int
	Narration       bool
	Illustrations   bool
}

// DefaultPolicy returns the hardcoded fallback applied when an account has
// no policy record yet. First-time users must be able to generate before
// configuring settings.
func DefaultPolicy() EffectivePolicy {
	return EffectivePolicy{
		StoryLength:     TierShort,
		CharacterBudget: CharacterBudgets[TierShort],
		AllowedThemes:   []string{"adventure", "animals", "fantasy"},
		ChildAge:        6,
		Narration:       true,
		Illustrations:   true,
	}
}

// Effective maps a stored policy record to its resolved form.
func (p Policy) Effective() EffectivePolicy {
	tier := p.StoryLength
	if !tier.Valid() {
		tier = TierShort
	}
	return EffectivePolicy{
		StoryLength:     tier,
		CharacterBudget: CharacterBudgets[tier],
		AllowedThemes:   p.AllowedThemes,
		ChildAge:        p.ChildAge,
		Narration:       p.Narration,
		Illustrations:   p.Illustrations,
	}
}
