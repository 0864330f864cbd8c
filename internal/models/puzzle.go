package models

import "time"

// Difficulty values accepted for Puzzle.Difficulty.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Puzzle is an emoji sequence with a textual answer. OwnerID is nil for
// system puzzles, which are readable by everyone and editable by no one.
type Puzzle struct {
	ID            string    `json:"id"`
	OwnerID       *string   `json:"ownerId"`
	EmojiSequence string    `json:"emojiSequence"`
	Answer        string    `json:"answer,omitempty"`
	Hint          *string   `json:"hint"`
	Category      *string   `json:"category"`
	Difficulty    *string   `json:"difficulty"`
	Language      *string   `json:"language"`
	IsSystem      bool      `json:"isSystem"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnedBy reports whether userID owns the puzzle. System puzzles are owned by nobody.
func (p *Puzzle) OwnedBy(userID string) bool {
	return p.OwnerID != nil && *p.OwnerID == userID
}

// Redacted returns a copy without the answer, for callers that do not own it.
func (p Puzzle) Redacted() Puzzle {
	p.Answer = ""
	return p
}

type CreatePuzzleInput struct {
	EmojiSequence string  `json:"emojiSequence"`
	Answer        string  `json:"answer"`
	Hint          *string `json:"hint"`
	Category      *string `json:"category"`
	Difficulty    *string `json:"difficulty"`
	Language      *string `json:"language"`
}

// UpdatePuzzleInput carries only the fields present in the request.
type UpdatePuzzleInput struct {
	EmojiSequence Optional[string] `json:"emojiSequence"`
	Answer        Optional[string] `json:"answer"`
	Hint          Optional[string] `json:"hint"`
	Category      Optional[string] `json:"category"`
	Difficulty    Optional[string] `json:"difficulty"`
	Language      Optional[string] `json:"language"`
	IsActive      Optional[bool]   `json:"isActive"`
}

// Empty reports whether no field was supplied.
func (in UpdatePuzzleInput) Empty() bool {
	return !in.EmojiSequence.Set && !in.Answer.Set && !in.Hint.Set &&
		!in.Category.Set && !in.Difficulty.Set && !in.Language.Set && !in.IsActive.Set
}

// PuzzleChanges is the validated column set for a partial update. A nil
// pointer in a Set* entry means "store NULL".
type PuzzleChanges struct {
	EmojiSequence *string
	Answer        *string
	SetHint       bool
	Hint          *string
	SetCategory   bool
	Category      *string
	SetDifficulty bool
	Difficulty    *string
	SetLanguage   bool
	Language      *string
	IsActive      *bool
	UpdatedAt     time.Time
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PuzzleFilter selects puzzles for a listing: SystemOnly lists ownerless
// puzzles, otherwise only OwnerID's puzzles match.
type PuzzleFilter struct {
	OwnerID         string
	SystemOnly      bool
	IncludeInactive bool
	Category        string
	Difficulty      string
	Page            int
	PageSize        int
}

// Offset returns the row offset for the 1-based page.
func (f PuzzleFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// PuzzlePage is one page of a listing. Count is len(Items), not a total.
type PuzzlePage struct {
	Items    []Puzzle `json:"items"`
	Count    int      `json:"count"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}
