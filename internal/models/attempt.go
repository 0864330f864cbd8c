package models

import "time"

// Attempt is one scored guess. It is written once and never updated.
type Attempt struct {
	ID        string    `json:"id"`
	SessionID *string   `json:"sessionId"`
	PuzzleID  string    `json:"puzzleId"`
	UserID    string    `json:"userId"`
	Guess     string    `json:"guess"`
	IsCorrect bool      `json:"isCorrect"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubmitAttemptInput struct {
	PuzzleID  string  `json:"puzzleId"`
	Guess     string  `json:"guess"`
	SessionID *string `json:"sessionId"`
}
