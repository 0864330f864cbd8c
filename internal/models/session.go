package models

import "time"

const (
	ModePractice = "practice"
	ModeTimed    = "timed"
)

// ValidMode reports whether m is a known session mode.
func ValidMode(m string) bool {
	return m == ModePractice || m == ModeTimed
}

// Session groups a user's attempts. Counts are caller-reported summaries
// written by EndSession; they are never derived from attempt rows.
type Session struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"ownerId"`
	Mode           *string    `json:"mode"`
	CreatedAt      time.Time  `json:"createdAt"`
	EndedAt        *time.Time `json:"endedAt"`
	TotalQuestions *int       `json:"totalQuestions"`
	CorrectAnswers *int       `json:"correctAnswers"`
}

// Ended reports whether the session has been finalized at least once.
func (s *Session) Ended() bool {
	return s.EndedAt != nil
}

type StartSessionInput struct {
	Mode           *string `json:"mode"`
	TotalQuestions *int    `json:"totalQuestions"`
}

type EndSessionInput struct {
	TotalQuestions *int `json:"totalQuestions"`
	CorrectAnswers *int `json:"correctAnswers"`
}

// SessionEnd is the storage-level finalize: EndedAt is always written,
// counts only when non-nil.
type SessionEnd struct {
	EndedAt        time.Time
	TotalQuestions *int
	CorrectAnswers *int
}

// SessionDetail is a session together with the attempts recorded against it.
type SessionDetail struct {
	Session
	Attempts []Attempt `json:"attempts"`
}
