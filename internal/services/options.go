package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srkarthi1982/guess-the-emoji/internal/errors"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"golang.org/x/text/language"
)

// Option configures the time and id sources of a service.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator overrides uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Timestamps are kept in UTC so stored values sort chronologically.
func (o options) timestamp() time.Time {
	return o.now().UTC()
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.NewUnauthenticatedError("authentication required")
	}
	return nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(field, "cannot be empty")
	}
	return nil
}

// optionalText maps nil, empty and blank strings to nil.
func optionalText(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func validateDifficulty(d *string) error {
	if d != nil && !models.ValidDifficulty(*d) {
		return errors.NewValidationError("difficulty", "must be 'easy', 'medium', or 'hard'")
	}
	return nil
}

// canonicalLanguage validates a BCP 47 tag and returns its canonical form.
func canonicalLanguage(s *string) (*string, error) {
	s = optionalText(s)
	if s == nil {
		return nil, nil
	}
	tag, err := language.Parse(strings.TrimSpace(*s))
	if err != nil {
		return nil, errors.NewValidationError("language", "must be a valid BCP 47 language tag")
	}
	canonical := tag.String()
	return &canonical, nil
}
