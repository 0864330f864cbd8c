// Package seed loads system puzzles from YAML fixtures.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/srkarthi1982/guess-the-emoji/internal/services"
)

// File is the fixture layout:
//
//	puzzles:
//	  - emoji: "🦁👑"
//	    answer: The Lion King
//	    category: movies
//	    difficulty: easy
type File struct {
	Puzzles []Puzzle `yaml:"puzzles"`
}

type Puzzle struct {
	Emoji      string  `yaml:"emoji"`
	Answer     string  `yaml:"answer"`
	Hint       *string `yaml:"hint"`
	Category   *string `yaml:"category"`
	Difficulty *string `yaml:"difficulty"`
	Language   *string `yaml:"language"`
}

// Creator is the part of PuzzleService the seeder needs.
type Creator interface {
	CreateSystemPuzzle(ctx context.Context, in models.CreatePuzzleInput) (*models.Puzzle, error)
}

// Parse decodes a fixture, rejecting unknown keys.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	return f, nil
}

// LoadFile parses the fixture at path.
func LoadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fh.Close()
	return Parse(fh)
}

func (p Puzzle) input() models.CreatePuzzleInput {
	return models.CreatePuzzleInput{
		EmojiSequence: p.Emoji,
		Answer:        p.Answer,
		Hint:          p.Hint,
		Category:      p.Category,
		Difficulty:    p.Difficulty,
		Language:      p.Language,
	}
}

// Validate checks every entry and reports the first invalid one.
func (f File) Validate() error {
	for i, p := range f.Puzzles {
		if err := services.ValidateCreatePuzzle(p.input()); err != nil {
			return fmt.Errorf("puzzle %d (%q): %w", i+1, p.Answer, err)
		}
	}
	return nil
}

// Apply creates every puzzle in f as a system puzzle and returns how many were
// created. Nothing is created unless every entry is valid.
func Apply(ctx context.Context, creator Creator, f File) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("seed")

	if err := f.Validate(); err != nil {
		return 0, err
	}

	for i, p := range f.Puzzles {
		created, err := creator.CreateSystemPuzzle(ctx, p.input())
		if err != nil {
			return i, fmt.Errorf("puzzle %d (%q): %w", i+1, p.Answer, err)
		}
		log.Debug("seeded puzzle: id=%s", created.ID)
	}
	log.Info("seeded %d system puzzles", len(f.Puzzles))
	return len(f.Puzzles), nil
}
