package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

const (
	bioSentences          = 3
	instructionSentences  = 8
	minMinutes            = 15
	maxMinutes            = 90
	maxUsernameAttempts   = 50
	minWordsPerSentence   = 6
	extraWordsPerSentence = 6
)

// Options controls how much data a seeding run creates.
type Options struct {
	Users    int
	Recipes  int
	Password string
}

// Summary reports what a seeding run created.
type Summary struct {
	Users   int
	Recipes int
}

// Seeder wipes the store and fills it with fake data.
type Seeder struct {
	Users   repository.UserRepository
	Recipes repository.RecipeRepository
	Faker   *gofakeit.Faker
	Logger  logrus.FieldLogger
}

func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Users <= 0 && opts.Recipes > 0 {
		return Summary{}, errors.New("recipes need at least one user")
	}

	s.Logger.Info("deleting existing data")
	if err := s.Recipes.DeleteAll(ctx); err != nil {
		return Summary{}, fmt.Errorf("delete recipes: %w", err)
	}
	if err := s.Users.DeleteAll(ctx); err != nil {
		return Summary{}, fmt.Errorf("delete users: %w", err)
	}

	s.Logger.WithField("count", opts.Users).Info("creating users")
	users, err := s.seedUsers(ctx, opts.Users, opts.Password)
	if err != nil {
		return Summary{}, err
	}

	s.Logger.WithField("count", opts.Recipes).Info("creating recipes")
	for i := 0; i < opts.Recipes; i++ {
		owner := users[s.Faker.IntN(len(users))]
		recipe, err := domain.NewRecipe(
			owner,
			s.Faker.Sentence(minWordsPerSentence+s.Faker.IntN(extraWordsPerSentence)),
			s.sentences(instructionSentences),
			minMinutes+s.Faker.IntN(maxMinutes-minMinutes+1),
		)
		if err != nil {
			return Summary{}, fmt.Errorf("build recipe %d: %w", i+1, err)
		}
		if _, err := s.Recipes.Create(ctx, recipe); err != nil {
			return Summary{}, fmt.Errorf("create recipe %d: %w", i+1, err)
		}
	}

	return Summary{Users: len(users), Recipes: opts.Recipes}, nil
}

func (s *Seeder) seedUsers(ctx context.Context, count int, password string) ([]*domain.User, error) {
	taken := make(map[string]struct{}, count)
	users := make([]*domain.User, 0, count)
	for i := 0; i < count; i++ {
		username := s.uniqueFirstName(taken, i)
		imageURL := s.Faker.URL()
		bio := s.sentences(bioSentences)

		user, err := domain.NewUser(username, password, &imageURL, &bio)
		if err != nil {
			return nil, fmt.Errorf("build user %q: %w", username, err)
		}
		id, err := s.Users.Create(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("create user %q: %w", username, err)
		}
		user.ID = id
		users = append(users, user)
	}
	return users, nil
}

// uniqueFirstName falls back to a numbered name once the generator keeps
// repeating itself.
func (s *Seeder) uniqueFirstName(taken map[string]struct{}, n int) string {
	name := ""
	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		name = s.Faker.FirstName()
		if _, dup := taken[name]; !dup {
			taken[name] = struct{}{}
			return name
		}
	}
	name = fmt.Sprintf("%s%d", name, n+1)
	taken[name] = struct{}{}
	return name
}

func (s *Seeder) sentences(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = s.Faker.Sentence(minWordsPerSentence + s.Faker.IntN(extraWordsPerSentence))
	}
	return strings.Join(parts, " ")
}
