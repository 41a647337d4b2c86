package diets

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"nutrition/internal/db"
)

var ErrNotFound = errors.New("diet not found")

type Repository interface {
	ListDiets(ctx context.Context, search string) ([]db.Diet, error)
	GetDiet(ctx context.Context, id uuid.UUID) (*db.Diet, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, search string) ([]db.Diet, error) {
	return s.repo.ListDiets(ctx, search)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*db.Diet, error) {
	diet, err := s.repo.GetDiet(ctx, id)
	if err != nil {
		return nil, err
	}
	if diet == nil {
		return nil, ErrNotFound
	}
	return diet, nil
}
