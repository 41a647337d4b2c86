package profile

import (
	"context"

	"github.com/google/uuid"

	"nutrition/internal/db"
)

const xpPerLevel = 100

// Summary is what the profile page shows about a user.
type Summary struct {
	UserID      uuid.UUID
	DisplayName string
	XP          int64
	Level       int64
	NextLevelXP int64
}

// LevelFor maps experience points to a level starting at 1.
func LevelFor(xp int64) int64 {
	if xp < 0 {
		xp = 0
	}
	return xp/xpPerLevel + 1
}

type Repository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*db.Profile, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary never fails for a missing profile row; a new user starts at zero XP.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (Summary, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{UserID: userID}
	if p != nil {
		summary.DisplayName = p.DisplayName
		summary.XP = p.XP
	}
	summary.Level = LevelFor(summary.XP)
	summary.NextLevelXP = summary.Level * xpPerLevel
	return summary, nil
}
