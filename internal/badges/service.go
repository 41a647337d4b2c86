package badges

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"nutrition/internal/db"
)

// ListType selects which badges a listing returns.
type ListType string

const (
	TypeAll    ListType = "all"
	TypeEarned ListType = "earned"
)

var ErrUnknownType = errors.New("unknown badge list type")

// ParseListType accepts "", "all" and "earned"; empty means all.
func ParseListType(raw string) (ListType, error) {
	switch ListType(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TypeAll:
		return TypeAll, nil
	case TypeEarned:
		return TypeEarned, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
}

type Repository interface {
	ListBadges(ctx context.Context, userID uuid.UUID) ([]db.Badge, error)
	ListEarnedBadges(ctx context.Context, userID uuid.UUID) ([]db.Badge, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns badges for userID ordered by ascending weight. Earned
// listings only ever contain badges with an award time.
func (s *Service) List(ctx context.Context, userID uuid.UUID, kind ListType) ([]db.Badge, error) {
	var (
		list []db.Badge
		err  error
	)
	switch kind {
	case TypeEarned:
		list, err = s.repo.ListEarnedBadges(ctx, userID)
	case TypeAll:
		list, err = s.repo.ListBadges(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}

	if kind == TypeEarned {
		list = earnedOnly(list)
	}
	sortByWeight(list)
	return list, nil
}

func earnedOnly(list []db.Badge) []db.Badge {
	out := make([]db.Badge, 0, len(list))
	for _, b := range list {
		if b.AwardedAt != nil {
			out = append(out, b)
		}
	}
	return out
}

func sortByWeight(list []db.Badge) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Weight < list[j].Weight
	})
}
