package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Badge is a badge type, optionally joined with the time a user earned it.
type Badge struct {
	ID          uuid.UUID
	Name        string
	Description string
	Icon        string
	Weight      int
	XPReward    int
	AwardedAt   *time.Time
}

// All badge types, with awarded_at set only for the ones userID earned.
const listBadgesSQL = `
select b.id, b.name, b.description, b.icon, b.weight, b.xp_reward, ub.awarded_at
from badges b
left join user_badges ub on ub.badge_id = b.id and ub.user_id = $1
order by b.weight asc, b.name asc;
`

const listEarnedBadgesSQL = `
select b.id, b.name, b.description, b.icon, b.weight, b.xp_reward, ub.awarded_at
from badges b
join user_badges ub on ub.badge_id = b.id
where ub.user_id = $1
order by b.weight asc, b.name asc;
`

func (p *Pool) ListBadges(ctx context.Context, userID uuid.UUID) ([]Badge, error) {
	return p.queryBadges(ctx, listBadgesSQL, userID)
}

func (p *Pool) ListEarnedBadges(ctx context.Context, userID uuid.UUID) ([]Badge, error) {
	return p.queryBadges(ctx, listEarnedBadgesSQL, userID)
}

func (p *Pool) queryBadges(ctx context.Context, query string, userID uuid.UUID) ([]Badge, error) {
	if p == nil {
		return nil, errors.New("nil db pool")
	}

	rows, err := p.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	badges := make([]Badge, 0)
	for rows.Next() {
		var (
			badge       Badge
			description pgtype.Text
			icon        pgtype.Text
			awardedAt   pgtype.Timestamptz
		)
		if err := rows.Scan(&badge.ID, &badge.Name, &description, &icon, &badge.Weight, &badge.XPReward, &awardedAt); err != nil {
			return nil, err
		}
		badge.Description = stringFromPG(description)
		badge.Icon = stringFromPG(icon)
		badge.AwardedAt = timePtrFromPG(awardedAt)
		badges = append(badges, badge)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return badges, nil
}
