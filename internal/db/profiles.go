package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Profile struct {
	ID          uuid.UUID
	DisplayName string
	XP          int64
	UpdatedAt   time.Time
}

const getProfileSQL = `
select id, display_name, xp, updated_at
from profiles
where id = $1;
`

// GetProfile returns nil when the user has no profile row yet.
func (p *Pool) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	if p == nil {
		return nil, errors.New("nil db pool")
	}

	var (
		profile Profile
		name    pgtype.Text
	)
	row := p.QueryRow(ctx, getProfileSQL, id)
	if err := row.Scan(&profile.ID, &name, &profile.XP, &profile.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	profile.DisplayName = stringFromPG(name)
	return &profile, nil
}
