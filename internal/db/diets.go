package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Diet struct {
	ID          uuid.UUID
	Title       string
	Description string
	Calories    int
	Tags        []string
	CreatedAt   time.Time
}

func (p *Pool) ListDiets(ctx context.Context, search string) ([]Diet, error) {
	if p == nil {
		return nil, errors.New("nil db pool")
	}

	const query = `
        select id, title, description, calories, tags, created_at
        from diets
        where ($1 = '' or lower(title) like $2)
        order by lower(title)
    `

	search = strings.TrimSpace(search)
	rows, err := p.Query(ctx, query, search, "%"+strings.ToLower(search)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	diets := make([]Diet, 0)
	for rows.Next() {
		diet, err := scanDiet(rows)
		if err != nil {
			return nil, err
		}
		diets = append(diets, diet)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return diets, nil
}

func (p *Pool) GetDiet(ctx context.Context, id uuid.UUID) (*Diet, error) {
	if p == nil {
		return nil, errors.New("nil db pool")
	}

	const query = `
        select id, title, description, calories, tags, created_at
        from diets
        where id = $1
    `

	diet, err := scanDiet(p.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &diet, nil
}

func scanDiet(row pgx.Row) (Diet, error) {
	var (
		diet        Diet
		description pgtype.Text
		tags        []string
	)
	if err := row.Scan(&diet.ID, &diet.Title, &description, &diet.Calories, &tags, &diet.CreatedAt); err != nil {
		return diet, err
	}
	diet.Description = stringFromPG(description)
	if tags == nil {
		tags = []string{}
	}
	diet.Tags = tags
	return diet, nil
}
