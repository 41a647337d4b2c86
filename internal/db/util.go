package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func timePtrFromPG(value pgtype.Timestamptz) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}

func stringFromPG(value pgtype.Text) string {
	if !value.Valid {
		return ""
	}
	return value.String
}
