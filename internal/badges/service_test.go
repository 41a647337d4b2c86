package badges

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition/internal/db"
)

type fakeRepo struct {
	all    []db.Badge
	earned []db.Badge
	err    error
}

func (f *fakeRepo) ListBadges(context.Context, uuid.UUID) ([]db.Badge, error) {
	return f.all, f.err
}

func (f *fakeRepo) ListEarnedBadges(context.Context, uuid.UUID) ([]db.Badge, error) {
	return f.earned, f.err
}

func ptr(t time.Time) *time.Time { return &t }

func TestParseListType(t *testing.T) {
	tests := []struct {
		raw     string
		want    ListType
		wantErr bool
	}{
		{"", TypeAll, false},
		{"all", TypeAll, false},
		{"Earned", TypeEarned, false},
		{"locked", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseListType(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListEarnedFiltersAndSorts(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{earned: []db.Badge{
		{Name: "heavy", Weight: 30, AwardedAt: ptr(now)},
		{Name: "unawarded", Weight: 1},
		{Name: "light", Weight: 10, AwardedAt: ptr(now)},
		{Name: "middle", Weight: 20, AwardedAt: ptr(now)},
	}}

	list, err := NewService(repo).List(context.Background(), uuid.New(), TypeEarned)
	require.NoError(t, err)

	names := make([]string, 0, len(list))
	for _, b := range list {
		assert.NotNil(t, b.AwardedAt)
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"light", "middle", "heavy"}, names)
}

func TestListAllKeepsUnearned(t *testing.T) {
	repo := &fakeRepo{all: []db.Badge{
		{Name: "b", Weight: 2},
		{Name: "a", Weight: 1, AwardedAt: ptr(time.Now())},
		{Name: "c", Weight: 2},
	}}

	list, err := NewService(repo).List(context.Background(), uuid.New(), TypeAll)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "b", list[1].Name, "stable for equal weights")
	assert.Equal(t, "c", list[2].Name)
}

func TestListErrors(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewService(&fakeRepo{err: boom}).List(context.Background(), uuid.New(), TypeAll)
	assert.ErrorIs(t, err, boom)

	_, err = NewService(&fakeRepo{}).List(context.Background(), uuid.New(), ListType("x"))
	assert.ErrorIs(t, err, ErrUnknownType)
}
